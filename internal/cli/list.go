package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/sdkschema/internal/catalog"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the bundled models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range catalog.Names() {
				e, _ := catalog.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, e.Schema.TypeName())
			}
			return nil
		},
	}
}

func lookupModel(name string) (catalog.Entry, error) {
	e, ok := catalog.Lookup(name)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("unknown model %q (see 'sdkschema list')", name)
	}
	return e, nil
}
