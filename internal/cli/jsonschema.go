package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sdkschema "github.com/reoring/sdkschema"
	js "github.com/reoring/sdkschema/jsonschema"
)

func newJSONSchemaCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema <model>",
		Short: "Print the JSON Schema (2020-12) of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := lookupModel(args[0])
			if err != nil {
				return err
			}
			doc := sdkschema.GenerateJSONSchema(e.Schema)

			format, err := outputFormat(v)
			if err != nil {
				return err
			}
			var out []byte
			if format == formatYAML {
				out, err = js.MarshalYAML(doc)
			} else {
				out, err = js.MarshalJSON(doc)
			}
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), out)
		},
	}
}
