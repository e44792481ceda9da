// Package cli implements the sdkschema command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	sdkschema "github.com/reoring/sdkschema"
)

// Version is set at build time.
var Version = "dev"

// EnvPrefix prefixes environment variables that override flags
// (SDKSCHEMA_STRICT, SDKSCHEMA_JOBS, ...).
const EnvPrefix = "SDKSCHEMA"

// Run executes the command line args (args[0] is the program name).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd(viper.New(), stderr)
	rootCmd.SetArgs(args[1:])
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewRootCmd builds the command tree. Flags are bound into v.
func NewRootCmd(v *viper.Viper, stderr io.Writer) *cobra.Command {
	level := &slog.LevelVar{}

	rootCmd := &cobra.Command{
		Use:           "sdkschema",
		Short:         "Validate and map SDK payloads against the bundled models",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if v.GetBool("debug") {
				level.Set(slog.LevelDebug)
			}
			sdkschema.SetLogger(newLogger(stderr, level))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.Bool("strict", false, "disable loose primitive coercion")
	pf.String("format", "json", "output format: json or yaml")
	pf.Bool("xml", false, "read (map) or write (unmap) XML")
	pf.Int("jobs", 4, "files processed concurrently")
	pf.Bool("debug", false, "enable debug logging")
	for _, name := range []string{"strict", "format", "xml", "jobs", "debug"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	rootCmd.AddCommand(
		newListCmd(),
		newConvertCmd(v, mapDirection),
		newConvertCmd(v, unmapDirection),
		newJSONSchemaCmd(v),
	)
	return rootCmd
}

func newLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
