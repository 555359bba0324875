package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			out := cmd.OutOrStdout()

			optionsFile := cfg.OptionsFile
			if optionsFile == "" {
				optionsFile = "(none)"
			}
			fmt.Fprintf(out, "Options file:           %s\n", optionsFile)
			fmt.Fprintf(out, "Database:               %s\n", cfg.DatabasePath)
			fmt.Fprintf(out, "Documentation database: %s\n", cfg.DocsPath)
			fmt.Fprintf(out, "Schema:                 %s\n", cfg.Schema)
			fmt.Fprintf(out, "Schemas to ignore:      %s\n", strings.Join(cfg.SchemasToIgnore, ", "))
			fmt.Fprintf(out, "Table ignore patterns:  %s\n", strings.Join(cfg.TableIgnorePatterns, ", "))
			fmt.Fprintf(out, "Edit buffers:           %s\n", cfg.TempDir)
			return nil
		},
	}
}
