package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/db"
	"github.com/example/schemadoc/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for trying schemadoc against a scratch database.

These commands write to the documented database itself, so they require
SE_DATABASE to be set explicitly.`,
	}

	cmd.AddCommand(devSeedCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create fixture tables in the documented database",
		Long: `Create a small live schema (customers, orders and the open_orders view)
with rows in the documented database. Run 'schemadoc sync' afterwards to
document it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if os.Getenv("SE_DATABASE") == "" {
				return fmt.Errorf("SE_DATABASE not set - point it at a scratch database to seed fixtures\n\nThis safety check prevents accidental writes to a real database")
			}
			path := wire.Config().DatabasePath

			if !force {
				fmt.Fprintf(out, "This will create fixture tables in: %s\n", path)
				fmt.Fprint(out, "Continue? [y/N] ")
				var response string
				fmt.Fscanln(cmd.InOrStdin(), &response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			if err := db.SeedFixtures(wire.Database()); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Fprintln(out, "✓ Seeded fixture data")
			fmt.Fprintln(out, "\nNext: schemadoc sync")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
