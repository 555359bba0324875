package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/cli"
	"github.com/example/schemadoc/internal/version"
	"github.com/example/schemadoc/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "schemadoc",
		Short:   "schemadoc - keep database schema documentation next to the data",
		Version: version.String(),
		Long: `schemadoc keeps a documentation catalog of every table and column in a
database. It reconciles the catalog with the live schema, lets you edit entries
in your editor, resolves entries whose objects disappeared, and samples
representative values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			options, _ := cmd.Flags().GetString("options")
			return wire.Init(options)
		},
	}
	rootCmd.PersistentFlags().String("options", "", "Options file to load instead of ./se_options")

	// Catalog maintenance
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.RefreshCountsCmd())
	rootCmd.AddCommand(cli.OrphansCmd())

	// Documentation
	rootCmd.AddCommand(cli.EditCmd())
	rootCmd.AddCommand(cli.SampleCmd())
	rootCmd.AddCommand(cli.AutoFillCmd())

	// Reading
	rootCmd.AddCommand(cli.SummaryCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.DevCmd())

	err := rootCmd.Execute()
	if closeErr := wire.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
