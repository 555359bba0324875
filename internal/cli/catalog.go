package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile documentation with the live catalog",
		Long: `Document tables and columns that appeared in the database and flag
documented ones that disappeared as orphaned.

Discovery runs before orphan marking, so a new table gets its columns in the
same run. Schemas and table name patterns from the configuration are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.CatalogAdapterWithOutput(cmd.OutOrStdout()).Sync(NewContext())
			return err
		},
	}
}

// RefreshCountsCmd returns the refresh-counts command
func RefreshCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-counts",
		Short: "Store current row counts for documented tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.CatalogAdapterWithOutput(cmd.OutOrStdout()).RefreshCounts(NewContext())
		},
	}
}
