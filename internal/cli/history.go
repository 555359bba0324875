package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [entity]",
		Short: "Show committed documentation changes",
		Long: `Show the documentation change history, newest first.

An entity argument limits the output to that table or column; a table also
matches its columns. Use --prune to delete old entries instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			adapter := wire.HistoryAdapterWithOutput(cmd.OutOrStdout())

			if cmd.Flags().Changed("prune") {
				days, _ := cmd.Flags().GetInt("prune")
				return adapter.Prune(ctx, days)
			}

			filters := primary.HistoryFilters{}
			if len(args) > 0 {
				filters.Entity = args[0]
			}
			filters.Operator, _ = cmd.Flags().GetString("operator")
			filters.Action, _ = cmd.Flags().GetString("action")
			filters.Limit, _ = cmd.Flags().GetInt("limit")

			_, err := adapter.List(ctx, filters)
			return err
		},
	}

	cmd.Flags().String("operator", "", "Only changes by this operator")
	cmd.Flags().String("action", "", "Only this action (update, rename, delete, transfer)")
	cmd.Flags().Int("limit", 50, "Maximum entries to show (0 = all)")
	cmd.Flags().Int("prune", 0, "Delete entries older than this many days")
	return cmd
}
