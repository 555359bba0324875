package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/wire"
)

// SampleCmd returns the sample command
func SampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample [column]",
		Short: "Show representative values of a column",
		Long: `Sample about 10% of a column's rows (at most 10,000) and show up to five
values spread across the frequency ranking. Use --store to save them as the
column's example values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _ := cmd.Flags().GetBool("store")
			_, err := wire.SampleAdapterWithOutput(cmd.OutOrStdout()).Sample(NewContext(), args[0], store)
			return err
		},
	}

	cmd.Flags().Bool("store", false, "Store the sampled values")
	return cmd
}

// AutoFillCmd returns the autofill command
func AutoFillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Fill example values for every column that has none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noConfirm, _ := cmd.Flags().GetBool("no-confirmation")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			return wire.SampleAdapterWithOutput(cmd.OutOrStdout()).AutoFill(NewContext(), primary.AutoFillRequest{
				NoConfirmation: noConfirm,
				Limit:          limit,
			})
		},
	}

	cmd.Flags().Bool("no-confirmation", false, "Store values without asking")
	cmd.Flags().Int("limit", 0, "Stop after this many columns (0 = no limit)")
	return cmd
}
