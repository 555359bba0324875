package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/wire"
)

// EditCmd returns the edit command
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [name]",
		Short: "Edit documentation for a table or column in your editor",
		Long: `Open the documentation for a table or column in your editor.

Names resolve as:
  table                 table in any schema
  schema.table          table, else table.column
  schema.table.column   column

Lines starting with # are read-only. A failed save asks whether to reopen the
same buffer; declining leaves the record untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _ := cmd.Flags().GetBool("table")
			column, _ := cmd.Flags().GetBool("column")

			kind := ""
			switch {
			case table:
				kind = primary.KindTable
			case column:
				kind = primary.KindColumn
			}

			_, err := wire.DocsAdapterWithOutput(cmd.OutOrStdout()).Edit(NewContext(), kind, args[0])
			return err
		},
	}

	cmd.Flags().Bool("table", false, "Only match tables")
	cmd.Flags().Bool("column", false, "Only match columns")
	cmd.MarkFlagsMutuallyExclusive("table", "column")
	return cmd
}
