package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/wire"
)

// OrphansCmd returns the orphans command
func OrphansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Resolve documentation whose table or column no longer exists",
		Long: `Pick a random orphaned record and choose what happens to its documentation:

  r  rename it to the object's new name
  d  delete it
  t  transfer it onto another documented object, then delete it`,
	}

	cmd.AddCommand(orphansKindCmd("tables", "Resolve one orphaned table", primary.KindTable))
	cmd.AddCommand(orphansKindCmd("columns", "Resolve one orphaned column", primary.KindColumn))
	return cmd
}

func orphansKindCmd(use, short, kind string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.DocsAdapterWithOutput(cmd.OutOrStdout()).ResolveOrphans(NewContext(), kind)
			return err
		},
	}
}
