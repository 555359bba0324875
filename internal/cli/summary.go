package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cliadapter "github.com/example/schemadoc/internal/adapters/cli"
	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/wire"
)

// frequencyValue is a pflag.Value accepting only known update frequencies.
type frequencyValue string

func (f *frequencyValue) String() string { return string(*f) }

func (f *frequencyValue) Set(v string) error {
	if !slices.Contains(catalog.UpdateFrequencies, v) {
		return fmt.Errorf("must be one of %s", strings.Join(catalog.UpdateFrequencies, ", "))
	}
	*f = frequencyValue(v)
	return nil
}

func (f *frequencyValue) Type() string { return "frequency" }

var _ pflag.Value = (*frequencyValue)(nil)

// SummaryCmd returns the summary command
func SummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [table]",
		Short: "Show a table's documentation and its columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noPager, _ := cmd.Flags().GetBool("no-pager")
			return wire.SummaryAdapterWithOutput(cmd.OutOrStdout()).Summary(NewContext(), args[0], noPager)
		},
	}

	cmd.Flags().Bool("no-pager", false, "Write directly instead of through the pager")
	return cmd
}

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	var frequency frequencyValue

	cmd := &cobra.Command{
		Use:   "search [table-pattern] [column-pattern]",
		Short: "Search documented tables, or columns when two patterns are given",
		Long: `Search documentation with regular expressions.

One pattern matches table names. Two patterns match table and column names
and list columns.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, opts := searchRequest(cmd, args, string(frequency))
			if req.ColumnPattern != "" && req.Frequency != "" {
				return fmt.Errorf("--frequency applies to table searches only")
			}

			_, err := wire.SummaryAdapterWithOutput(cmd.OutOrStdout()).Search(NewContext(), req, opts)
			return err
		},
	}

	cmd.Flags().Bool("undocumented", false, "Only records without a description")
	cmd.Flags().Bool("recent", false, "Newest records first")
	cmd.Flags().Bool("no-header", false, "Print tuples only")
	cmd.Flags().Bool("expanded", false, "Print one block per record")
	cmd.Flags().Var(&frequency, "frequency", "Only tables with this update frequency ("+strings.Join(catalog.UpdateFrequencies, ", ")+")")
	return cmd
}

func searchRequest(cmd *cobra.Command, args []string, frequency string) (primary.SearchRequest, cliadapter.SearchOptions) {
	undocumented, _ := cmd.Flags().GetBool("undocumented")
	recent, _ := cmd.Flags().GetBool("recent")
	noHeader, _ := cmd.Flags().GetBool("no-header")
	expanded, _ := cmd.Flags().GetBool("expanded")

	req := primary.SearchRequest{
		TablePattern:     args[0],
		Frequency:        frequency,
		UndocumentedOnly: undocumented,
		MostRecentFirst:  recent,
	}
	if len(args) > 1 {
		req.ColumnPattern = args[1]
	}
	return req, cliadapter.SearchOptions{NoHeader: noHeader, Expanded: expanded}
}

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show documentation coverage per schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.SummaryAdapterWithOutput(cmd.OutOrStdout()).Stats(NewContext())
			return err
		},
	}
}
