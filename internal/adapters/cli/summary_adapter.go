package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// SummaryWidth is the width of the table summary layout.
const SummaryWidth = 100

var bannerStyle = lipgloss.NewStyle().
	Width(SummaryWidth).
	Align(lipgloss.Center).
	Bold(true).
	Border(lipgloss.DoubleBorder(), true, false)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	indentStyle  = lipgloss.NewStyle().Width(SummaryWidth).PaddingLeft(4)
	columnName   = color.New(color.Bold, color.Underline)
)

// SearchOptions controls how search results are printed.
type SearchOptions struct {
	NoHeader bool // tuples only
	Expanded bool // one block per record
}

// SummaryAdapter translates CLI operations to SummaryService calls.
type SummaryAdapter struct {
	service primary.SummaryService
	pager   secondary.Pager
	out     io.Writer
}

// NewSummaryAdapter creates a new SummaryAdapter. pager may be nil, in which
// case summaries are written directly.
func NewSummaryAdapter(service primary.SummaryService, pager secondary.Pager, out io.Writer) *SummaryAdapter {
	return &SummaryAdapter{
		service: service,
		pager:   pager,
		out:     out,
	}
}

// Summary shows a table's documentation and its columns.
func (a *SummaryAdapter) Summary(ctx context.Context, name string, noPager bool) error {
	summary, err := a.service.GetTableSummary(ctx, name)
	if err != nil {
		return err
	}

	text := RenderSummary(summary)
	if noPager || a.pager == nil {
		_, err := io.WriteString(a.out, text)
		return err
	}
	return a.pager.Page(ctx, text)
}

// RenderSummary lays out a table summary.
func RenderSummary(s *primary.TableSummary) string {
	t := s.Table
	var b strings.Builder

	b.WriteString(bannerStyle.Render(fmt.Sprintf("TABLE %s.%s", t.TableSchema, t.TableName)))
	b.WriteString("\n")

	writeSection(&b, "Description", orNone(t.Description))
	writeSection(&b, "Common joins", orNone(t.CommonJoins))

	rows := "unknown"
	if t.RowsCount != nil {
		rows = FormatThousands(*t.RowsCount)
		if t.RowsCountAsOf != "" {
			rows += " (as of " + t.RowsCountAsOf + ")"
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Rows:              %s\n", rows)
	fmt.Fprintf(&b, "Update frequency:  %s\n", orNone(t.IntendedUpdateFrequency))
	fmt.Fprintf(&b, "Deprecated:        %s\n", yesNo(t.Deprecated))
	approval := yesNo(t.DocsApproved)
	if t.LastApprovalAt != "" {
		approval += " (last approved " + t.LastApprovalAt + ")"
	}
	fmt.Fprintf(&b, "Approved:          %s\n", approval)
	if t.Orphaned {
		fmt.Fprintf(&b, "%s Table no longer exists upstream\n", warnMark)
	}

	b.WriteString(sectionStyle.Render("COLUMN DETAILS"))
	b.WriteString("\n")
	if len(s.Columns) == 0 {
		b.WriteString("No documented columns\n")
	}
	for _, c := range s.Columns {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s (%s)", columnName.Sprint(c.ColumnName), orNone(c.DataType))
		if c.Orphaned {
			b.WriteString(" [orphaned]")
		}
		b.WriteString("\n")
		b.WriteString(indentStyle.Render(orNone(c.Description)))
		b.WriteString("\n")
		if c.ExampleVals != "" {
			b.WriteString(indentStyle.Render("Examples: " + c.ExampleVals))
			b.WriteString("\n")
		}
		if c.AlsoGoesBy != "" {
			b.WriteString(indentStyle.Render("Also goes by: " + c.AlsoGoesBy))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeSection(b *strings.Builder, title, body string) {
	b.WriteString(sectionStyle.Render(title + ":"))
	b.WriteString("\n")
	b.WriteString(indentStyle.Render(body))
	b.WriteString("\n")
}

// Search prints tables matching tablePattern, or columns when columnPattern
// is also given.
func (a *SummaryAdapter) Search(ctx context.Context, req primary.SearchRequest, opts SearchOptions) (int, error) {
	var (
		header []string
		rows   [][]string
	)

	if req.ColumnPattern == "" {
		tables, err := a.service.SearchTables(ctx, req)
		if err != nil {
			return 0, err
		}
		header = []string{"SCHEMA", "TABLE", "FREQUENCY", "APPROVED", "DESCRIPTION"}
		for _, t := range tables {
			rows = append(rows, []string{t.TableSchema, t.TableName, t.IntendedUpdateFrequency, yesNo(t.DocsApproved), firstLine(t.Description)})
		}
	} else {
		columns, err := a.service.SearchColumns(ctx, req)
		if err != nil {
			return 0, err
		}
		header = []string{"SCHEMA", "TABLE", "COLUMN", "TYPE", "DESCRIPTION"}
		for _, c := range columns {
			rows = append(rows, []string{c.TableSchema, c.TableName, c.ColumnName, c.DataType, firstLine(c.Description)})
		}
	}

	if len(rows) == 0 {
		if !opts.NoHeader {
			fmt.Fprintln(a.out, "No matches found")
		}
		return 0, nil
	}

	if opts.Expanded {
		writeExpanded(a.out, header, rows, opts.NoHeader)
		return len(rows), nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	if !opts.NoHeader {
		fmt.Fprintln(w, strings.Join(header, "\t"))
		dashes := make([]string, len(header))
		for i, h := range header {
			dashes[i] = strings.Repeat("-", len(h))
		}
		fmt.Fprintln(w, strings.Join(dashes, "\t"))
	}
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	w.Flush()
	return len(rows), nil
}

func writeExpanded(out io.Writer, header []string, rows [][]string, noHeader bool) {
	for i, r := range rows {
		if !noHeader {
			fmt.Fprintf(out, "-[ RECORD %d ]-\n", i+1)
		} else if i > 0 {
			fmt.Fprintln(out)
		}
		w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
		for j, h := range header {
			fmt.Fprintf(w, "%s\t| %s\n", strings.ToLower(h), r[j])
		}
		w.Flush()
	}
}

// Stats prints documentation coverage per schema.
func (a *SummaryAdapter) Stats(ctx context.Context) (*primary.Stats, error) {
	stats, err := a.service.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SCHEMA\tTABLES\tWITH DESCRIPTION\tAPPROVED\tORPHANED")
	fmt.Fprintln(w, "------\t------\t----------------\t--------\t--------")
	for _, t := range stats.Tables {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n", t.TableSchema, t.NumTables, percent(t.PropWithDesc), percent(t.PropWithApproval), t.NumOrphaned)
	}
	w.Flush()
	fmt.Fprintln(a.out)

	w = tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SCHEMA\tCOLUMNS\tWITH DESCRIPTION\tWITH EXAMPLES\tORPHANED")
	fmt.Fprintln(w, "------\t-------\t----------------\t-------------\t--------")
	for _, c := range stats.Columns {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n", c.TableSchema, c.NumColumns, percent(c.PropWithDesc), percent(c.PropWithExampleVals), c.NumOrphaned)
	}
	w.Flush()
	return stats, nil
}

// FormatThousands renders n with comma thousands separators.
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

func yesNo(b *bool) string {
	switch {
	case b == nil:
		return "unknown"
	case *b:
		return "yes"
	}
	return "no"
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
