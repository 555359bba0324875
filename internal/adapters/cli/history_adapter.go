package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/schemadoc/internal/ports/primary"
)

// HistoryAdapter translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List prints change history entries, newest first.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.HistoryFilters) ([]*primary.ChangeEntry, error) {
	entries, err := a.service.ListChanges(ctx, filters)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No changes recorded")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATOR\tACTION\tENTITY\tDETAIL")
	fmt.Fprintln(w, "----\t--------\t------\t------\t------")
	for _, e := range entries {
		detail := e.Detail
		switch e.Action {
		case "rename", "transfer":
			detail = "-> " + detail
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ChangedAt, orNone(e.Operator), e.Action, e.Entity, detail)
	}
	w.Flush()
	return entries, nil
}

// Prune deletes history older than the given number of days.
func (a *HistoryAdapter) Prune(ctx context.Context, olderThanDays int) error {
	n, err := a.service.PruneChanges(ctx, olderThanDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Pruned %d change log entries older than %d days\n", okMark, n, olderThanDays)
	return nil
}
