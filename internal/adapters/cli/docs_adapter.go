package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/schemadoc/internal/ports/primary"
)

// DocsAdapter translates CLI operations to EditService and OrphanService calls.
type DocsAdapter struct {
	edits   primary.EditService
	orphans primary.OrphanService
	out     io.Writer
}

// NewDocsAdapter creates a new DocsAdapter with the given services.
func NewDocsAdapter(edits primary.EditService, orphans primary.OrphanService, out io.Writer) *DocsAdapter {
	return &DocsAdapter{
		edits:   edits,
		orphans: orphans,
		out:     out,
	}
}

// Edit runs an edit session for a table or column name.
// kind restricts the lookup to primary.KindTable or primary.KindColumn; empty
// accepts either.
func (a *DocsAdapter) Edit(ctx context.Context, kind, name string) (*primary.EditOutcome, error) {
	var (
		outcome *primary.EditOutcome
		err     error
	)
	switch kind {
	case primary.KindTable:
		outcome, err = a.edits.EditTable(ctx, name)
	case primary.KindColumn:
		outcome, err = a.edits.EditColumn(ctx, name)
	default:
		outcome, err = a.edits.Edit(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	if !outcome.Applied {
		fmt.Fprintf(a.out, "No changes saved to %s\n", outcome.Entity)
		return outcome, nil
	}
	fmt.Fprintf(a.out, "%s Updated %s", okMark, outcome.Entity)
	if len(outcome.Fields) > 0 {
		fmt.Fprintf(a.out, " (%s)", strings.Join(outcome.Fields, ", "))
	}
	fmt.Fprintln(a.out)
	return outcome, nil
}

// ResolveOrphans runs one orphan-resolution session for kind.
func (a *DocsAdapter) ResolveOrphans(ctx context.Context, kind string) (*primary.OrphanOutcome, error) {
	var (
		outcome *primary.OrphanOutcome
		err     error
	)
	switch kind {
	case primary.KindTable:
		outcome, err = a.orphans.ResolveTable(ctx)
	case primary.KindColumn:
		outcome, err = a.orphans.ResolveColumn(ctx)
	default:
		return nil, fmt.Errorf("unknown orphan kind %q (expected table or column)", kind)
	}
	if err != nil {
		return nil, err
	}
	if outcome.Empty {
		return outcome, nil
	}

	switch outcome.Action {
	case "rename":
		fmt.Fprintf(a.out, "%s Renamed %s to %s\n", okMark, outcome.Entity, outcome.Target)
	case "delete":
		fmt.Fprintf(a.out, "%s Deleted documentation for %s\n", okMark, outcome.Entity)
	case "transfer":
		fmt.Fprintf(a.out, "%s Transferred documentation from %s to %s\n", okMark, outcome.Entity, outcome.Target)
	}
	return outcome, nil
}
