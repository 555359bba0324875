package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/core/orphan"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// OrphanServiceImpl implements the OrphanService interface.
type OrphanServiceImpl struct {
	tableRepo  secondary.TableDocRepository
	columnRepo secondary.ColumnDocRepository
	prompter   secondary.Prompter
	changes    secondary.ChangeLog
	out        io.Writer
}

// NewOrphanService creates a new OrphanService with injected dependencies.
func NewOrphanService(
	tableRepo secondary.TableDocRepository,
	columnRepo secondary.ColumnDocRepository,
	prompter secondary.Prompter,
	changes secondary.ChangeLog,
	out io.Writer,
) *OrphanServiceImpl {
	return &OrphanServiceImpl{
		tableRepo:  tableRepo,
		columnRepo: columnRepo,
		prompter:   prompter,
		changes:    changes,
		out:        out,
	}
}

// ResolveTable walks the operator through one random orphaned table.
func (s *OrphanServiceImpl) ResolveTable(ctx context.Context) (*primary.OrphanOutcome, error) {
	record, err := s.tableRepo.PickOrphan(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		fmt.Fprintln(s.out, "No orphaned tables found")
		return &primary.OrphanOutcome{Empty: true}, nil
	}

	current := record.Identity()
	columns, err := s.columnRepo.ListByTable(ctx, current)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Orphaned table: %s (%d documented columns)\n", current, len(columns))
	if record.Description != "" {
		fmt.Fprintf(s.out, "Description: %s\n", record.Description)
	}

	return s.await(ctx, current.String(), func(action orphan.Action) (*primary.OrphanOutcome, string, error) {
		switch orphan.Next(action) {
		case orphan.StateRename:
			name, err := s.prompter.Ask("New table name: ")
			if err != nil {
				return nil, "", err
			}
			name = strings.TrimSpace(name)
			target := catalog.TableID{Schema: current.Schema, Table: name}
			exists, err := s.tableRepo.Exists(ctx, target)
			if err != nil {
				return nil, "", err
			}
			guard := orphan.CanRename(orphan.RenameContext{
				Current: current.String(), IsOrphaned: record.Orphaned, NewName: name, TargetExists: exists,
			})
			if !guard.Allowed {
				return nil, guard.Reason, nil
			}
			if err := s.tableRepo.Rename(ctx, record.ID, name); err != nil {
				return nil, "", err
			}
			s.changes.LogRename(ctx, primary.KindTable, current.String(), target.String())
			return &primary.OrphanOutcome{Entity: current.String(), Action: "rename", Target: target.String()}, "", nil

		case orphan.StateDelete:
			guard := orphan.CanDelete(orphan.DeleteContext{Current: current.String(), IsOrphaned: record.Orphaned})
			if !guard.Allowed {
				return nil, guard.Reason, nil
			}
			if err := s.tableRepo.Delete(ctx, record.ID); err != nil {
				return nil, "", err
			}
			s.changes.LogDelete(ctx, primary.KindTable, current.String())
			return &primary.OrphanOutcome{Entity: current.String(), Action: "delete"}, "", nil

		case orphan.StateTransfer:
			input, err := s.prompter.Ask("Transfer documentation to table ([schema.]table): ")
			if err != nil {
				return nil, "", err
			}
			target, ok := parseTableTarget(current.Schema, input)
			if !ok {
				return nil, fmt.Sprintf("invalid table name %q", strings.TrimSpace(input)), nil
			}
			targetRecord, err := s.tableRepo.GetByIdentity(ctx, target)
			if err != nil && !isNotFound(err) {
				return nil, "", err
			}
			guard := orphan.CanTransfer(orphan.TransferContext{
				Current:          current.String(),
				IsOrphaned:       record.Orphaned,
				Target:           target.String(),
				TargetExists:     targetRecord != nil,
				TargetIsOrphaned: targetRecord != nil && targetRecord.Orphaned,
			})
			if !guard.Allowed {
				return nil, guard.Reason, nil
			}
			if err := s.tableRepo.Transfer(ctx, record.ID, targetRecord.ID); err != nil {
				return nil, "", err
			}
			s.changes.LogTransfer(ctx, primary.KindTable, current.String(), target.String())
			return &primary.OrphanOutcome{Entity: current.String(), Action: "transfer", Target: target.String()}, "", nil
		}
		return nil, "", nil
	})
}

// ResolveColumn walks the operator through one random orphaned column.
func (s *OrphanServiceImpl) ResolveColumn(ctx context.Context) (*primary.OrphanOutcome, error) {
	record, err := s.columnRepo.PickOrphan(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		fmt.Fprintln(s.out, "No orphaned columns found")
		return &primary.OrphanOutcome{Empty: true}, nil
	}

	current := record.Identity()
	fmt.Fprintf(s.out, "Orphaned column: %s (%s)\n", current, record.DataType)
	if record.Description != "" {
		fmt.Fprintf(s.out, "Description: %s\n", record.Description)
	}

	return s.await(ctx, current.String(), func(action orphan.Action) (*primary.OrphanOutcome, string, error) {
		switch orphan.Next(action) {
		case orphan.StateRename:
			name, err := s.prompter.Ask("New column name: ")
			if err != nil {
				return nil, "", err
			}
			name = strings.TrimSpace(name)
			target := catalog.ColumnID{Schema: current.Schema, Table: current.Table, Column: name}
			exists, err := s.columnRepo.Exists(ctx, target)
			if err != nil {
				return nil, "", err
			}
			guard := orphan.CanRename(orphan.RenameContext{
				Current: current.String(), IsOrphaned: record.Orphaned, NewName: name, TargetExists: exists,
			})
			if !guard.Allowed {
				return nil, guard.Reason, nil
			}
			if err := s.columnRepo.Rename(ctx, record.ID, name); err != nil {
				return nil, "", err
			}
			s.changes.LogRename(ctx, primary.KindColumn, current.String(), target.String())
			return &primary.OrphanOutcome{Entity: current.String(), Action: "rename", Target: target.String()}, "", nil

		case orphan.StateDelete:
			guard := orphan.CanDelete(orphan.DeleteContext{Current: current.String(), IsOrphaned: record.Orphaned})
			if !guard.Allowed {
				return nil, guard.Reason, nil
			}
			if err := s.columnRepo.Delete(ctx, record.ID); err != nil {
				return nil, "", err
			}
			s.changes.LogDelete(ctx, primary.KindColumn, current.String())
			return &primary.OrphanOutcome{Entity: current.String(), Action: "delete"}, "", nil

		case orphan.StateTransfer:
			input, err := s.prompter.Ask("Transfer documentation to column ([[schema.]table.]column): ")
			if err != nil {
				return nil, "", err
			}
			target, ok := parseColumnTarget(current, input)
			if !ok {
				return nil, fmt.Sprintf("invalid column name %q", strings.TrimSpace(input)), nil
			}
			targetRecord, err := s.columnRepo.GetByIdentity(ctx, target)
			if err != nil && !isNotFound(err) {
				return nil, "", err
			}
			guard := orphan.CanTransfer(orphan.TransferContext{
				Current:          current.String(),
				IsOrphaned:       record.Orphaned,
				Target:           target.String(),
				TargetExists:     targetRecord != nil,
				TargetIsOrphaned: targetRecord != nil && targetRecord.Orphaned,
			})
			if !guard.Allowed {
				return nil, guard.Reason, nil
			}
			if err := s.columnRepo.Transfer(ctx, record.ID, targetRecord.ID); err != nil {
				return nil, "", err
			}
			s.changes.LogTransfer(ctx, primary.KindColumn, current.String(), target.String())
			return &primary.OrphanOutcome{Entity: current.String(), Action: "transfer", Target: target.String()}, "", nil
		}
		return nil, "", nil
	})
}

// actionFunc carries out an accepted action. A non-empty refusal sends the
// session back to AWAIT_ACTION.
type actionFunc func(action orphan.Action) (outcome *primary.OrphanOutcome, refusal string, err error)

// await reads actions until one completes. Unknown input re-prompts.
func (s *OrphanServiceImpl) await(ctx context.Context, entity string, do actionFunc) (*primary.OrphanOutcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input, err := s.prompter.Ask(orphan.ActionPrompt)
		if err != nil {
			return nil, err
		}
		action, ok := orphan.ParseAction(input)
		if !ok {
			fmt.Fprintf(s.out, "Unknown choice %q\n", strings.TrimSpace(input))
			continue
		}

		outcome, refusal, err := do(action)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", entity, err)
		}
		if refusal != "" {
			fmt.Fprintln(s.out, refusal)
			continue
		}
		if outcome != nil {
			return outcome, nil
		}
	}
}

// parseTableTarget reads "table" (in schema) or "schema.table".
func parseTableTarget(schema, input string) (catalog.TableID, bool) {
	parts := strings.Split(strings.TrimSpace(input), ".")
	switch len(parts) {
	case 1:
		return catalog.TableID{Schema: schema, Table: parts[0]}, parts[0] != ""
	case 2:
		return catalog.TableID{Schema: parts[0], Table: parts[1]}, parts[0] != "" && parts[1] != ""
	}
	return catalog.TableID{}, false
}

// parseColumnTarget reads "column", "table.column" or "schema.table.column",
// filling the missing parts from current.
func parseColumnTarget(current catalog.ColumnID, input string) (catalog.ColumnID, bool) {
	parts := strings.Split(strings.TrimSpace(input), ".")
	for _, p := range parts {
		if p == "" {
			return catalog.ColumnID{}, false
		}
	}
	switch len(parts) {
	case 1:
		return catalog.ColumnID{Schema: current.Schema, Table: current.Table, Column: parts[0]}, true
	case 2:
		return catalog.ColumnID{Schema: current.Schema, Table: parts[0], Column: parts[1]}, true
	case 3:
		return catalog.ColumnID{Schema: parts[0], Table: parts[1], Column: parts[2]}, true
	}
	return catalog.ColumnID{}, false
}

// Ensure OrphanServiceImpl implements the interface
var _ primary.OrphanService = (*OrphanServiceImpl)(nil)
