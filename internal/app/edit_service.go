package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/core/editbuffer"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// AttemptResult is the outcome of one edit-parse-validate-apply pass.
type AttemptResult int

// Attempt results. Anything but AttemptApplied offers a retry.
const (
	AttemptApplied AttemptResult = iota
	AttemptEditorFailed
	AttemptParseFailed
	AttemptValidationFailed
	AttemptStoreFailed
)

func (r AttemptResult) String() string {
	switch r {
	case AttemptApplied:
		return "applied"
	case AttemptEditorFailed:
		return "editor failed"
	case AttemptParseFailed:
		return "parse failed"
	case AttemptValidationFailed:
		return "validation failed"
	case AttemptStoreFailed:
		return "store failed"
	}
	return "unknown"
}

// RetryPrompt is asked after a failed attempt.
const RetryPrompt = "Try again? (y/n) "

// EditServiceImpl implements the EditService interface.
type EditServiceImpl struct {
	tableRepo  secondary.TableDocRepository
	columnRepo secondary.ColumnDocRepository
	editor     secondary.Editor
	buffers    secondary.BufferStore
	prompter   secondary.Prompter
	changes    secondary.ChangeLog
	out        io.Writer
	now        func() time.Time
}

// NewEditService creates a new EditService with injected dependencies.
// Attempt errors are reported to out.
func NewEditService(
	tableRepo secondary.TableDocRepository,
	columnRepo secondary.ColumnDocRepository,
	editor secondary.Editor,
	buffers secondary.BufferStore,
	prompter secondary.Prompter,
	changes secondary.ChangeLog,
	out io.Writer,
) *EditServiceImpl {
	return &EditServiceImpl{
		tableRepo:  tableRepo,
		columnRepo: columnRepo,
		editor:     editor,
		buffers:    buffers,
		prompter:   prompter,
		changes:    changes,
		out:        out,
		now:        time.Now,
	}
}

// ResolveName finds the record a convenient name refers to. The lookups
// produced by catalog.ParseName are tried in order.
func (s *EditServiceImpl) ResolveName(ctx context.Context, name string) (*primary.Resolved, error) {
	lookup, err := catalog.ParseName(name)
	if err != nil {
		return nil, err
	}
	p := lookup.Parts

	for _, kind := range lookup.Lookups {
		switch kind {
		case catalog.LookupTableByName:
			records, err := s.tableRepo.FindByName(ctx, p[0])
			if err != nil {
				return nil, err
			}
			if len(records) > 0 {
				return &primary.Resolved{Kind: primary.KindTable, Table: recordToTableDoc(records[0])}, nil
			}
		case catalog.LookupTable:
			record, err := s.tableRepo.GetByIdentity(ctx, catalog.TableID{Schema: p[0], Table: p[1]})
			if isNotFound(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return &primary.Resolved{Kind: primary.KindTable, Table: recordToTableDoc(record)}, nil
		case catalog.LookupColumnByTableName:
			records, err := s.columnRepo.FindByTableAndColumn(ctx, p[0], p[1])
			if err != nil {
				return nil, err
			}
			if len(records) > 0 {
				return &primary.Resolved{Kind: primary.KindColumn, Column: recordToColumnDoc(records[0])}, nil
			}
		case catalog.LookupColumn:
			record, err := s.columnRepo.GetByIdentity(ctx, catalog.ColumnID{Schema: p[0], Table: p[1], Column: p[2]})
			if isNotFound(err) {
				continue
			}
			if err != nil {
				return nil, err
			}
			return &primary.Resolved{Kind: primary.KindColumn, Column: recordToColumnDoc(record)}, nil
		}
	}
	return nil, &catalog.NotFoundError{Name: lookup.Raw}
}

// Edit runs an edit session for whatever name resolves to.
func (s *EditServiceImpl) Edit(ctx context.Context, name string) (*primary.EditOutcome, error) {
	resolved, err := s.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}
	if resolved.Kind == primary.KindTable {
		return s.editTableByID(ctx, resolved.Table.ID)
	}
	return s.editColumnByID(ctx, resolved.Column.ID)
}

// EditTable runs an edit session for a table's documentation.
func (s *EditServiceImpl) EditTable(ctx context.Context, name string) (*primary.EditOutcome, error) {
	resolved, err := s.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}
	if resolved.Kind != primary.KindTable {
		return nil, &catalog.NotFoundError{Name: name}
	}
	return s.editTableByID(ctx, resolved.Table.ID)
}

// EditColumn runs an edit session for a column's documentation.
func (s *EditServiceImpl) EditColumn(ctx context.Context, name string) (*primary.EditOutcome, error) {
	resolved, err := s.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}
	if resolved.Kind != primary.KindColumn {
		return nil, &catalog.NotFoundError{Name: name}
	}
	return s.editColumnByID(ctx, resolved.Column.ID)
}

// editTarget describes one record being edited.
type editTarget struct {
	kind       string
	entity     string
	fields     []editbuffer.Field
	uneditable []string
	validate   catalog.Validator
	apply      func(ctx context.Context, update catalog.Update) error
}

func (s *EditServiceImpl) editTableByID(ctx context.Context, id int64) (*primary.EditOutcome, error) {
	record, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.runSession(ctx, editTarget{
		kind:       primary.KindTable,
		entity:     record.Identity().String(),
		fields:     tableFields(record),
		uneditable: catalog.TableUneditableFields,
		validate:   catalog.TableValidator(s.now),
		apply: func(ctx context.Context, update catalog.Update) error {
			return s.tableRepo.ApplyUpdate(ctx, record.ID, update)
		},
	})
}

func (s *EditServiceImpl) editColumnByID(ctx context.Context, id int64) (*primary.EditOutcome, error) {
	record, err := s.columnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.runSession(ctx, editTarget{
		kind:       primary.KindColumn,
		entity:     record.Identity().String(),
		fields:     columnFields(record),
		uneditable: catalog.ColumnUneditableFields,
		validate:   catalog.ValidateColumnEdit,
		apply: func(ctx context.Context, update catalog.Update) error {
			return s.columnRepo.ApplyUpdate(ctx, record.ID, update)
		},
	})
}

// runSession writes the buffer once and loops until an attempt applies or
// the operator declines a retry. Retries reopen the same buffer so edits
// are kept.
func (s *EditServiceImpl) runSession(ctx context.Context, target editTarget) (*primary.EditOutcome, error) {
	path, err := s.buffers.Write(target.kind, editbuffer.Render(target.fields, target.uneditable))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare edit buffer: %w", err)
	}
	defer s.buffers.Remove(path)

	outcome := &primary.EditOutcome{Entity: target.entity}
	for {
		outcome.Attempts++
		result, update, err := s.attempt(ctx, path, target)
		if result == AttemptApplied {
			outcome.Applied = true
			outcome.Fields = update.Fields()
			s.changes.LogUpdate(ctx, target.kind, target.entity, outcome.Fields)
			return outcome, nil
		}

		fmt.Fprintf(s.out, "Error (%s): %v\n", result, err)
		again, err := s.prompter.Confirm(RetryPrompt)
		if err != nil {
			return nil, err
		}
		if !again {
			return outcome, nil
		}
	}
}

func (s *EditServiceImpl) attempt(ctx context.Context, path string, target editTarget) (AttemptResult, catalog.Update, error) {
	if err := s.editor.Edit(ctx, path); err != nil {
		return AttemptEditorFailed, nil, err
	}
	text, err := s.buffers.Read(path)
	if err != nil {
		return AttemptEditorFailed, nil, err
	}
	raw, err := editbuffer.Parse(text)
	if err != nil {
		return AttemptParseFailed, nil, err
	}
	update, err := target.validate(raw)
	if err != nil {
		return AttemptValidationFailed, nil, err
	}
	if err := target.apply(ctx, update); err != nil {
		return AttemptStoreFailed, nil, err
	}
	return AttemptApplied, update, nil
}

func isNotFound(err error) bool {
	var notFound *catalog.NotFoundError
	return errors.As(err, &notFound)
}

// Ensure EditServiceImpl implements the interface
var _ primary.EditService = (*EditServiceImpl)(nil)
