package secondary

import (
	"context"
	"time"
)

// ChangeLog records documentation changes after they are committed.
type ChangeLog interface {
	// LogUpdate logs the fields written to a record.
	LogUpdate(ctx context.Context, entityType, entity string, fields []string)

	// LogRename logs a rename of a record.
	LogRename(ctx context.Context, entityType, from, to string)

	// LogDelete logs a removal of a record.
	LogDelete(ctx context.Context, entityType, entity string)

	// LogTransfer logs documentation moved from one record onto another.
	LogTransfer(ctx context.Context, entityType, from, to string)
}

// ChangeLogRepository stores the documentation change history.
type ChangeLogRepository interface {
	// Create appends an entry.
	Create(ctx context.Context, record *ChangeLogRecord) error

	// List returns entries matching filters, newest first.
	List(ctx context.Context, filters ChangeLogFilters) ([]*ChangeLogRecord, error)

	// PruneOlderThan deletes entries recorded before cutoff.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ChangeLogRecord is one committed documentation change.
type ChangeLogRecord struct {
	ID         int64
	ChangedAt  string
	Operator   string
	EntityType string // table or column
	Entity     string // schema.table or schema.table.column
	Action     string // update, rename, delete, transfer
	Detail     string // fields written, or the rename/transfer target
}

// ChangeLogFilters contains filter options for querying the change history.
type ChangeLogFilters struct {
	EntityType string
	Entity     string // matches the entity and, for a table, its columns
	Operator   string
	Action     string
	Limit      int
}
