package primary

import "context"

// HistoryService defines the primary port for the documentation change history.
type HistoryService interface {
	// ListChanges retrieves change entries matching the given filters, newest first.
	ListChanges(ctx context.Context, filters HistoryFilters) ([]*ChangeEntry, error)

	// PruneChanges deletes entries older than the specified number of days.
	PruneChanges(ctx context.Context, olderThanDays int) (int, error)
}

// ChangeEntry represents a committed documentation change at the port boundary.
type ChangeEntry struct {
	ID         int64
	ChangedAt  string
	Operator   string
	EntityType string
	Entity     string
	Action     string // 'update', 'rename', 'delete', 'transfer'
	Detail     string // fields for updates, target for renames and transfers
}

// HistoryFilters contains filter options for querying the change history.
type HistoryFilters struct {
	EntityType string
	Entity     string // a table name also matches its columns
	Operator   string
	Action     string
	Limit      int
}
