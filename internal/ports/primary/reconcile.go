package primary

import "context"

// ReconcileService defines the primary port for keeping the documentation
// tables in step with the live schema. Reconciliation inserts and flags; it
// never deletes documentation.
type ReconcileService interface {
	// DiscoverNewTables documents live tables that are not yet documented.
	DiscoverNewTables(ctx context.Context) (int, error)

	// DiscoverNewColumns documents live columns of documented tables.
	DiscoverNewColumns(ctx context.Context) (int, error)

	// MarkOrphanedTables flags documented tables that disappeared upstream.
	MarkOrphanedTables(ctx context.Context) (int, error)

	// MarkOrphanedColumns flags documented columns that disappeared upstream.
	MarkOrphanedColumns(ctx context.Context) (int, error)

	// Sync runs all four steps in order.
	Sync(ctx context.Context) (*SyncReport, error)

	// RefreshRowCounts stores current row counts for live documented tables.
	RefreshRowCounts(ctx context.Context) (int, error)
}

// SyncReport contains the counts of one reconciliation run.
type SyncReport struct {
	TablesInserted  int
	ColumnsInserted int
	TablesOrphaned  int
	ColumnsOrphaned int
}
