package primary

import "context"

// SummaryService defines the primary port for read-only views of the catalog.
type SummaryService interface {
	// GetTableSummary returns a table and its columns.
	GetTableSummary(ctx context.Context, name string) (*TableSummary, error)

	// SearchTables finds tables whose name matches a pattern.
	SearchTables(ctx context.Context, req SearchRequest) ([]*TableDoc, error)

	// SearchColumns finds columns by table and column name patterns.
	SearchColumns(ctx context.Context, req SearchRequest) ([]*ColumnDoc, error)

	// GetStats returns documentation coverage per schema.
	GetStats(ctx context.Context) (*Stats, error)
}

// TableSummary is a table with its column records.
type TableSummary struct {
	Table   *TableDoc
	Columns []*ColumnDoc
}

// SearchRequest contains parameters for searching the catalog.
type SearchRequest struct {
	TablePattern     string
	ColumnPattern    string
	Frequency        string // tables only
	UndocumentedOnly bool
	MostRecentFirst  bool
}

// Stats holds per-schema coverage figures.
type Stats struct {
	Tables  []*TableStats
	Columns []*ColumnStats
}

// TableStats summarizes table documentation for one schema.
type TableStats struct {
	TableSchema      string
	NumTables        int
	PropWithDesc     float64
	PropWithApproval float64
	NumOrphaned      int
}

// ColumnStats summarizes column documentation for one schema.
type ColumnStats struct {
	TableSchema         string
	NumColumns          int
	PropWithDesc        float64
	PropWithExampleVals float64
	NumOrphaned         int
}
