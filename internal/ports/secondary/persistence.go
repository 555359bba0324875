// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/schemadoc/internal/core/catalog"
)

// IgnoreRules restrict which live tables discovery may document.
// Values are always bound as query parameters.
type IgnoreRules struct {
	Schemas       []string // schema names excluded from discovery
	TablePatterns []string // regular expressions matched against table names
}

// TableDocRepository defines the secondary port for table documentation.
type TableDocRepository interface {
	// GetByID retrieves a table record by its ID.
	GetByID(ctx context.Context, id int64) (*TableDocRecord, error)

	// GetByIdentity retrieves a table record by schema and table name.
	// Returns *catalog.NotFoundError when missing.
	GetByIdentity(ctx context.Context, id catalog.TableID) (*TableDocRecord, error)

	// FindByName retrieves table records with the given name in any schema.
	FindByName(ctx context.Context, table string) ([]*TableDocRecord, error)

	// Exists checks whether a table identity is documented.
	Exists(ctx context.Context, id catalog.TableID) (bool, error)

	// List retrieves table records matching the given filters.
	List(ctx context.Context, filters TableDocFilters) ([]*TableDocRecord, error)

	// InsertMissing documents every live table not yet documented and not
	// excluded by rules. Returns the number of rows inserted.
	InsertMissing(ctx context.Context, rules IgnoreRules) (int, error)

	// MarkOrphaned flags non-orphaned records whose table no longer exists
	// upstream. Returns the number of rows updated.
	MarkOrphaned(ctx context.Context) (int, error)

	// ApplyUpdate writes each assignment with its own statement inside a
	// single transaction. Failures return *catalog.StoreError.
	ApplyUpdate(ctx context.Context, id int64, update catalog.Update) error

	// PickOrphan returns a random orphaned table, or nil when none remain.
	PickOrphan(ctx context.Context) (*TableDocRecord, error)

	// Rename renames a table record and every column record under it.
	// Clears the orphaned flag on the renamed rows.
	Rename(ctx context.Context, id int64, newName string) error

	// Delete removes a table record and every column record under it.
	Delete(ctx context.Context, id int64) error

	// Transfer copies documentation from one table record (and its columns)
	// onto another, then deletes the source.
	Transfer(ctx context.Context, fromID, toID int64) error

	// UpdateRowCount stores a cardinality snapshot.
	UpdateRowCount(ctx context.Context, id int64, count int64) error
}

// TableDocRecord represents a table documentation row as stored in persistence.
type TableDocRecord struct {
	ID                      int64
	TableSchema             string
	TableName               string
	Description             string // Empty string means null
	CommonJoins             string // Empty string means null
	RowsCount               *int64
	RowsCountAsOf           string // RFC3339, empty means null
	IntendedUpdateFrequency string // Empty string means null
	DocsApproved            *bool
	LastApprovalAt          string // RFC3339, empty means null
	Deprecated              *bool
	Orphaned                bool
	InsertedAt              string // RFC3339
}

// Identity returns the record's table identity.
func (r *TableDocRecord) Identity() catalog.TableID {
	return catalog.TableID{Schema: r.TableSchema, Table: r.TableName}
}

// TableDocFilters contains filter options for querying table records.
type TableDocFilters struct {
	TablePattern     string // regular expression on table_name
	Schema           string
	Frequency        string
	UndocumentedOnly bool // description IS NULL
	ExcludeOrphaned  bool
	MostRecentFirst  bool // order by inserted_at descending
}

// ColumnDocRepository defines the secondary port for column documentation.
type ColumnDocRepository interface {
	// GetByID retrieves a column record by its ID.
	GetByID(ctx context.Context, id int64) (*ColumnDocRecord, error)

	// GetByIdentity retrieves a column record by schema, table and column.
	// Returns *catalog.NotFoundError when missing.
	GetByIdentity(ctx context.Context, id catalog.ColumnID) (*ColumnDocRecord, error)

	// FindByTableAndColumn retrieves column records in any schema.
	FindByTableAndColumn(ctx context.Context, table, column string) ([]*ColumnDocRecord, error)

	// Exists checks whether a column identity is documented.
	Exists(ctx context.Context, id catalog.ColumnID) (bool, error)

	// ListByTable retrieves the column records of one table, ordered by column name.
	ListByTable(ctx context.Context, id catalog.TableID) ([]*ColumnDocRecord, error)

	// List retrieves column records matching the given filters.
	List(ctx context.Context, filters ColumnDocFilters) ([]*ColumnDocRecord, error)

	// InsertMissing documents every live column of an already documented
	// table. Returns the number of rows inserted.
	InsertMissing(ctx context.Context, rules IgnoreRules) (int, error)

	// MarkOrphaned flags non-orphaned records whose column no longer exists
	// upstream. Returns the number of rows updated.
	MarkOrphaned(ctx context.Context) (int, error)

	// ApplyUpdate writes each assignment with its own statement inside a
	// single transaction. Failures return *catalog.StoreError.
	ApplyUpdate(ctx context.Context, id int64, update catalog.Update) error

	// PickOrphan returns a random orphaned column, or nil when none remain.
	PickOrphan(ctx context.Context) (*ColumnDocRecord, error)

	// Rename renames one column record and clears its orphaned flag.
	Rename(ctx context.Context, id int64, newName string) error

	// Delete removes one column record.
	Delete(ctx context.Context, id int64) error

	// Transfer copies documentation from one column record onto another,
	// then deletes the source.
	Transfer(ctx context.Context, fromID, toID int64) error

	// NextWithoutExamples returns the next non-orphaned column with no
	// example values, skipping the given IDs. Returns nil when none remain.
	NextWithoutExamples(ctx context.Context, skip []int64) (*ColumnDocRecord, error)

	// SetExamples stores the joined example values of a column.
	SetExamples(ctx context.Context, id int64, examples string) error
}

// ColumnDocRecord represents a column documentation row as stored in persistence.
type ColumnDocRecord struct {
	ID          int64
	TableSchema string
	TableName   string
	ColumnName  string
	DataType    string
	Description string // Empty string means null
	ExampleVals string // Empty string means null
	AlsoGoesBy  string // Empty string means null
	Orphaned    bool
	InsertedAt  string // RFC3339
}

// Identity returns the record's column identity.
func (r *ColumnDocRecord) Identity() catalog.ColumnID {
	return catalog.ColumnID{Schema: r.TableSchema, Table: r.TableName, Column: r.ColumnName}
}

// ColumnDocFilters contains filter options for querying column records.
type ColumnDocFilters struct {
	TablePattern     string // regular expression on table_name
	ColumnPattern    string // regular expression on column_name
	UndocumentedOnly bool
	MostRecentFirst  bool
}

// LiveCatalog reads the live system catalog of the documented database.
type LiveCatalog interface {
	// TableExists checks whether a table or view currently exists.
	TableExists(ctx context.Context, id catalog.TableID) (bool, error)

	// ColumnExists checks whether a column currently exists.
	ColumnExists(ctx context.Context, id catalog.ColumnID) (bool, error)
}

// Sampler reads data from documented tables.
type Sampler interface {
	// SampleRanked returns the distinct textual values of a column sample,
	// most frequent first. NULL is rendered as "NULL".
	SampleRanked(ctx context.Context, id catalog.ColumnID) ([]string, error)

	// CountRows returns the exact row count of a table.
	CountRows(ctx context.Context, id catalog.TableID) (int64, error)
}

// StatsRepository aggregates documentation coverage per schema.
type StatsRepository interface {
	TableStats(ctx context.Context) ([]*TableStatsRecord, error)
	ColumnStats(ctx context.Context) ([]*ColumnStatsRecord, error)
}

// TableStatsRecord summarizes table documentation for one schema.
type TableStatsRecord struct {
	TableSchema      string
	NumTables        int
	PropWithDesc     float64
	PropWithApproval float64
	NumOrphaned      int
}

// ColumnStatsRecord summarizes column documentation for one schema.
type ColumnStatsRecord struct {
	TableSchema         string
	NumColumns          int
	PropWithDesc        float64
	PropWithExampleVals float64
	NumOrphaned         int
}
