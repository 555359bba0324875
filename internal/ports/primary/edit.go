package primary

import "context"

// EditService defines the primary port for editor-driven documentation.
type EditService interface {
	// ResolveName finds the table or column record a convenient name refers to.
	ResolveName(ctx context.Context, name string) (*Resolved, error)

	// Edit runs an edit session for whatever name resolves to.
	Edit(ctx context.Context, name string) (*EditOutcome, error)

	// EditTable runs an edit session for a table's documentation.
	EditTable(ctx context.Context, name string) (*EditOutcome, error)

	// EditColumn runs an edit session for a column's documentation.
	EditColumn(ctx context.Context, name string) (*EditOutcome, error)
}

// Entity kinds.
const (
	KindTable  = "table"
	KindColumn = "column"
)

// Resolved is the record a name resolved to. Exactly one of Table and
// Column is set, according to Kind.
type Resolved struct {
	Kind   string
	Table  *TableDoc
	Column *ColumnDoc
}

// EditOutcome describes how an edit session ended.
type EditOutcome struct {
	Entity   string   // schema.table or schema.table.column
	Applied  bool     // false when the operator gave up
	Fields   []string // fields written, in order
	Attempts int
}

// TableDoc is the public view of a table documentation record.
type TableDoc struct {
	ID                      int64
	TableSchema             string
	TableName               string
	Description             string
	CommonJoins             string
	RowsCount               *int64
	RowsCountAsOf           string
	IntendedUpdateFrequency string
	DocsApproved            *bool
	LastApprovalAt          string
	Deprecated              *bool
	Orphaned                bool
	InsertedAt              string
}

// ColumnDoc is the public view of a column documentation record.
type ColumnDoc struct {
	ID          int64
	TableSchema string
	TableName   string
	ColumnName  string
	DataType    string
	Description string
	ExampleVals string
	AlsoGoesBy  string
	Orphaned    bool
	InsertedAt  string
}
