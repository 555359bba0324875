package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/core/catalog"
)

// schemaTemplate is the single source of truth for the documentation tables.
// %[1]s is the quoted working schema. Tests load it through GetSchemaSQL.
//
// There are no foreign keys between the tables: column records are tied to
// their table by (table_schema, table_name) and renames cascade in code.
const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s.tables (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	table_schema TEXT NOT NULL,
	table_name TEXT NOT NULL,
	description TEXT,
	common_joins TEXT,
	rows_count INTEGER,
	rows_count_as_of DATETIME,
	intended_update_frequency TEXT CHECK(intended_update_frequency IN (%[2]s)),
	docs_approved BOOLEAN,
	last_approval_at DATETIME,
	deprecated BOOLEAN,
	orphaned BOOLEAN NOT NULL DEFAULT 0,
	inserted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(table_schema, table_name)
);

CREATE TABLE IF NOT EXISTS %[1]s.columns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	table_schema TEXT NOT NULL,
	table_name TEXT NOT NULL,
	column_name TEXT NOT NULL,
	data_type TEXT,
	description TEXT,
	example_vals TEXT,
	also_goes_by TEXT,
	orphaned BOOLEAN NOT NULL DEFAULT 0,
	inserted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(table_schema, table_name, column_name)
);

CREATE INDEX IF NOT EXISTS %[1]s.idx_columns_table ON columns(table_schema, table_name);

CREATE TABLE IF NOT EXISTS %[1]s.change_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	changed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	operator TEXT,
	entity_type TEXT NOT NULL,
	entity TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('update', 'rename', 'delete', 'transfer')),
	detail TEXT
);
`

// GetSchemaSQL returns the documentation DDL for the given working schema.
func GetSchemaSQL(schema string) string {
	quoted := make([]string, len(catalog.UpdateFrequencies))
	for i, f := range catalog.UpdateFrequencies {
		quoted[i] = "'" + f + "'"
	}
	return fmt.Sprintf(schemaTemplate, QuoteIdent(schema), strings.Join(quoted, ", "))
}

// InitSchema creates the documentation tables if they do not exist yet.
func InitSchema(conn *sqlx.DB, schema string) error {
	_, err := conn.Exec(GetSchemaSQL(schema))
	return err
}

// QuoteIdent quotes an identifier for interpolation into SQL.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
