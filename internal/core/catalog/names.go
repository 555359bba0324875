// Package catalog contains the pure domain logic for table and column
// documentation: identities, field sets, edit validation, and errors.
package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// TableID identifies a documented table.
type TableID struct {
	Schema string
	Table  string
}

func (id TableID) String() string {
	return id.Schema + "." + id.Table
}

// ColumnID identifies a documented column.
type ColumnID struct {
	Schema string
	Table  string
	Column string
}

func (id ColumnID) String() string {
	return id.Schema + "." + id.Table + "." + id.Column
}

// TableID returns the identity of the column's parent table.
func (id ColumnID) TableID() TableID {
	return TableID{Schema: id.Schema, Table: id.Table}
}

// Lookup kinds produced by ParseName.
const (
	LookupTableByName       = "table_by_name"        // table
	LookupTable             = "table"                // schema.table
	LookupColumn            = "column"               // schema.table.column
	LookupColumnByTableName = "column_by_table_name" // table.column, any schema
)

// NameLookup is a parsed convenient name. Lookups lists the strategies to
// try in order; the first one that finds a record wins.
type NameLookup struct {
	Raw     string
	Parts   []string
	Lookups []string
}

// ParseName splits a dotted convenient name into lookup strategies:
//
//	users              table named users in any schema
//	main.users         table main.users, else column users of table main
//	main.users.email   column
func ParseName(name string) (NameLookup, error) {
	name = strings.TrimSpace(name)
	parts := strings.Split(name, ".")
	for _, p := range parts {
		if p == "" {
			return NameLookup{}, fmt.Errorf("invalid name %q", name)
		}
	}

	lookup := NameLookup{Raw: name, Parts: parts}
	switch len(parts) {
	case 1:
		lookup.Lookups = []string{LookupTableByName}
	case 2:
		lookup.Lookups = []string{LookupTable, LookupColumnByTableName}
	case 3:
		lookup.Lookups = []string{LookupColumn}
	default:
		return NameLookup{}, fmt.Errorf("invalid name %q: expected table, schema.table, table.column or schema.table.column", name)
	}
	return lookup, nil
}

// ValidName reports whether s is usable as a new table or column name.
// Any name SQLite accepts when quoted is allowed, except one containing a
// dot, which could not be addressed through ParseName, or a control
// character.
func ValidName(s string) bool {
	if s == "" || s != strings.TrimSpace(s) || strings.Contains(s, ".") {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsControl)
}
