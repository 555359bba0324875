// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/db"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// liveCatalogCTE lists every column of every table and view in every
// attached schema of the documented database.
const liveCatalogCTE = `live AS (
	SELECT tl.schema AS table_schema, tl.name AS table_name, ti.name AS column_name, ti.type AS data_type
	FROM pragma_table_list AS tl, pragma_table_info(tl.name, tl.schema) AS ti
	WHERE tl.type IN ('table', 'view')
)`

// withTx runs fn in a transaction, rolling back when fn fails.
func withTx(ctx context.Context, conn *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := conn.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ignoreClause renders the discovery exclusions for the live CTE. Schema
// names and patterns are bound as arguments; the caller passes the query
// through sqlx.In to expand the schema list.
func ignoreClause(rules secondary.IgnoreRules) (string, []any, error) {
	clause := ""
	args := []any{}
	if len(rules.Schemas) > 0 {
		clause += " AND live.table_schema NOT IN (?)"
		args = append(args, rules.Schemas)
	}
	if len(rules.TablePatterns) > 0 {
		patterns, err := json.Marshal(rules.TablePatterns)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode ignore patterns: %w", err)
		}
		clause += " AND NOT EXISTS (SELECT 1 FROM json_each(?) AS p WHERE live.table_name REGEXP p.value)"
		args = append(args, string(patterns))
	}
	return clause, args, nil
}

// execIn expands slice arguments and runs an insert or update, returning
// the number of affected rows.
func execIn(ctx context.Context, conn *sqlx.DB, query string, args ...any) (int, error) {
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return 0, err
	}
	res, err := conn.ExecContext(ctx, conn.Rebind(expanded), expandedArgs...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func quoteIdent(name string) string {
	return db.QuoteIdent(name)
}

func formatTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(time.RFC3339)
}

func boolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	v := b.Bool
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
