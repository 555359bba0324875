package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// TableDocRepository implements secondary.TableDocRepository with SQLite.
type TableDocRepository struct {
	db     *sqlx.DB
	schema string // quoted working schema
}

// NewTableDocRepository creates a table documentation repository for the
// documentation tables attached under schema.
func NewTableDocRepository(db *sqlx.DB, schema string) *TableDocRepository {
	return &TableDocRepository{db: db, schema: quoteIdent(schema)}
}

type tableDocRow struct {
	ID                      int64          `db:"id"`
	TableSchema             string         `db:"table_schema"`
	TableName               string         `db:"table_name"`
	Description             sql.NullString `db:"description"`
	CommonJoins             sql.NullString `db:"common_joins"`
	RowsCount               sql.NullInt64  `db:"rows_count"`
	RowsCountAsOf           sql.NullTime   `db:"rows_count_as_of"`
	IntendedUpdateFrequency sql.NullString `db:"intended_update_frequency"`
	DocsApproved            sql.NullBool   `db:"docs_approved"`
	LastApprovalAt          sql.NullTime   `db:"last_approval_at"`
	Deprecated              sql.NullBool   `db:"deprecated"`
	Orphaned                bool           `db:"orphaned"`
	InsertedAt              sql.NullTime   `db:"inserted_at"`
}

func (row *tableDocRow) record() *secondary.TableDocRecord {
	return &secondary.TableDocRecord{
		ID:                      row.ID,
		TableSchema:             row.TableSchema,
		TableName:               row.TableName,
		Description:             row.Description.String,
		CommonJoins:             row.CommonJoins.String,
		RowsCount:               int64Ptr(row.RowsCount),
		RowsCountAsOf:           formatTime(row.RowsCountAsOf),
		IntendedUpdateFrequency: row.IntendedUpdateFrequency.String,
		DocsApproved:            boolPtr(row.DocsApproved),
		LastApprovalAt:          formatTime(row.LastApprovalAt),
		Deprecated:              boolPtr(row.Deprecated),
		Orphaned:                row.Orphaned,
		InsertedAt:              formatTime(row.InsertedAt),
	}
}

const tableDocColumns = "id, table_schema, table_name, description, common_joins, rows_count, rows_count_as_of, intended_update_frequency, docs_approved, last_approval_at, deprecated, orphaned, inserted_at"

func (r *TableDocRepository) selectFrom() string {
	return "SELECT " + tableDocColumns + " FROM " + r.schema + ".tables"
}

func (r *TableDocRepository) getOne(ctx context.Context, query string, args ...any) (*secondary.TableDocRecord, error) {
	var row tableDocRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, err
	}
	return row.record(), nil
}

func (r *TableDocRepository) getMany(ctx context.Context, query string, args ...any) ([]*secondary.TableDocRecord, error) {
	var rows []tableDocRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	records := make([]*secondary.TableDocRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].record()
	}
	return records, nil
}

// GetByID retrieves a table record by its ID.
func (r *TableDocRepository) GetByID(ctx context.Context, id int64) (*secondary.TableDocRecord, error) {
	record, err := r.getOne(ctx, r.selectFrom()+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("table record %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table record: %w", err)
	}
	return record, nil
}

// GetByIdentity retrieves a table record by schema and table name.
func (r *TableDocRepository) GetByIdentity(ctx context.Context, id catalog.TableID) (*secondary.TableDocRecord, error) {
	record, err := r.getOne(ctx, r.selectFrom()+" WHERE table_schema = ? AND table_name = ?", id.Schema, id.Table)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &catalog.NotFoundError{Name: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table record: %w", err)
	}
	return record, nil
}

// FindByName retrieves table records with the given name in any schema.
func (r *TableDocRepository) FindByName(ctx context.Context, table string) ([]*secondary.TableDocRecord, error) {
	records, err := r.getMany(ctx, r.selectFrom()+" WHERE table_name = ? ORDER BY table_schema", table)
	if err != nil {
		return nil, fmt.Errorf("failed to find table records: %w", err)
	}
	return records, nil
}

// Exists checks whether a table identity is documented.
func (r *TableDocRepository) Exists(ctx context.Context, id catalog.TableID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM "+r.schema+".tables WHERE table_schema = ? AND table_name = ?",
		id.Schema, id.Table,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check table record: %w", err)
	}
	return count > 0, nil
}

// List retrieves table records matching the given filters.
func (r *TableDocRepository) List(ctx context.Context, filters secondary.TableDocFilters) ([]*secondary.TableDocRecord, error) {
	query := r.selectFrom() + " WHERE 1=1"
	args := []any{}

	if filters.TablePattern != "" {
		query += " AND table_name REGEXP ?"
		args = append(args, filters.TablePattern)
	}
	if filters.Schema != "" {
		query += " AND table_schema = ?"
		args = append(args, filters.Schema)
	}
	if filters.Frequency != "" {
		query += " AND intended_update_frequency = ?"
		args = append(args, filters.Frequency)
	}
	if filters.UndocumentedOnly {
		query += " AND description IS NULL"
	}
	if filters.ExcludeOrphaned {
		query += " AND orphaned = 0"
	}

	if filters.MostRecentFirst {
		query += " ORDER BY inserted_at DESC, id DESC"
	} else {
		query += " ORDER BY table_schema, table_name"
	}

	records, err := r.getMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list table records: %w", err)
	}
	return records, nil
}

// InsertMissing documents every live table not yet documented.
func (r *TableDocRepository) InsertMissing(ctx context.Context, rules secondary.IgnoreRules) (int, error) {
	clause, args, err := ignoreClause(rules)
	if err != nil {
		return 0, err
	}
	query := "WITH " + liveCatalogCTE + `
		INSERT OR IGNORE INTO ` + r.schema + `.tables (table_schema, table_name)
		SELECT DISTINCT live.table_schema, live.table_name FROM live
		WHERE 1=1` + clause + `
		ORDER BY live.table_schema, live.table_name`

	n, err := execIn(ctx, r.db, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to discover tables: %w", err)
	}
	return n, nil
}

// MarkOrphaned flags records whose table no longer exists upstream. Rows
// already orphaned are left alone; nothing here clears the flag.
func (r *TableDocRepository) MarkOrphaned(ctx context.Context) (int, error) {
	query := "WITH " + liveCatalogCTE + `
		UPDATE ` + r.schema + `.tables AS d SET orphaned = 1
		WHERE d.orphaned = 0 AND NOT EXISTS (
			SELECT 1 FROM live WHERE live.table_schema = d.table_schema AND live.table_name = d.table_name
		)`

	n, err := execIn(ctx, r.db, query)
	if err != nil {
		return 0, fmt.Errorf("failed to mark orphaned tables: %w", err)
	}
	return n, nil
}

// ApplyUpdate writes each assignment with its own statement inside one
// transaction, so a failure leaves the record untouched.
func (r *TableDocRepository) ApplyUpdate(ctx context.Context, id int64, update catalog.Update) error {
	return applyUpdate(ctx, r.db, r.schema+".tables", catalog.TableUpdatableFields, id, update)
}

// PickOrphan returns a random orphaned table, or nil when none remain.
func (r *TableDocRepository) PickOrphan(ctx context.Context) (*secondary.TableDocRecord, error) {
	record, err := r.getOne(ctx, r.selectFrom()+" WHERE orphaned = 1 ORDER BY random() LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick orphaned table: %w", err)
	}
	return record, nil
}

// Rename renames a table record and every column record under it.
func (r *TableDocRepository) Rename(ctx context.Context, id int64, newName string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE "+r.schema+".tables SET table_name = ?, orphaned = 0 WHERE id = ?",
			newName, id,
		); err != nil {
			return &catalog.StoreError{Op: "rename table", Err: err}
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE "+r.schema+".columns SET table_name = ?, orphaned = 0 WHERE table_schema = ? AND table_name = ?",
			newName, current.TableSchema, current.TableName,
		); err != nil {
			return &catalog.StoreError{Op: "rename columns", Err: err}
		}
		return nil
	})
}

// Delete removes a table record and every column record under it.
func (r *TableDocRepository) Delete(ctx context.Context, id int64) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+r.schema+".columns WHERE table_schema = ? AND table_name = ?",
			current.TableSchema, current.TableName,
		); err != nil {
			return &catalog.StoreError{Op: "delete columns", Err: err}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+r.schema+".tables WHERE id = ?", id); err != nil {
			return &catalog.StoreError{Op: "delete table", Err: err}
		}
		return nil
	})
}

// Transfer copies the non-NULL documentation of one table and its columns
// onto another table, then deletes the source and its columns.
func (r *TableDocRepository) Transfer(ctx context.Context, fromID, toID int64) error {
	from, err := r.GetByID(ctx, fromID)
	if err != nil {
		return err
	}
	to, err := r.GetByID(ctx, toID)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE `+r.schema+`.tables AS dst SET
				description = coalesce(src.description, dst.description),
				common_joins = coalesce(src.common_joins, dst.common_joins),
				intended_update_frequency = coalesce(src.intended_update_frequency, dst.intended_update_frequency),
				docs_approved = coalesce(src.docs_approved, dst.docs_approved),
				last_approval_at = coalesce(src.last_approval_at, dst.last_approval_at),
				deprecated = coalesce(src.deprecated, dst.deprecated)
			FROM `+r.schema+`.tables AS src
			WHERE src.id = ? AND dst.id = ?`,
			fromID, toID,
		); err != nil {
			return &catalog.StoreError{Op: "transfer table documentation", Err: err}
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE `+r.schema+`.columns AS dst SET
				description = coalesce(src.description, dst.description),
				example_vals = coalesce(src.example_vals, dst.example_vals),
				also_goes_by = coalesce(src.also_goes_by, dst.also_goes_by)
			FROM `+r.schema+`.columns AS src
			WHERE src.table_schema = ? AND src.table_name = ?
				AND dst.table_schema = ? AND dst.table_name = ?
				AND dst.column_name = src.column_name`,
			from.TableSchema, from.TableName, to.TableSchema, to.TableName,
		); err != nil {
			return &catalog.StoreError{Op: "transfer column documentation", Err: err}
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+r.schema+".columns WHERE table_schema = ? AND table_name = ?",
			from.TableSchema, from.TableName,
		); err != nil {
			return &catalog.StoreError{Op: "delete columns", Err: err}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+r.schema+".tables WHERE id = ?", fromID); err != nil {
			return &catalog.StoreError{Op: "delete table", Err: err}
		}
		return nil
	})
}

// UpdateRowCount stores a cardinality snapshot.
func (r *TableDocRepository) UpdateRowCount(ctx context.Context, id int64, count int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE "+r.schema+".tables SET rows_count = ?, rows_count_as_of = CURRENT_TIMESTAMP WHERE id = ?",
		count, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update row count: %w", err)
	}
	return nil
}

// applyUpdate writes assignments one statement per field in a transaction.
// Field names are checked against allowed before being interpolated.
func applyUpdate(ctx context.Context, conn *sqlx.DB, table string, allowed []string, id int64, update catalog.Update) error {
	for _, a := range update {
		if !slices.Contains(allowed, a.Field) {
			return &catalog.StoreError{Op: "update " + a.Field, Err: fmt.Errorf("field is not updatable")}
		}
	}
	return withTx(ctx, conn, func(tx *sqlx.Tx) error {
		for _, a := range update {
			query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", table, a.Field)
			if _, err := tx.ExecContext(ctx, query, a.Value, id); err != nil {
				return &catalog.StoreError{Op: "update " + a.Field, Err: err}
			}
		}
		return nil
	})
}

var _ secondary.TableDocRepository = (*TableDocRepository)(nil)
