package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// ColumnDocRepository implements secondary.ColumnDocRepository with SQLite.
type ColumnDocRepository struct {
	db     *sqlx.DB
	schema string // quoted working schema
}

// NewColumnDocRepository creates a column documentation repository.
func NewColumnDocRepository(db *sqlx.DB, schema string) *ColumnDocRepository {
	return &ColumnDocRepository{db: db, schema: quoteIdent(schema)}
}

type columnDocRow struct {
	ID          int64          `db:"id"`
	TableSchema string         `db:"table_schema"`
	TableName   string         `db:"table_name"`
	ColumnName  string         `db:"column_name"`
	DataType    sql.NullString `db:"data_type"`
	Description sql.NullString `db:"description"`
	ExampleVals sql.NullString `db:"example_vals"`
	AlsoGoesBy  sql.NullString `db:"also_goes_by"`
	Orphaned    bool           `db:"orphaned"`
	InsertedAt  sql.NullTime   `db:"inserted_at"`
}

func (row *columnDocRow) record() *secondary.ColumnDocRecord {
	return &secondary.ColumnDocRecord{
		ID:          row.ID,
		TableSchema: row.TableSchema,
		TableName:   row.TableName,
		ColumnName:  row.ColumnName,
		DataType:    row.DataType.String,
		Description: row.Description.String,
		ExampleVals: row.ExampleVals.String,
		AlsoGoesBy:  row.AlsoGoesBy.String,
		Orphaned:    row.Orphaned,
		InsertedAt:  formatTime(row.InsertedAt),
	}
}

const columnDocColumns = "id, table_schema, table_name, column_name, data_type, description, example_vals, also_goes_by, orphaned, inserted_at"

func (r *ColumnDocRepository) selectFrom() string {
	return "SELECT " + columnDocColumns + " FROM " + r.schema + ".columns"
}

func (r *ColumnDocRepository) getOne(ctx context.Context, query string, args ...any) (*secondary.ColumnDocRecord, error) {
	var row columnDocRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, err
	}
	return row.record(), nil
}

func (r *ColumnDocRepository) getMany(ctx context.Context, query string, args ...any) ([]*secondary.ColumnDocRecord, error) {
	var rows []columnDocRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	records := make([]*secondary.ColumnDocRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].record()
	}
	return records, nil
}

// GetByID retrieves a column record by its ID.
func (r *ColumnDocRepository) GetByID(ctx context.Context, id int64) (*secondary.ColumnDocRecord, error) {
	record, err := r.getOne(ctx, r.selectFrom()+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("column record %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column record: %w", err)
	}
	return record, nil
}

// GetByIdentity retrieves a column record by schema, table and column.
func (r *ColumnDocRepository) GetByIdentity(ctx context.Context, id catalog.ColumnID) (*secondary.ColumnDocRecord, error) {
	record, err := r.getOne(ctx,
		r.selectFrom()+" WHERE table_schema = ? AND table_name = ? AND column_name = ?",
		id.Schema, id.Table, id.Column,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &catalog.NotFoundError{Name: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column record: %w", err)
	}
	return record, nil
}

// FindByTableAndColumn retrieves column records in any schema.
func (r *ColumnDocRepository) FindByTableAndColumn(ctx context.Context, table, column string) ([]*secondary.ColumnDocRecord, error) {
	records, err := r.getMany(ctx,
		r.selectFrom()+" WHERE table_name = ? AND column_name = ? ORDER BY table_schema",
		table, column,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find column records: %w", err)
	}
	return records, nil
}

// Exists checks whether a column identity is documented.
func (r *ColumnDocRepository) Exists(ctx context.Context, id catalog.ColumnID) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM "+r.schema+".columns WHERE table_schema = ? AND table_name = ? AND column_name = ?",
		id.Schema, id.Table, id.Column,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check column record: %w", err)
	}
	return count > 0, nil
}

// ListByTable retrieves the column records of one table.
func (r *ColumnDocRepository) ListByTable(ctx context.Context, id catalog.TableID) ([]*secondary.ColumnDocRecord, error) {
	records, err := r.getMany(ctx,
		r.selectFrom()+" WHERE table_schema = ? AND table_name = ? ORDER BY column_name",
		id.Schema, id.Table,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", id, err)
	}
	return records, nil
}

// List retrieves column records matching the given filters.
func (r *ColumnDocRepository) List(ctx context.Context, filters secondary.ColumnDocFilters) ([]*secondary.ColumnDocRecord, error) {
	query := r.selectFrom() + " WHERE 1=1"
	args := []any{}

	if filters.TablePattern != "" {
		query += " AND table_name REGEXP ?"
		args = append(args, filters.TablePattern)
	}
	if filters.ColumnPattern != "" {
		query += " AND column_name REGEXP ?"
		args = append(args, filters.ColumnPattern)
	}
	if filters.UndocumentedOnly {
		query += " AND description IS NULL"
	}

	if filters.MostRecentFirst {
		query += " ORDER BY inserted_at DESC, id DESC"
	} else {
		query += " ORDER BY table_schema, table_name, column_name"
	}

	records, err := r.getMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list column records: %w", err)
	}
	return records, nil
}

// InsertMissing documents every live column of an already documented table.
func (r *ColumnDocRepository) InsertMissing(ctx context.Context, rules secondary.IgnoreRules) (int, error) {
	clause, args, err := ignoreClause(rules)
	if err != nil {
		return 0, err
	}
	query := "WITH " + liveCatalogCTE + `
		INSERT OR IGNORE INTO ` + r.schema + `.columns (table_schema, table_name, column_name, data_type)
		SELECT live.table_schema, live.table_name, live.column_name, live.data_type FROM live
		WHERE EXISTS (
			SELECT 1 FROM ` + r.schema + `.tables AS t
			WHERE t.table_schema = live.table_schema AND t.table_name = live.table_name
		)` + clause + `
		ORDER BY live.table_schema, live.table_name, live.column_name`

	n, err := execIn(ctx, r.db, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to discover columns: %w", err)
	}
	return n, nil
}

// MarkOrphaned flags records whose column no longer exists upstream.
func (r *ColumnDocRepository) MarkOrphaned(ctx context.Context) (int, error) {
	query := "WITH " + liveCatalogCTE + `
		UPDATE ` + r.schema + `.columns AS d SET orphaned = 1
		WHERE d.orphaned = 0 AND NOT EXISTS (
			SELECT 1 FROM live
			WHERE live.table_schema = d.table_schema AND live.table_name = d.table_name AND live.column_name = d.column_name
		)`

	n, err := execIn(ctx, r.db, query)
	if err != nil {
		return 0, fmt.Errorf("failed to mark orphaned columns: %w", err)
	}
	return n, nil
}

// ApplyUpdate writes each assignment inside one transaction.
func (r *ColumnDocRepository) ApplyUpdate(ctx context.Context, id int64, update catalog.Update) error {
	return applyUpdate(ctx, r.db, r.schema+".columns", catalog.ColumnUpdatableFields, id, update)
}

// PickOrphan returns a random orphaned column, or nil when none remain.
func (r *ColumnDocRepository) PickOrphan(ctx context.Context) (*secondary.ColumnDocRecord, error) {
	record, err := r.getOne(ctx, r.selectFrom()+" WHERE orphaned = 1 ORDER BY random() LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick orphaned column: %w", err)
	}
	return record, nil
}

// Rename renames one column record and clears its orphaned flag.
func (r *ColumnDocRepository) Rename(ctx context.Context, id int64, newName string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE "+r.schema+".columns SET column_name = ?, orphaned = 0 WHERE id = ?",
		newName, id,
	)
	if err != nil {
		return &catalog.StoreError{Op: "rename column", Err: err}
	}
	return nil
}

// Delete removes one column record.
func (r *ColumnDocRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM "+r.schema+".columns WHERE id = ?", id); err != nil {
		return &catalog.StoreError{Op: "delete column", Err: err}
	}
	return nil
}

// Transfer copies the non-NULL documentation of one column onto another,
// then deletes the source.
func (r *ColumnDocRepository) Transfer(ctx context.Context, fromID, toID int64) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE `+r.schema+`.columns AS dst SET
				description = coalesce(src.description, dst.description),
				example_vals = coalesce(src.example_vals, dst.example_vals),
				also_goes_by = coalesce(src.also_goes_by, dst.also_goes_by)
			FROM `+r.schema+`.columns AS src
			WHERE src.id = ? AND dst.id = ?`,
			fromID, toID,
		); err != nil {
			return &catalog.StoreError{Op: "transfer column documentation", Err: err}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+r.schema+".columns WHERE id = ?", fromID); err != nil {
			return &catalog.StoreError{Op: "delete column", Err: err}
		}
		return nil
	})
}

// NextWithoutExamples returns the next non-orphaned column with no example
// values, skipping the given IDs.
func (r *ColumnDocRepository) NextWithoutExamples(ctx context.Context, skip []int64) (*secondary.ColumnDocRecord, error) {
	query := r.selectFrom() + " WHERE example_vals IS NULL AND orphaned = 0"
	args := []any{}
	if len(skip) > 0 {
		query += " AND id NOT IN (?)"
		args = append(args, skip)
	}
	query += " ORDER BY table_schema, table_name, column_name LIMIT 1"

	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	record, err := r.getOne(ctx, r.db.Rebind(expanded), expandedArgs...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find column without examples: %w", err)
	}
	return record, nil
}

// SetExamples stores the joined example values of a column.
func (r *ColumnDocRepository) SetExamples(ctx context.Context, id int64, examples string) error {
	var value any
	if examples != "" {
		value = examples
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE "+r.schema+".columns SET example_vals = ? WHERE id = ?",
		value, id,
	); err != nil {
		return &catalog.StoreError{Op: "store example values", Err: err}
	}
	return nil
}

var _ secondary.ColumnDocRepository = (*ColumnDocRepository)(nil)
