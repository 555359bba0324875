package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/ports/secondary"
)

// ChangeLogRepository implements secondary.ChangeLogRepository with SQLite.
type ChangeLogRepository struct {
	db     *sqlx.DB
	schema string // quoted working schema
}

// NewChangeLogRepository creates a change history repository for the
// documentation database attached under schema.
func NewChangeLogRepository(db *sqlx.DB, schema string) *ChangeLogRepository {
	return &ChangeLogRepository{db: db, schema: quoteIdent(schema)}
}

type changeLogRow struct {
	ID         int64          `db:"id"`
	ChangedAt  sql.NullTime   `db:"changed_at"`
	Operator   sql.NullString `db:"operator"`
	EntityType string         `db:"entity_type"`
	Entity     string         `db:"entity"`
	Action     string         `db:"action"`
	Detail     sql.NullString `db:"detail"`
}

// Create persists a new change log entry.
func (r *ChangeLogRepository) Create(ctx context.Context, record *secondary.ChangeLogRecord) error {
	var operator, detail sql.NullString
	if record.Operator != "" {
		operator = sql.NullString{String: record.Operator, Valid: true}
	}
	if record.Detail != "" {
		detail = sql.NullString{String: record.Detail, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO "+r.schema+".change_log (operator, entity_type, entity, action, detail) VALUES (?, ?, ?, ?, ?)",
		operator,
		record.EntityType,
		record.Entity,
		record.Action,
		detail,
	)
	if err != nil {
		return fmt.Errorf("failed to create change log entry: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		record.ID = id
	}
	return nil
}

// List retrieves change log entries matching the given filters, newest first.
func (r *ChangeLogRepository) List(ctx context.Context, filters secondary.ChangeLogFilters) ([]*secondary.ChangeLogRecord, error) {
	query := "SELECT id, changed_at, operator, entity_type, entity, action, detail FROM " + r.schema + ".change_log WHERE 1=1"
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.Entity != "" {
		query += " AND (entity = ? OR substr(entity, 1, length(?) + 1) = ? || '.')"
		args = append(args, filters.Entity, filters.Entity, filters.Entity)
	}

	if filters.Operator != "" {
		query += " AND operator = ?"
		args = append(args, filters.Operator)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	var rows []changeLogRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list change log: %w", err)
	}

	records := make([]*secondary.ChangeLogRecord, len(rows))
	for i, row := range rows {
		records[i] = &secondary.ChangeLogRecord{
			ID:         row.ID,
			ChangedAt:  formatTime(row.ChangedAt),
			Operator:   row.Operator.String,
			EntityType: row.EntityType,
			Entity:     row.Entity,
			Action:     row.Action,
			Detail:     row.Detail.String,
		}
	}
	return records, nil
}

// PruneOlderThan deletes entries recorded before cutoff.
func (r *ChangeLogRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	// changed_at holds CURRENT_TIMESTAMP text, which is UTC.
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM "+r.schema+".change_log WHERE changed_at < ?",
		cutoff.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune change log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Ensure ChangeLogRepository implements the interface
var _ secondary.ChangeLogRepository = (*ChangeLogRepository)(nil)
