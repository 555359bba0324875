package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/ports/secondary"
)

// StatsRepository implements secondary.StatsRepository with SQLite.
type StatsRepository struct {
	db     *sqlx.DB
	schema string
}

// NewStatsRepository creates a stats repository.
func NewStatsRepository(db *sqlx.DB, schema string) *StatsRepository {
	return &StatsRepository{db: db, schema: quoteIdent(schema)}
}

type tableStatsRow struct {
	TableSchema      string  `db:"table_schema"`
	NumTables        int     `db:"num_tables"`
	PropWithDesc     float64 `db:"prop_with_desc"`
	PropWithApproval float64 `db:"prop_with_approval"`
	NumOrphaned      int     `db:"num_orphaned"`
}

type columnStatsRow struct {
	TableSchema         string  `db:"table_schema"`
	NumColumns          int     `db:"num_columns"`
	PropWithDesc        float64 `db:"prop_with_desc"`
	PropWithExampleVals float64 `db:"prop_with_example_vals"`
	NumOrphaned         int     `db:"num_orphaned"`
}

// TableStats aggregates table documentation coverage per schema.
func (r *StatsRepository) TableStats(ctx context.Context) ([]*secondary.TableStatsRecord, error) {
	var rows []tableStatsRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			table_schema,
			count(*) AS num_tables,
			avg(CASE WHEN description IS NOT NULL THEN 1.0 ELSE 0.0 END) AS prop_with_desc,
			avg(CASE WHEN docs_approved THEN 1.0 ELSE 0.0 END) AS prop_with_approval,
			sum(CASE WHEN orphaned THEN 1 ELSE 0 END) AS num_orphaned
		FROM `+r.schema+`.tables
		GROUP BY table_schema
		ORDER BY table_schema`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate table stats: %w", err)
	}

	records := make([]*secondary.TableStatsRecord, len(rows))
	for i, row := range rows {
		records[i] = &secondary.TableStatsRecord{
			TableSchema:      row.TableSchema,
			NumTables:        row.NumTables,
			PropWithDesc:     row.PropWithDesc,
			PropWithApproval: row.PropWithApproval,
			NumOrphaned:      row.NumOrphaned,
		}
	}
	return records, nil
}

// ColumnStats aggregates column documentation coverage per schema.
func (r *StatsRepository) ColumnStats(ctx context.Context) ([]*secondary.ColumnStatsRecord, error) {
	var rows []columnStatsRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			table_schema,
			count(*) AS num_columns,
			avg(CASE WHEN description IS NOT NULL THEN 1.0 ELSE 0.0 END) AS prop_with_desc,
			avg(CASE WHEN example_vals IS NOT NULL THEN 1.0 ELSE 0.0 END) AS prop_with_example_vals,
			sum(CASE WHEN orphaned THEN 1 ELSE 0 END) AS num_orphaned
		FROM `+r.schema+`.columns
		GROUP BY table_schema
		ORDER BY table_schema`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate column stats: %w", err)
	}

	records := make([]*secondary.ColumnStatsRecord, len(rows))
	for i, row := range rows {
		records[i] = &secondary.ColumnStatsRecord{
			TableSchema:         row.TableSchema,
			NumColumns:          row.NumColumns,
			PropWithDesc:        row.PropWithDesc,
			PropWithExampleVals: row.PropWithExampleVals,
			NumOrphaned:         row.NumOrphaned,
		}
	}
	return records, nil
}

var _ secondary.StatsRepository = (*StatsRepository)(nil)
