package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/core/sampling"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// Sampler implements secondary.Sampler. Identifiers are checked against the
// live catalog before they are quoted into a query.
type Sampler struct {
	db   *sqlx.DB
	live *LiveCatalog
}

// NewSampler creates a sampler over the documented database.
func NewSampler(db *sqlx.DB) *Sampler {
	return &Sampler{db: db, live: NewLiveCatalog(db)}
}

const sampleQuery = `
WITH first_sample AS (
	SELECT coalesce(CAST(%[1]s AS TEXT), 'NULL') AS val, row_number() OVER () AS seq
	FROM %[2]s.%[3]s
	%[4]s
	LIMIT %[5]d
), ranked AS (
	SELECT val, count(1) AS n, row_number() OVER (ORDER BY count(1) DESC, min(seq)) AS rnk
	FROM first_sample
	GROUP BY val
)
SELECT val FROM ranked ORDER BY rnk`

// SampleRanked draws roughly SamplePercent of the rows, capped at
// MaxSampleRows, and returns distinct values by descending frequency. When
// the random draw comes back empty the first MaxSampleRows rows are used.
func (s *Sampler) SampleRanked(ctx context.Context, id catalog.ColumnID) ([]string, error) {
	ok, err := s.live.ColumnExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("column %s does not exist in the database", id)
	}

	random := fmt.Sprintf("WHERE abs(random()) %% %d = 0", 100/sampling.SamplePercent)
	values, err := s.sample(ctx, id, random)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		return values, nil
	}
	return s.sample(ctx, id, "")
}

func (s *Sampler) sample(ctx context.Context, id catalog.ColumnID, where string) ([]string, error) {
	query := fmt.Sprintf(sampleQuery,
		quoteIdent(id.Column), quoteIdent(id.Schema), quoteIdent(id.Table),
		where, sampling.MaxSampleRows,
	)
	var values []string
	if err := s.db.SelectContext(ctx, &values, query); err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", id, err)
	}
	return values, nil
}

// CountRows returns the exact row count of a live table.
func (s *Sampler) CountRows(ctx context.Context, id catalog.TableID) (int64, error) {
	ok, err := s.live.TableExists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("table %s does not exist in the database", id)
	}
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", quoteIdent(id.Schema), quoteIdent(id.Table))
	if err := s.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", id, err)
	}
	return count, nil
}

var _ secondary.Sampler = (*Sampler)(nil)
