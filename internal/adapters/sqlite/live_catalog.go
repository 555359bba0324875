package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// LiveCatalog implements secondary.LiveCatalog over the SQLite pragmas.
type LiveCatalog struct {
	db *sqlx.DB
}

// NewLiveCatalog creates a live catalog reader.
func NewLiveCatalog(db *sqlx.DB) *LiveCatalog {
	return &LiveCatalog{db: db}
}

// TableExists checks whether a table or view currently exists.
func (c *LiveCatalog) TableExists(ctx context.Context, id catalog.TableID) (bool, error) {
	var count int
	err := c.db.GetContext(ctx, &count,
		"WITH "+liveCatalogCTE+" SELECT COUNT(*) FROM live WHERE table_schema = ? AND table_name = ?",
		id.Schema, id.Table,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check live table %s: %w", id, err)
	}
	return count > 0, nil
}

// ColumnExists checks whether a column currently exists.
func (c *LiveCatalog) ColumnExists(ctx context.Context, id catalog.ColumnID) (bool, error) {
	var count int
	err := c.db.GetContext(ctx, &count,
		"WITH "+liveCatalogCTE+" SELECT COUNT(*) FROM live WHERE table_schema = ? AND table_name = ? AND column_name = ?",
		id.Schema, id.Table, id.Column,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check live column %s: %w", id, err)
	}
	return count > 0, nil
}

var _ secondary.LiveCatalog = (*LiveCatalog)(nil)
