package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// ReconcileServiceImpl implements the ReconcileService interface.
type ReconcileServiceImpl struct {
	tableRepo  secondary.TableDocRepository
	columnRepo secondary.ColumnDocRepository
	live       secondary.LiveCatalog
	sampler    secondary.Sampler
	rules      secondary.IgnoreRules
}

// NewReconcileService creates a new ReconcileService with injected dependencies.
func NewReconcileService(
	tableRepo secondary.TableDocRepository,
	columnRepo secondary.ColumnDocRepository,
	live secondary.LiveCatalog,
	sampler secondary.Sampler,
	rules secondary.IgnoreRules,
) *ReconcileServiceImpl {
	return &ReconcileServiceImpl{
		tableRepo:  tableRepo,
		columnRepo: columnRepo,
		live:       live,
		sampler:    sampler,
		rules:      rules,
	}
}

// DiscoverNewTables documents live tables that are not yet documented.
func (s *ReconcileServiceImpl) DiscoverNewTables(ctx context.Context) (int, error) {
	n, err := s.tableRepo.InsertMissing(ctx, s.rules)
	if err != nil {
		return 0, fmt.Errorf("failed to discover new tables: %w", err)
	}
	slog.DebugContext(ctx, "discovered tables", "inserted", n)
	return n, nil
}

// DiscoverNewColumns documents live columns of documented tables.
func (s *ReconcileServiceImpl) DiscoverNewColumns(ctx context.Context) (int, error) {
	n, err := s.columnRepo.InsertMissing(ctx, s.rules)
	if err != nil {
		return 0, fmt.Errorf("failed to discover new columns: %w", err)
	}
	slog.DebugContext(ctx, "discovered columns", "inserted", n)
	return n, nil
}

// MarkOrphanedTables flags documented tables that disappeared upstream.
func (s *ReconcileServiceImpl) MarkOrphanedTables(ctx context.Context) (int, error) {
	n, err := s.tableRepo.MarkOrphaned(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark orphaned tables: %w", err)
	}
	slog.DebugContext(ctx, "marked orphaned tables", "updated", n)
	return n, nil
}

// MarkOrphanedColumns flags documented columns that disappeared upstream.
func (s *ReconcileServiceImpl) MarkOrphanedColumns(ctx context.Context) (int, error) {
	n, err := s.columnRepo.MarkOrphaned(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark orphaned columns: %w", err)
	}
	slog.DebugContext(ctx, "marked orphaned columns", "updated", n)
	return n, nil
}

// Sync runs discovery before orphan marking so a table discovered in this
// run has its columns discovered in the same run.
func (s *ReconcileServiceImpl) Sync(ctx context.Context) (*primary.SyncReport, error) {
	report := &primary.SyncReport{}
	var err error

	if report.TablesInserted, err = s.DiscoverNewTables(ctx); err != nil {
		return nil, err
	}
	if report.ColumnsInserted, err = s.DiscoverNewColumns(ctx); err != nil {
		return nil, err
	}
	if report.TablesOrphaned, err = s.MarkOrphanedTables(ctx); err != nil {
		return nil, err
	}
	if report.ColumnsOrphaned, err = s.MarkOrphanedColumns(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

// RefreshRowCounts stores current row counts for live documented tables.
func (s *ReconcileServiceImpl) RefreshRowCounts(ctx context.Context) (int, error) {
	records, err := s.tableRepo.List(ctx, secondary.TableDocFilters{ExcludeOrphaned: true})
	if err != nil {
		return 0, fmt.Errorf("failed to list tables: %w", err)
	}

	updated := 0
	for _, r := range records {
		exists, err := s.live.TableExists(ctx, r.Identity())
		if err != nil {
			return updated, err
		}
		if !exists {
			// Gone since the last sync; the next sync will flag it.
			continue
		}
		count, err := s.sampler.CountRows(ctx, r.Identity())
		if err != nil {
			return updated, fmt.Errorf("failed to count rows of %s: %w", r.Identity(), err)
		}
		if err := s.tableRepo.UpdateRowCount(ctx, r.ID, count); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// Ensure ReconcileServiceImpl implements the interface
var _ primary.ReconcileService = (*ReconcileServiceImpl)(nil)
