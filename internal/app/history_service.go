package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	logRepo secondary.ChangeLogRepository
	now     func() time.Time
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(logRepo secondary.ChangeLogRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		logRepo: logRepo,
		now:     time.Now,
	}
}

// ListChanges retrieves change entries matching the given filters.
func (s *HistoryServiceImpl) ListChanges(ctx context.Context, filters primary.HistoryFilters) ([]*primary.ChangeEntry, error) {
	records, err := s.logRepo.List(ctx, secondary.ChangeLogFilters{
		EntityType: filters.EntityType,
		Entity:     filters.Entity,
		Operator:   filters.Operator,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}

	entries := make([]*primary.ChangeEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.ChangeEntry{
			ID:         r.ID,
			ChangedAt:  r.ChangedAt,
			Operator:   r.Operator,
			EntityType: r.EntityType,
			Entity:     r.Entity,
			Action:     r.Action,
			Detail:     r.Detail,
		}
	}
	return entries, nil
}

// PruneChanges deletes entries older than the specified number of days.
func (s *HistoryServiceImpl) PruneChanges(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("retention must be at least one day, got %d", olderThanDays)
	}
	return s.logRepo.PruneOlderThan(ctx, s.now().AddDate(0, 0, -olderThanDays))
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
