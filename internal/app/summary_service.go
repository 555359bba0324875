package app

import (
	"context"
	"fmt"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// SummaryServiceImpl implements the SummaryService interface.
type SummaryServiceImpl struct {
	tableRepo  secondary.TableDocRepository
	columnRepo secondary.ColumnDocRepository
	statsRepo  secondary.StatsRepository
	resolver   primary.EditService
}

// NewSummaryService creates a new SummaryService with injected dependencies.
func NewSummaryService(
	tableRepo secondary.TableDocRepository,
	columnRepo secondary.ColumnDocRepository,
	statsRepo secondary.StatsRepository,
	resolver primary.EditService,
) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		tableRepo:  tableRepo,
		columnRepo: columnRepo,
		statsRepo:  statsRepo,
		resolver:   resolver,
	}
}

// GetTableSummary returns a table and its columns. A name that resolves to a
// column summarizes the column's table.
func (s *SummaryServiceImpl) GetTableSummary(ctx context.Context, name string) (*primary.TableSummary, error) {
	resolved, err := s.resolver.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}

	var table *secondary.TableDocRecord
	if resolved.Kind == primary.KindTable {
		table, err = s.tableRepo.GetByID(ctx, resolved.Table.ID)
	} else {
		col := resolved.Column
		table, err = s.tableRepo.GetByIdentity(ctx, catalog.TableID{Schema: col.TableSchema, Table: col.TableName})
	}
	if err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.ListByTable(ctx, table.Identity())
	if err != nil {
		return nil, err
	}

	summary := &primary.TableSummary{Table: recordToTableDoc(table)}
	for _, c := range columns {
		summary.Columns = append(summary.Columns, recordToColumnDoc(c))
	}
	return summary, nil
}

// SearchTables finds tables whose name matches a pattern.
func (s *SummaryServiceImpl) SearchTables(ctx context.Context, req primary.SearchRequest) ([]*primary.TableDoc, error) {
	records, err := s.tableRepo.List(ctx, secondary.TableDocFilters{
		TablePattern:     req.TablePattern,
		Frequency:        req.Frequency,
		UndocumentedOnly: req.UndocumentedOnly,
		MostRecentFirst:  req.MostRecentFirst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search tables: %w", err)
	}

	docs := make([]*primary.TableDoc, len(records))
	for i, r := range records {
		docs[i] = recordToTableDoc(r)
	}
	return docs, nil
}

// SearchColumns finds columns by table and column name patterns.
func (s *SummaryServiceImpl) SearchColumns(ctx context.Context, req primary.SearchRequest) ([]*primary.ColumnDoc, error) {
	records, err := s.columnRepo.List(ctx, secondary.ColumnDocFilters{
		TablePattern:     req.TablePattern,
		ColumnPattern:    req.ColumnPattern,
		UndocumentedOnly: req.UndocumentedOnly,
		MostRecentFirst:  req.MostRecentFirst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search columns: %w", err)
	}

	docs := make([]*primary.ColumnDoc, len(records))
	for i, r := range records {
		docs[i] = recordToColumnDoc(r)
	}
	return docs, nil
}

// GetStats returns documentation coverage per schema.
func (s *SummaryServiceImpl) GetStats(ctx context.Context) (*primary.Stats, error) {
	tableStats, err := s.statsRepo.TableStats(ctx)
	if err != nil {
		return nil, err
	}
	columnStats, err := s.statsRepo.ColumnStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &primary.Stats{}
	for _, t := range tableStats {
		stats.Tables = append(stats.Tables, &primary.TableStats{
			TableSchema:      t.TableSchema,
			NumTables:        t.NumTables,
			PropWithDesc:     t.PropWithDesc,
			PropWithApproval: t.PropWithApproval,
			NumOrphaned:      t.NumOrphaned,
		})
	}
	for _, c := range columnStats {
		stats.Columns = append(stats.Columns, &primary.ColumnStats{
			TableSchema:         c.TableSchema,
			NumColumns:          c.NumColumns,
			PropWithDesc:        c.PropWithDesc,
			PropWithExampleVals: c.PropWithExampleVals,
			NumOrphaned:         c.NumOrphaned,
		})
	}
	return stats, nil
}

// Ensure SummaryServiceImpl implements the interface
var _ primary.SummaryService = (*SummaryServiceImpl)(nil)
