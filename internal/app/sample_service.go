package app

import (
	"context"
	"fmt"
	"io"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/core/sampling"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// ConfirmSamplePrompt is asked before storing sampled values.
const ConfirmSamplePrompt = "Use sample values? (y/n) "

// SampleServiceImpl implements the SampleService interface.
type SampleServiceImpl struct {
	columnRepo secondary.ColumnDocRepository
	sampler    secondary.Sampler
	resolver   primary.EditService
	prompter   secondary.Prompter
	changes    secondary.ChangeLog
	out        io.Writer
}

// NewSampleService creates a new SampleService with injected dependencies.
// resolver maps convenient names to column records.
func NewSampleService(
	columnRepo secondary.ColumnDocRepository,
	sampler secondary.Sampler,
	resolver primary.EditService,
	prompter secondary.Prompter,
	changes secondary.ChangeLog,
	out io.Writer,
) *SampleServiceImpl {
	return &SampleServiceImpl{
		columnRepo: columnRepo,
		sampler:    sampler,
		resolver:   resolver,
		prompter:   prompter,
		changes:    changes,
		out:        out,
	}
}

// SampleColumn draws example values for a column without storing them.
func (s *SampleServiceImpl) SampleColumn(ctx context.Context, name string) ([]string, error) {
	column, err := s.resolveColumn(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.sample(ctx, catalog.ColumnID{Schema: column.TableSchema, Table: column.TableName, Column: column.ColumnName})
}

// StoreExamples samples a column and stores the result.
func (s *SampleServiceImpl) StoreExamples(ctx context.Context, name string) ([]string, error) {
	column, err := s.resolveColumn(ctx, name)
	if err != nil {
		return nil, err
	}
	id := catalog.ColumnID{Schema: column.TableSchema, Table: column.TableName, Column: column.ColumnName}
	examples, err := s.sample(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.columnRepo.SetExamples(ctx, column.ID, sampling.Join(examples)); err != nil {
		return nil, err
	}
	s.changes.LogUpdate(ctx, primary.KindColumn, id.String(), []string{catalog.FieldExampleVals})
	return examples, nil
}

// AutoFill samples every live column that has no example values yet.
// Columns skipped in this run, declined or with no values, are not offered
// again.
func (s *SampleServiceImpl) AutoFill(ctx context.Context, req primary.AutoFillRequest) (*primary.AutoFillReport, error) {
	report := &primary.AutoFillReport{}
	var skip []int64

	for req.Limit == 0 || report.Stored+report.Skipped < req.Limit {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		column, err := s.columnRepo.NextWithoutExamples(ctx, skip)
		if err != nil {
			return report, err
		}
		if column == nil {
			break
		}

		id := column.Identity()
		examples, err := s.sample(ctx, id)
		if err != nil {
			return report, err
		}
		if len(examples) == 0 {
			fmt.Fprintf(s.out, "%s: no values to sample\n", id)
			skip = append(skip, column.ID)
			report.Skipped++
			continue
		}

		joined := sampling.Join(examples)
		fmt.Fprintf(s.out, "%s: %s\n", id, joined)
		if !req.NoConfirmation {
			ok, err := s.prompter.Confirm(ConfirmSamplePrompt)
			if err != nil {
				return report, err
			}
			if !ok {
				skip = append(skip, column.ID)
				report.Skipped++
				continue
			}
		}

		if err := s.columnRepo.SetExamples(ctx, column.ID, joined); err != nil {
			return report, err
		}
		s.changes.LogUpdate(ctx, primary.KindColumn, id.String(), []string{catalog.FieldExampleVals})
		report.Stored++
	}
	return report, nil
}

func (s *SampleServiceImpl) sample(ctx context.Context, id catalog.ColumnID) ([]string, error) {
	ranked, err := s.sampler.SampleRanked(ctx, id)
	if err != nil {
		return nil, err
	}
	return sampling.Select(ranked), nil
}

func (s *SampleServiceImpl) resolveColumn(ctx context.Context, name string) (*primary.ColumnDoc, error) {
	resolved, err := s.resolver.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}
	if resolved.Kind != primary.KindColumn {
		return nil, fmt.Errorf("%s is a table, not a column", name)
	}
	return resolved.Column, nil
}

// Ensure SampleServiceImpl implements the interface
var _ primary.SampleService = (*SampleServiceImpl)(nil)
