package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/schemadoc/internal/ports/primary"
)

// SampleAdapter translates CLI operations to SampleService calls.
type SampleAdapter struct {
	service primary.SampleService
	out     io.Writer
}

// NewSampleAdapter creates a new SampleAdapter with the given service.
func NewSampleAdapter(service primary.SampleService, out io.Writer) *SampleAdapter {
	return &SampleAdapter{
		service: service,
		out:     out,
	}
}

// Sample prints example values for a column, storing them when store is set.
func (a *SampleAdapter) Sample(ctx context.Context, name string, store bool) ([]string, error) {
	var (
		examples []string
		err      error
	)
	if store {
		examples, err = a.service.StoreExamples(ctx, name)
	} else {
		examples, err = a.service.SampleColumn(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", name, err)
	}

	if len(examples) == 0 {
		fmt.Fprintf(a.out, "No values to sample in %s\n", name)
		return examples, nil
	}
	for _, v := range examples {
		fmt.Fprintf(a.out, "  %s\n", v)
	}
	if store {
		fmt.Fprintf(a.out, "%s Stored %d example values\n", okMark, len(examples))
	}
	return examples, nil
}

// AutoFill fills example values for every column that has none.
func (a *SampleAdapter) AutoFill(ctx context.Context, req primary.AutoFillRequest) error {
	report, err := a.service.AutoFill(ctx, req)
	if report != nil {
		fmt.Fprintf(a.out, "%s Stored example values for %d columns, skipped %d\n", okMark, report.Stored, report.Skipped)
	}
	return err
}
