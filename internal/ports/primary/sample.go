package primary

import "context"

// SampleService defines the primary port for example values.
type SampleService interface {
	// SampleColumn draws example values for a column without storing them.
	SampleColumn(ctx context.Context, name string) ([]string, error)

	// StoreExamples samples a column and stores the result.
	StoreExamples(ctx context.Context, name string) ([]string, error)

	// AutoFill samples every column that has no example values yet.
	AutoFill(ctx context.Context, req AutoFillRequest) (*AutoFillReport, error)
}

// AutoFillRequest contains options for AutoFill.
type AutoFillRequest struct {
	NoConfirmation bool // store without asking
	Limit          int  // stop after this many columns; 0 means no limit
}

// AutoFillReport contains the result of an AutoFill run.
type AutoFillReport struct {
	Stored  int
	Skipped int
}
