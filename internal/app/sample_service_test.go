package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

type sampleFixture struct {
	service  *SampleServiceImpl
	columns  *mockColumnDocRepository
	sampler  *mockSampler
	prompter *mockPrompter
	changes  *mockChangeLog
	out      *bytes.Buffer
}

func newSampleFixture(answers ...string) *sampleFixture {
	total := &secondary.ColumnDocRecord{ID: 11, TableSchema: "main", TableName: "orders", ColumnName: "total", DataType: "REAL"}
	notes := &secondary.ColumnDocRecord{ID: 12, TableSchema: "main", TableName: "orders", ColumnName: "notes", DataType: "TEXT"}
	gone := &secondary.ColumnDocRecord{ID: 13, TableSchema: "main", TableName: "orders", ColumnName: "legacy", Orphaned: true}

	f := &sampleFixture{
		columns: newMockColumnDocRepository(statusColumn(), total, notes, gone),
		sampler: &mockSampler{values: map[catalog.ColumnID][]string{
			statusColumn().Identity(): {"shipped", "open", "cancelled"},
			total.Identity():          {"10.0", "20.0"},
		}},
		prompter: &mockPrompter{answers: answers},
		changes:  &mockChangeLog{},
		out:      &bytes.Buffer{},
	}
	tables := newMockTableDocRepository(ordersTable())
	resolver := NewEditService(tables, f.columns, &mockEditor{}, newMockBufferStore(), f.prompter, f.changes, f.out)
	f.service = NewSampleService(f.columns, f.sampler, resolver, f.prompter, f.changes, f.out)
	return f
}

func TestSampleService_SampleColumn(t *testing.T) {
	f := newSampleFixture()

	got, err := f.service.SampleColumn(context.Background(), "orders.status")
	if err != nil {
		t.Fatalf("SampleColumn failed: %v", err)
	}
	if diff := cmp.Diff([]string{"shipped", "open", "cancelled"}, got); diff != "" {
		t.Errorf("examples mismatch (-want +got):\n%s", diff)
	}
	if len(f.columns.examples) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestSampleService_SampleColumn_RejectsTable(t *testing.T) {
	f := newSampleFixture()

	if _, err := f.service.SampleColumn(context.Background(), "orders"); err == nil {
		t.Fatal("expected error for a table name")
	}
}

func TestSampleService_StoreExamples(t *testing.T) {
	f := newSampleFixture()

	if _, err := f.service.StoreExamples(context.Background(), "main.orders.status"); err != nil {
		t.Fatalf("StoreExamples failed: %v", err)
	}
	if got := f.columns.examples[10]; got != "shipped ; open ; cancelled" {
		t.Errorf("unexpected stored examples %q", got)
	}
	if len(f.changes.entries) != 1 || f.changes.entries[0] != "update column main.orders.status [example_vals]" {
		t.Errorf("unexpected change log %v", f.changes.entries)
	}
}

func TestSampleService_StoreExamples_SamplerError(t *testing.T) {
	f := newSampleFixture()
	f.sampler.err = errors.New("no such column")

	if _, err := f.service.StoreExamples(context.Background(), "orders.status"); err == nil {
		t.Fatal("expected sampler error")
	}
	if len(f.columns.examples) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestSampleService_AutoFill(t *testing.T) {
	tests := []struct {
		name        string
		answers     []string
		req         primary.AutoFillRequest
		wantStored  map[int64]string
		wantReport  primary.AutoFillReport
		wantPrompts int
	}{
		{
			name:        "confirm each column",
			answers:     []string{"y", "n"},
			wantStored:  map[int64]string{10: "shipped ; open ; cancelled"},
			wantReport:  primary.AutoFillReport{Stored: 1, Skipped: 2},
			wantPrompts: 2,
		},
		{
			name:       "no confirmation",
			req:        primary.AutoFillRequest{NoConfirmation: true},
			wantStored: map[int64]string{10: "shipped ; open ; cancelled", 11: "10.0 ; 20.0"},
			wantReport: primary.AutoFillReport{Stored: 2, Skipped: 1},
		},
		{
			name:       "limit",
			req:        primary.AutoFillRequest{NoConfirmation: true, Limit: 1},
			wantStored: map[int64]string{10: "shipped ; open ; cancelled"},
			wantReport: primary.AutoFillReport{Stored: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSampleFixture(tt.answers...)

			report, err := f.service.AutoFill(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("AutoFill failed: %v", err)
			}
			if diff := cmp.Diff(tt.wantReport, *report); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantStored, f.columns.examples); diff != "" {
				t.Errorf("stored mismatch (-want +got):\n%s", diff)
			}
			if len(f.prompter.asked) != tt.wantPrompts {
				t.Errorf("expected %d prompts, got %v", tt.wantPrompts, f.prompter.asked)
			}
		})
	}
}

func TestSampleService_AutoFill_ReportsEmptyColumns(t *testing.T) {
	f := newSampleFixture()

	if _, err := f.service.AutoFill(context.Background(), primary.AutoFillRequest{NoConfirmation: true}); err != nil {
		t.Fatalf("AutoFill failed: %v", err)
	}
	out := f.out.String()
	if !strings.Contains(out, "main.orders.notes: no values to sample") {
		t.Errorf("expected empty column to be reported, got %q", out)
	}
	if !strings.Contains(out, "main.orders.total: 10.0 ; 20.0") {
		t.Errorf("expected sampled values to be shown, got %q", out)
	}
	if strings.Contains(out, "legacy") {
		t.Errorf("expected orphaned column to be skipped, got %q", out)
	}
}

func TestSampleService_AutoFill_CancelledContext(t *testing.T) {
	f := newSampleFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.service.AutoFill(ctx, primary.AutoFillRequest{NoConfirmation: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report.Stored != 0 {
		t.Errorf("expected nothing stored, got %+v", report)
	}
}
