package editbuffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/core/sampling"
)

func TestRender(t *testing.T) {
	fields := []Field{
		{Name: "id", Value: "7"},
		{Name: "table_name", Value: "orders"},
		{Name: "description", Value: "One row per order"},
		{Name: "common_joins", Value: ""},
	}

	got := Render(fields, []string{"id", "table_name"})
	want := "# You can't edit these commented fields:\n" +
		"# ___id: 7\n" +
		"# ___table_name: orders\n" +
		"\n" +
		"___description: One row per order\n" +
		"___common_joins: \n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{
			name: "single line values",
			fields: []Field{
				{Name: "description", Value: "Orders placed on the storefront"},
				{Name: "intended_update_frequency", Value: "daily"},
				{Name: "docs_approved", Value: "false"},
			},
		},
		{
			name: "multi-line value with colons",
			fields: []Field{
				{Name: "description", Value: "Line one: has a colon\nLine two\n\nLine four after a blank"},
				{Name: "common_joins", Value: "orders.customer_id = customers.id"},
			},
		},
		{
			name: "empty values",
			fields: []Field{
				{Name: "description", Value: ""},
				{Name: "also_goes_by", Value: ""},
			},
		},
		{
			name: "marker text inside a line",
			fields: []Field{
				{Name: "description", Value: "snake___case is fine mid-line"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readOnly := []Field{{Name: "id", Value: "1"}, {Name: "orphaned", Value: "false"}}
			buffer := Render(append(readOnly, tt.fields...), []string{"id", "orphaned"})

			got, err := Parse(buffer)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			want := make(map[string]string, len(tt.fields))
			for _, f := range tt.fields {
				want[f.Name] = f.Value
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderParse_SampledExamples(t *testing.T) {
	tests := []struct {
		name   string
		ranked []string
	}{
		{name: "line starting with a comment marker", ranked: []string{"intro\n# Heading\nbody", "plain"}},
		{name: "line starting with a field marker", ranked: []string{"line\n___note: x", "plain"}},
		{name: "windows line endings", ranked: []string{"a\r\nb", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := sampling.Join(sampling.Select(tt.ranked))
			fields := []Field{
				{Name: "description", Value: "Order status"},
				{Name: "example_vals", Value: stored},
			}

			got, err := Parse(Render(fields, nil))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got["example_vals"] != stored {
				t.Errorf("example_vals = %q, want %q", got["example_vals"], stored)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    map[string]string
		wantErr string
	}{
		{
			name: "comments are ignored",
			text: "# ___id: 4\n# anything\n___description: kept\n",
			want: map[string]string{"description": "kept"},
		},
		{
			name: "values are trimmed",
			text: "___description:    padded   \n\n___common_joins:\n",
			want: map[string]string{"description": "padded", "common_joins": ""},
		},
		{
			name: "crlf line endings",
			text: "___description: one\r\ntwo\r\n",
			want: map[string]string{"description": "one\ntwo"},
		},
		{
			name:    "segment without colon",
			text:    "___description no colon here\n",
			wantErr: "expected name: value",
		},
		{
			name:    "text before the first field",
			text:    "stray words\n___description: x\n",
			wantErr: "text outside of any field",
		},
		{
			name:    "duplicate field",
			text:    "___description: a\n___description: b\n",
			wantErr: "field appears more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if tt.wantErr != "" {
				var parseErr *catalog.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("expected *catalog.ParseError, got %v", err)
				}
				if !strings.Contains(parseErr.Reason, tt.wantErr) {
					t.Errorf("Reason = %q, want it to contain %q", parseErr.Reason, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
