// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/schemadoc/internal/ports/primary"
)

var (
	okMark   = color.New(color.FgHiGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
)

// CatalogAdapter translates CLI operations to ReconcileService calls.
type CatalogAdapter struct {
	service primary.ReconcileService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.ReconcileService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		service: service,
		out:     out,
	}
}

// Sync reconciles the documentation with the live catalog and reports counts.
func (a *CatalogAdapter) Sync(ctx context.Context) (*primary.SyncReport, error) {
	report, err := a.service.Sync(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Synced documentation with the live catalog\n", okMark)
	fmt.Fprintf(a.out, "  New tables:        %d\n", report.TablesInserted)
	fmt.Fprintf(a.out, "  New columns:       %d\n", report.ColumnsInserted)
	fmt.Fprintf(a.out, "  Orphaned tables:   %d\n", report.TablesOrphaned)
	fmt.Fprintf(a.out, "  Orphaned columns:  %d\n", report.ColumnsOrphaned)
	if report.TablesOrphaned+report.ColumnsOrphaned > 0 {
		fmt.Fprintf(a.out, "%s Resolve orphans with: schemadoc orphans tables|columns\n", warnMark)
	}
	return report, nil
}

// RefreshCounts stores current row counts.
func (a *CatalogAdapter) RefreshCounts(ctx context.Context) error {
	n, err := a.service.RefreshRowCounts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Refreshed row counts for %d tables\n", okMark, n)
	return nil
}
