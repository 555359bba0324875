// Package wire provides dependency injection for schemadoc.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/jmoiron/sqlx"

	cliadapter "github.com/example/schemadoc/internal/adapters/cli"
	"github.com/example/schemadoc/internal/adapters/filesystem"
	"github.com/example/schemadoc/internal/adapters/sqlite"
	"github.com/example/schemadoc/internal/adapters/terminal"
	"github.com/example/schemadoc/internal/app"
	"github.com/example/schemadoc/internal/config"
	"github.com/example/schemadoc/internal/db"
	"github.com/example/schemadoc/internal/logger"
	"github.com/example/schemadoc/internal/ports/primary"
	"github.com/example/schemadoc/internal/ports/secondary"
)

var (
	cfg              *config.Config
	database         *sqlx.DB
	reconcileService primary.ReconcileService
	editService      primary.EditService
	orphanService    primary.OrphanService
	sampleService    primary.SampleService
	summaryService   primary.SummaryService
	historyService   primary.HistoryService
	pager            secondary.Pager
	once             sync.Once
	initErr          error
)

// Init loads configuration from the working directory (or optionsPath when
// set) and builds all services. Only the first call has an effect.
func Init(optionsPath string) error {
	once.Do(func() {
		initErr = initServices(optionsPath, os.Stdout)
	})
	return initErr
}

func mustInit() {
	if err := Init(""); err != nil {
		log.Fatalf("failed to initialize schemadoc: %v", err)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices(optionsPath string, out io.Writer) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err = config.Load(dir, optionsPath, os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}
	slog.Debug("configuration loaded", "options_file", cfg.OptionsFile, "database", cfg.DatabasePath, "docs", cfg.DocsPath)

	// Get database connection
	database, err = db.Open(cfg.DatabasePath, cfg.DocsPath, cfg.Schema)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	tableRepo := sqlite.NewTableDocRepository(database, cfg.Schema)
	columnRepo := sqlite.NewColumnDocRepository(database, cfg.Schema)
	statsRepo := sqlite.NewStatsRepository(database, cfg.Schema)
	live := sqlite.NewLiveCatalog(database)
	sampler := sqlite.NewSampler(database)
	changeRepo := sqlite.NewChangeLogRepository(database, cfg.Schema)
	changes := sqlite.NewLogWriterAdapter(changeRepo, slog.Default(), cfg.Schema)

	// Operator-facing adapters
	editor := filesystem.NewEditorLauncher(cfg.Editor)
	buffers := filesystem.NewBufferStore(cfg.TempDir)
	prompter := terminal.NewPrompter()
	pager = filesystem.NewPager(cfg.Pager, out)

	rules := secondary.IgnoreRules{
		Schemas:       cfg.SchemasToIgnore,
		TablePatterns: cfg.TableIgnorePatterns,
	}

	// Create services (primary ports implementation)
	edits := app.NewEditService(tableRepo, columnRepo, editor, buffers, prompter, changes, out)
	editService = edits
	reconcileService = app.NewReconcileService(tableRepo, columnRepo, live, sampler, rules)
	orphanService = app.NewOrphanService(tableRepo, columnRepo, prompter, changes, out)
	sampleService = app.NewSampleService(columnRepo, sampler, edits, prompter, changes, out)
	summaryService = app.NewSummaryService(tableRepo, columnRepo, statsRepo, edits)
	historyService = app.NewHistoryService(changeRepo)
	return nil
}

// Config returns the resolved configuration.
func Config() *config.Config {
	mustInit()
	return cfg
}

// Database returns the open connection to the documented database.
func Database() *sqlx.DB {
	mustInit()
	return database
}

// Close releases the database connection.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CatalogAdapter() *cliadapter.CatalogAdapter {
	return CatalogAdapterWithOutput(os.Stdout)
}

// CatalogAdapterWithOutput returns a new CatalogAdapter writing to the given output.
func CatalogAdapterWithOutput(out io.Writer) *cliadapter.CatalogAdapter {
	mustInit()
	return cliadapter.NewCatalogAdapter(reconcileService, out)
}

// DocsAdapter returns a new DocsAdapter writing to stdout.
func DocsAdapter() *cliadapter.DocsAdapter {
	return DocsAdapterWithOutput(os.Stdout)
}

// DocsAdapterWithOutput returns a new DocsAdapter writing to the given output.
func DocsAdapterWithOutput(out io.Writer) *cliadapter.DocsAdapter {
	mustInit()
	return cliadapter.NewDocsAdapter(editService, orphanService, out)
}

// SampleAdapter returns a new SampleAdapter writing to stdout.
func SampleAdapter() *cliadapter.SampleAdapter {
	return SampleAdapterWithOutput(os.Stdout)
}

// SampleAdapterWithOutput returns a new SampleAdapter writing to the given output.
func SampleAdapterWithOutput(out io.Writer) *cliadapter.SampleAdapter {
	mustInit()
	return cliadapter.NewSampleAdapter(sampleService, out)
}

// SummaryAdapter returns a new SummaryAdapter writing to stdout.
func SummaryAdapter() *cliadapter.SummaryAdapter {
	return SummaryAdapterWithOutput(os.Stdout)
}

// SummaryAdapterWithOutput returns a new SummaryAdapter writing to the given output.
// Summaries go through the configured pager unless disabled per call.
func SummaryAdapterWithOutput(out io.Writer) *cliadapter.SummaryAdapter {
	mustInit()
	return cliadapter.NewSummaryAdapter(summaryService, pager, out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return HistoryAdapterWithOutput(os.Stdout)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	mustInit()
	return cliadapter.NewHistoryAdapter(historyService, out)
}
