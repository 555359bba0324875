// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// setupTestDB is the single point where the documentation schema is loaded
// for tests. It uses db.GetSchemaSQL through db.InitSchema so tests run
// against the same DDL as production. Do not hardcode documentation tables
// in test files; create live tables in main with execSQL instead.
package sqlite_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/example/schemadoc/internal/adapters/sqlite"
	"github.com/example/schemadoc/internal/db"
	"github.com/example/schemadoc/internal/ports/secondary"
)

const testSchema = "schemadoc"

// defaultRules mirrors the built-in configuration defaults.
var defaultRules = secondary.IgnoreRules{
	Schemas:       []string{"information_schema", testSchema, "temp"},
	TablePatterns: []string{"^sqlite_"},
}

// setupTestDB creates an in-memory documented database with the fixture
// tables in main and an in-memory documentation database attached.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db.Register()

	testDB, err := sqlx.Open(db.DriverName, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if err := db.Attach(testDB, ":memory:", testSchema); err != nil {
		t.Fatalf("failed to attach docs db: %v", err)
	}
	if err := db.InitSchema(testDB, testSchema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if err := db.SeedFixtures(testDB); err != nil {
		t.Fatalf("failed to seed fixtures: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// execSQL runs statements against the test database.
func execSQL(t *testing.T, conn *sqlx.DB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

// syncAll runs discovery for tables and columns with the default rules.
func syncAll(t *testing.T, conn *sqlx.DB) {
	t.Helper()
	ctx := context.Background()
	if _, err := sqlite.NewTableDocRepository(conn, testSchema).InsertMissing(ctx, defaultRules); err != nil {
		t.Fatalf("table discovery failed: %v", err)
	}
	if _, err := sqlite.NewColumnDocRepository(conn, testSchema).InsertMissing(ctx, defaultRules); err != nil {
		t.Fatalf("column discovery failed: %v", err)
	}
}

// markOrphans flags vanished tables and columns.
func markOrphans(t *testing.T, conn *sqlx.DB) {
	t.Helper()
	ctx := context.Background()
	if _, err := sqlite.NewTableDocRepository(conn, testSchema).MarkOrphaned(ctx); err != nil {
		t.Fatalf("table orphan marking failed: %v", err)
	}
	if _, err := sqlite.NewColumnDocRepository(conn, testSchema).MarkOrphaned(ctx); err != nil {
		t.Fatalf("column orphan marking failed: %v", err)
	}
}

// mustTable fetches a documented table or fails the test.
func mustTable(t *testing.T, repo *sqlite.TableDocRepository, schema, table string) *secondary.TableDocRecord {
	t.Helper()
	record, err := repo.GetByIdentity(context.Background(), tableID(schema, table))
	if err != nil {
		t.Fatalf("GetByIdentity(%s.%s) failed: %v", schema, table, err)
	}
	return record
}

// countRows counts rows in a documentation table matching where.
func countRows(t *testing.T, conn *sqlx.DB, table, where string, args ...any) int {
	t.Helper()
	var n int
	if err := conn.Get(&n, "SELECT COUNT(*) FROM "+testSchema+"."+table+" WHERE "+where, args...); err != nil {
		t.Fatalf("count %s failed: %v", table, err)
	}
	return n
}
