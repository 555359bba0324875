package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/schemadoc/internal/adapters/sqlite"
	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/secondary"
)

func columnID(schema, table, column string) catalog.ColumnID {
	return catalog.ColumnID{Schema: schema, Table: table, Column: column}
}

func TestColumnDocRepository_InsertMissing(t *testing.T) {
	conn := setupTestDB(t)
	tables := sqlite.NewTableDocRepository(conn, testSchema)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	ctx := context.Background()

	// Columns of undocumented tables are not discovered
	n, err := repo.InsertMissing(ctx, defaultRules)
	if err != nil {
		t.Fatalf("InsertMissing failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no columns before tables are documented, got %d", n)
	}

	if _, err := tables.InsertMissing(ctx, defaultRules); err != nil {
		t.Fatalf("table InsertMissing failed: %v", err)
	}
	n, err = repo.InsertMissing(ctx, defaultRules)
	if err != nil {
		t.Fatalf("InsertMissing failed: %v", err)
	}
	if n != 11 {
		t.Errorf("expected 11 columns inserted, got %d", n)
	}

	n, err = repo.InsertMissing(ctx, defaultRules)
	if err != nil {
		t.Fatalf("InsertMissing failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected discovery to be idempotent, got %d inserted", n)
	}

	record, err := repo.GetByIdentity(ctx, columnID("main", "orders", "total"))
	if err != nil {
		t.Fatalf("GetByIdentity failed: %v", err)
	}
	if record.DataType != "REAL" {
		t.Errorf("expected data type REAL, got %q", record.DataType)
	}
}

func TestColumnDocRepository_MarkOrphaned(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	ctx := context.Background()
	syncAll(t, conn)

	execSQL(t, conn, "ALTER TABLE customers RENAME COLUMN created_at TO signed_up_at")

	n, err := repo.MarkOrphaned(ctx)
	if err != nil {
		t.Fatalf("MarkOrphaned failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 column orphaned, got %d", n)
	}

	record, err := repo.GetByIdentity(ctx, columnID("main", "customers", "created_at"))
	if err != nil {
		t.Fatalf("GetByIdentity failed: %v", err)
	}
	if !record.Orphaned {
		t.Error("expected customers.created_at to be orphaned")
	}
}

func TestColumnDocRepository_Rename(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	ctx := context.Background()
	syncAll(t, conn)

	execSQL(t, conn, "ALTER TABLE customers RENAME COLUMN country TO region")
	markOrphans(t, conn)

	orphan, err := repo.PickOrphan(ctx)
	if err != nil || orphan == nil {
		t.Fatalf("expected an orphan, got %v (err %v)", orphan, err)
	}

	if err := repo.Rename(ctx, orphan.ID, "region"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	got, err := repo.GetByID(ctx, orphan.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ColumnName != "region" || got.Orphaned {
		t.Errorf("expected live column region, got %s orphaned=%v", got.Identity(), got.Orphaned)
	}
	// Only the orphan itself is renamed
	if n := countRows(t, conn, "columns", "column_name = 'region'"); n != 1 {
		t.Errorf("expected exactly one region column, got %d", n)
	}
}

func TestColumnDocRepository_DeleteAndTransfer(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	ctx := context.Background()
	syncAll(t, conn)

	source, err := repo.GetByIdentity(ctx, columnID("main", "orders", "status"))
	if err != nil {
		t.Fatalf("GetByIdentity failed: %v", err)
	}
	if err := repo.ApplyUpdate(ctx, source.ID, catalog.Update{
		{Field: catalog.FieldDescription, Value: "Lifecycle state"},
		{Field: catalog.FieldAlsoGoesBy, Value: "state"},
	}); err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}

	target, err := repo.GetByIdentity(ctx, columnID("main", "open_orders", "total"))
	if err != nil {
		t.Fatalf("GetByIdentity failed: %v", err)
	}
	if err := repo.SetExamples(ctx, target.ID, "10 ; 60"); err != nil {
		t.Fatalf("SetExamples failed: %v", err)
	}

	if err := repo.Transfer(ctx, source.ID, target.ID); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	got, err := repo.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Description != "Lifecycle state" || got.AlsoGoesBy != "state" {
		t.Errorf("expected documentation transferred, got %+v", got)
	}
	if got.ExampleVals != "10 ; 60" {
		t.Errorf("expected target examples kept, got %q", got.ExampleVals)
	}
	if n := countRows(t, conn, "columns", "id = ?", source.ID); n != 0 {
		t.Error("expected source column deleted")
	}

	if err := repo.Delete(ctx, target.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := countRows(t, conn, "columns", "id = ?", target.ID); n != 0 {
		t.Error("expected column deleted")
	}
}

func TestColumnDocRepository_NextWithoutExamples(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	ctx := context.Background()
	syncAll(t, conn)

	first, err := repo.NextWithoutExamples(ctx, nil)
	if err != nil {
		t.Fatalf("NextWithoutExamples failed: %v", err)
	}
	if first == nil {
		t.Fatal("expected a column without examples")
	}
	if first.Identity().String() != "main.customers.country" {
		t.Errorf("expected main.customers.country first, got %s", first.Identity())
	}

	second, err := repo.NextWithoutExamples(ctx, []int64{first.ID})
	if err != nil {
		t.Fatalf("NextWithoutExamples failed: %v", err)
	}
	if second == nil || second.ID == first.ID {
		t.Fatalf("expected skipped column to be passed over, got %v", second)
	}

	if err := repo.SetExamples(ctx, second.ID, "Ada ; Grace"); err != nil {
		t.Fatalf("SetExamples failed: %v", err)
	}
	third, err := repo.NextWithoutExamples(ctx, []int64{first.ID})
	if err != nil {
		t.Fatalf("NextWithoutExamples failed: %v", err)
	}
	if third != nil && third.ID == second.ID {
		t.Error("expected column with examples to be passed over")
	}
}

func TestColumnDocRepository_List(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	ctx := context.Background()
	syncAll(t, conn)

	tests := []struct {
		name    string
		filters secondary.ColumnDocFilters
		want    int
	}{
		{"all", secondary.ColumnDocFilters{}, 11},
		{"table pattern", secondary.ColumnDocFilters{TablePattern: "^orders$"}, 4},
		{"column pattern", secondary.ColumnDocFilters{ColumnPattern: "^id$"}, 3},
		{"both", secondary.ColumnDocFilters{TablePattern: "orders", ColumnPattern: "customer"}, 2},
		{"undocumented", secondary.ColumnDocFilters{UndocumentedOnly: true}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("expected %d records, got %d", tt.want, len(records))
			}
		})
	}
}

func TestColumnDocRepository_ListByTable(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewColumnDocRepository(conn, testSchema)
	syncAll(t, conn)

	records, err := repo.ListByTable(context.Background(), tableID("main", "customers"))
	if err != nil {
		t.Fatalf("ListByTable failed: %v", err)
	}
	want := []string{"country", "created_at", "id", "name"}
	if len(records) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(records))
	}
	for i, r := range records {
		if r.ColumnName != want[i] {
			t.Errorf("column %d: expected %s, got %s", i, want[i], r.ColumnName)
		}
	}
}
