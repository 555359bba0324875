package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/example/schemadoc/internal/core/catalog"
	"github.com/example/schemadoc/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTableDocRepository implements secondary.TableDocRepository for testing.
type mockTableDocRepository struct {
	records     map[int64]*secondary.TableDocRecord
	updates     map[int64][]catalog.Update
	renamed     map[int64]string
	deleted     []int64
	transfers   [][2]int64
	rowCounts   map[int64]int64
	inserted    int
	orphaned    int
	lastRules   secondary.IgnoreRules
	insertErr   error
	applyErr    error
	markErr     error
	pickOrphan  *secondary.TableDocRecord
	listFilters secondary.TableDocFilters
}

func newMockTableDocRepository(records ...*secondary.TableDocRecord) *mockTableDocRepository {
	m := &mockTableDocRepository{
		records:   make(map[int64]*secondary.TableDocRecord),
		updates:   make(map[int64][]catalog.Update),
		renamed:   make(map[int64]string),
		rowCounts: make(map[int64]int64),
	}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockTableDocRepository) sorted() []*secondary.TableDocRecord {
	var out []*secondary.TableDocRecord
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockTableDocRepository) GetByID(ctx context.Context, id int64) (*secondary.TableDocRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("table record %d not found", id)
}

func (m *mockTableDocRepository) GetByIdentity(ctx context.Context, id catalog.TableID) (*secondary.TableDocRecord, error) {
	for _, r := range m.sorted() {
		if r.Identity() == id {
			return r, nil
		}
	}
	return nil, &catalog.NotFoundError{Name: id.String()}
}

func (m *mockTableDocRepository) FindByName(ctx context.Context, table string) ([]*secondary.TableDocRecord, error) {
	var out []*secondary.TableDocRecord
	for _, r := range m.sorted() {
		if r.TableName == table {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockTableDocRepository) Exists(ctx context.Context, id catalog.TableID) (bool, error) {
	_, err := m.GetByIdentity(ctx, id)
	return err == nil, nil
}

func (m *mockTableDocRepository) List(ctx context.Context, filters secondary.TableDocFilters) ([]*secondary.TableDocRecord, error) {
	m.listFilters = filters
	var out []*secondary.TableDocRecord
	for _, r := range m.sorted() {
		if filters.ExcludeOrphaned && r.Orphaned {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockTableDocRepository) InsertMissing(ctx context.Context, rules secondary.IgnoreRules) (int, error) {
	m.lastRules = rules
	return m.inserted, m.insertErr
}

func (m *mockTableDocRepository) MarkOrphaned(ctx context.Context) (int, error) {
	return m.orphaned, m.markErr
}

func (m *mockTableDocRepository) ApplyUpdate(ctx context.Context, id int64, update catalog.Update) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.updates[id] = append(m.updates[id], update)
	return nil
}

func (m *mockTableDocRepository) PickOrphan(ctx context.Context) (*secondary.TableDocRecord, error) {
	return m.pickOrphan, nil
}

func (m *mockTableDocRepository) Rename(ctx context.Context, id int64, newName string) error {
	m.renamed[id] = newName
	return nil
}

func (m *mockTableDocRepository) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.records, id)
	return nil
}

func (m *mockTableDocRepository) Transfer(ctx context.Context, fromID, toID int64) error {
	m.transfers = append(m.transfers, [2]int64{fromID, toID})
	return nil
}

func (m *mockTableDocRepository) UpdateRowCount(ctx context.Context, id int64, count int64) error {
	m.rowCounts[id] = count
	return nil
}

// mockColumnDocRepository implements secondary.ColumnDocRepository for testing.
type mockColumnDocRepository struct {
	records    map[int64]*secondary.ColumnDocRecord
	updates    map[int64][]catalog.Update
	examples   map[int64]string
	renamed    map[int64]string
	deleted    []int64
	transfers  [][2]int64
	inserted   int
	orphaned   int
	insertErr  error
	applyErr   error
	pickOrphan *secondary.ColumnDocRecord
}

func newMockColumnDocRepository(records ...*secondary.ColumnDocRecord) *mockColumnDocRepository {
	m := &mockColumnDocRepository{
		records:  make(map[int64]*secondary.ColumnDocRecord),
		updates:  make(map[int64][]catalog.Update),
		examples: make(map[int64]string),
		renamed:  make(map[int64]string),
	}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *mockColumnDocRepository) sorted() []*secondary.ColumnDocRecord {
	var out []*secondary.ColumnDocRecord
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockColumnDocRepository) GetByID(ctx context.Context, id int64) (*secondary.ColumnDocRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("column record %d not found", id)
}

func (m *mockColumnDocRepository) GetByIdentity(ctx context.Context, id catalog.ColumnID) (*secondary.ColumnDocRecord, error) {
	for _, r := range m.sorted() {
		if r.Identity() == id {
			return r, nil
		}
	}
	return nil, &catalog.NotFoundError{Name: id.String()}
}

func (m *mockColumnDocRepository) FindByTableAndColumn(ctx context.Context, table, column string) ([]*secondary.ColumnDocRecord, error) {
	var out []*secondary.ColumnDocRecord
	for _, r := range m.sorted() {
		if r.TableName == table && r.ColumnName == column {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockColumnDocRepository) Exists(ctx context.Context, id catalog.ColumnID) (bool, error) {
	_, err := m.GetByIdentity(ctx, id)
	return err == nil, nil
}

func (m *mockColumnDocRepository) ListByTable(ctx context.Context, id catalog.TableID) ([]*secondary.ColumnDocRecord, error) {
	var out []*secondary.ColumnDocRecord
	for _, r := range m.sorted() {
		if r.Identity().TableID() == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockColumnDocRepository) List(ctx context.Context, filters secondary.ColumnDocFilters) ([]*secondary.ColumnDocRecord, error) {
	return m.sorted(), nil
}

func (m *mockColumnDocRepository) InsertMissing(ctx context.Context, rules secondary.IgnoreRules) (int, error) {
	return m.inserted, m.insertErr
}

func (m *mockColumnDocRepository) MarkOrphaned(ctx context.Context) (int, error) {
	return m.orphaned, nil
}

func (m *mockColumnDocRepository) ApplyUpdate(ctx context.Context, id int64, update catalog.Update) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.updates[id] = append(m.updates[id], update)
	return nil
}

func (m *mockColumnDocRepository) PickOrphan(ctx context.Context) (*secondary.ColumnDocRecord, error) {
	return m.pickOrphan, nil
}

func (m *mockColumnDocRepository) Rename(ctx context.Context, id int64, newName string) error {
	m.renamed[id] = newName
	return nil
}

func (m *mockColumnDocRepository) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.records, id)
	return nil
}

func (m *mockColumnDocRepository) Transfer(ctx context.Context, fromID, toID int64) error {
	m.transfers = append(m.transfers, [2]int64{fromID, toID})
	return nil
}

func (m *mockColumnDocRepository) NextWithoutExamples(ctx context.Context, skip []int64) (*secondary.ColumnDocRecord, error) {
	for _, r := range m.sorted() {
		if r.Orphaned || r.ExampleVals != "" || slices.Contains(skip, r.ID) {
			continue
		}
		if _, stored := m.examples[r.ID]; stored {
			continue
		}
		return r, nil
	}
	return nil, nil
}

func (m *mockColumnDocRepository) SetExamples(ctx context.Context, id int64, examples string) error {
	m.examples[id] = examples
	return nil
}

// mockLiveCatalog implements secondary.LiveCatalog for testing.
type mockLiveCatalog struct {
	tables map[catalog.TableID]bool
}

func (m *mockLiveCatalog) TableExists(ctx context.Context, id catalog.TableID) (bool, error) {
	return m.tables[id], nil
}

func (m *mockLiveCatalog) ColumnExists(ctx context.Context, id catalog.ColumnID) (bool, error) {
	return m.tables[id.TableID()], nil
}

// mockSampler implements secondary.Sampler for testing.
type mockSampler struct {
	values map[catalog.ColumnID][]string
	counts map[catalog.TableID]int64
	err    error
}

func (m *mockSampler) SampleRanked(ctx context.Context, id catalog.ColumnID) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.values[id], nil
}

func (m *mockSampler) CountRows(ctx context.Context, id catalog.TableID) (int64, error) {
	return m.counts[id], nil
}

// mockBufferStore implements secondary.BufferStore in memory.
type mockBufferStore struct {
	files  map[string]string
	writes int
}

func newMockBufferStore() *mockBufferStore {
	return &mockBufferStore{files: make(map[string]string)}
}

func (m *mockBufferStore) Write(kind, content string) (string, error) {
	m.writes++
	path := kind + "_edit_file.tmp"
	m.files[path] = content
	return path, nil
}

func (m *mockBufferStore) Read(path string) (string, error) {
	content, ok := m.files[path]
	if !ok {
		return "", errors.New("buffer missing")
	}
	return content, nil
}

func (m *mockBufferStore) Remove(path string) error {
	delete(m.files, path)
	return nil
}

// mockEditor implements secondary.Editor. Each call applies the next edit
// function to the buffer; seen records what the editor was shown.
type mockEditor struct {
	buffers *mockBufferStore
	edits   []func(string) string
	seen    []string
	err     error
}

func (m *mockEditor) Edit(ctx context.Context, path string) error {
	m.seen = append(m.seen, m.buffers.files[path])
	if m.err != nil {
		return m.err
	}
	if len(m.edits) == 0 {
		return nil
	}
	edit := m.edits[0]
	m.edits = m.edits[1:]
	m.buffers.files[path] = edit(m.buffers.files[path])
	return nil
}

// mockPrompter implements secondary.Prompter with scripted answers.
type mockPrompter struct {
	answers []string
	asked   []string
}

func (m *mockPrompter) Ask(prompt string) (string, error) {
	m.asked = append(m.asked, prompt)
	if len(m.answers) == 0 {
		return "", errors.New("no more answers")
	}
	answer := m.answers[0]
	m.answers = m.answers[1:]
	return answer, nil
}

func (m *mockPrompter) Confirm(prompt string) (bool, error) {
	answer, err := m.Ask(prompt)
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}

// mockChangeLog implements secondary.ChangeLog and records entries.
type mockChangeLog struct {
	entries []string
}

func (m *mockChangeLog) LogUpdate(ctx context.Context, entityType, entity string, fields []string) {
	m.entries = append(m.entries, fmt.Sprintf("update %s %s %v", entityType, entity, fields))
}

func (m *mockChangeLog) LogRename(ctx context.Context, entityType, from, to string) {
	m.entries = append(m.entries, fmt.Sprintf("rename %s %s -> %s", entityType, from, to))
}

func (m *mockChangeLog) LogDelete(ctx context.Context, entityType, entity string) {
	m.entries = append(m.entries, fmt.Sprintf("delete %s %s", entityType, entity))
}

func (m *mockChangeLog) LogTransfer(ctx context.Context, entityType, from, to string) {
	m.entries = append(m.entries, fmt.Sprintf("transfer %s %s -> %s", entityType, from, to))
}

var (
	_ secondary.TableDocRepository  = (*mockTableDocRepository)(nil)
	_ secondary.ColumnDocRepository = (*mockColumnDocRepository)(nil)
	_ secondary.LiveCatalog         = (*mockLiveCatalog)(nil)
	_ secondary.Sampler             = (*mockSampler)(nil)
	_ secondary.BufferStore         = (*mockBufferStore)(nil)
	_ secondary.Editor              = (*mockEditor)(nil)
	_ secondary.Prompter            = (*mockPrompter)(nil)
	_ secondary.ChangeLog           = (*mockChangeLog)(nil)
)

// ============================================================================
// Fixtures
// ============================================================================

func ordersTable() *secondary.TableDocRecord {
	return &secondary.TableDocRecord{ID: 1, TableSchema: "main", TableName: "orders", InsertedAt: "2026-01-01T00:00:00Z"}
}

func statusColumn() *secondary.ColumnDocRecord {
	return &secondary.ColumnDocRecord{ID: 10, TableSchema: "main", TableName: "orders", ColumnName: "status", DataType: "TEXT"}
}
