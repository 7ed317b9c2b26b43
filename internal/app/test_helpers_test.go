package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func(models.Source, time.Time) string {
	n := 0
	return func(source models.Source, _ time.Time) string {
		n++
		return fmt.Sprintf("%s-%d", source.IDPrefix(), n)
	}
}

// Ensure mocks implement their interfaces
var (
	_ secondary.NoteSource           = (*mockNoteSource)(nil)
	_ secondary.AgentStatusSource    = (*mockAgentSource)(nil)
	_ secondary.LogWriter            = (*mockLogWriter)(nil)
	_ secondary.ActivityRepository   = (*mockActivityRepository)(nil)
	_ secondary.CommandRunner        = (*mockRunner)(nil)
	_ secondary.CatalogSource        = (*mockCatalogSource)(nil)
	_ secondary.ObjectStorage        = (*mockObjectStorage)(nil)
	_ secondary.SpeechSynthesizer    = (*mockSynthesizer)(nil)
	_ secondary.ProjectRegistry      = (*mockProjectRegistry)(nil)
	_ secondary.CollectionStore[int] = (*mockCollectionStore[int])(nil)
)

// mockNoteSource implements secondary.NoteSource for testing.
type mockNoteSource struct {
	notes       map[string]string
	readErr     error
	memoryFiles []models.MemoryFile
}

func newMockNoteSource() *mockNoteSource {
	return &mockNoteSource{notes: make(map[string]string)}
}

func (m *mockNoteSource) ReadNote(ctx context.Context, name string) (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	content, ok := m.notes[name]
	if !ok {
		return "", os.ErrNotExist
	}
	return content, nil
}

func (m *mockNoteSource) MemoryFiles(ctx context.Context) ([]models.MemoryFile, error) {
	return m.memoryFiles, nil
}

// mockAgentSource implements secondary.AgentStatusSource for testing.
type mockAgentSource struct {
	agents  []models.Agent
	listErr error
}

func (m *mockAgentSource) ListAgents(ctx context.Context) ([]models.Agent, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.agents, nil
}

// loggedAction is one call recorded by mockLogWriter.
type loggedAction struct {
	Action   string
	EntityID string
	Field    string
	OldValue string
	NewValue string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	mu      sync.Mutex
	entries []loggedAction
	err     error
}

func (m *mockLogWriter) record(a loggedAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, a)
	return nil
}

func (m *mockLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return m.record(loggedAction{Action: "create", EntityID: entityID})
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return m.record(loggedAction{Action: "update", EntityID: entityID, Field: fieldName, OldValue: oldValue, NewValue: newValue})
}

func (m *mockLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return m.record(loggedAction{Action: "delete", EntityID: entityID})
}

func (m *mockLogWriter) LogSync(ctx context.Context, entityType string, count int) error {
	return m.record(loggedAction{Action: "sync", Field: "added", NewValue: fmt.Sprint(count)})
}

func (m *mockLogWriter) actions() []loggedAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]loggedAction{}, m.entries...)
}

// mockActivityRepository implements secondary.ActivityRepository for testing.
type mockActivityRepository struct {
	records     []*secondary.ActivityRecord
	lastFilters secondary.ActivityFilters
	pruned      int
	listErr     error
}

func (m *mockActivityRepository) Create(ctx context.Context, entry *secondary.ActivityRecord) error {
	m.records = append(m.records, entry)
	return nil
}

func (m *mockActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	m.lastFilters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ActivityRecord
	for _, r := range m.records {
		if filters.Action != "" && r.Action != filters.Action {
			continue
		}
		if filters.EntityID != "" && r.EntityID != filters.EntityID {
			continue
		}
		result = append(result, r)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockActivityRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	return m.pruned, nil
}

// mockRunner implements secondary.CommandRunner for testing.
// Outputs and errors are keyed by the space-joined args.
type mockRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func newMockRunner() *mockRunner {
	return &mockRunner{outputs: make(map[string]string), errs: make(map[string]error)}
}

func (m *mockRunner) Run(ctx context.Context, args ...string) (string, error) {
	m.calls = append(m.calls, args)
	key := strings.Join(args, " ")
	return m.outputs[key], m.errs[key]
}

// mockCollectionStore implements secondary.CollectionStore for testing.
type mockCollectionStore[T any] struct {
	items   []*T
	loadErr error
	saveErr error
	saves   int
}

func (m *mockCollectionStore[T]) Load(ctx context.Context) ([]*T, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]*T{}, m.items...), nil
}

func (m *mockCollectionStore[T]) Save(ctx context.Context, items []*T) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append([]*T{}, items...)
	m.saves++
	return nil
}

// mockProjectRegistry implements secondary.ProjectRegistry for testing.
type mockProjectRegistry struct {
	projects []models.ProjectInfo
	err      error
}

func (m *mockProjectRegistry) ListProjects(ctx context.Context) ([]models.ProjectInfo, error) {
	return m.projects, m.err
}
