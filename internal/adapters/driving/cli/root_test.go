package cli

import (
	"context"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driving"
)

// --- Mock implementations ---

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results     []domain.SearchResult
	searchErr   error
	rebuildOK   bool
	suggestions []string
	stats       domain.EngineStats

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockSearchService) AddArticleToIndex(_ context.Context, _ int64, _ string) error {
	return nil
}

func (m *mockSearchService) RebuildIndex(_ context.Context) bool {
	return m.rebuildOK
}

func (m *mockSearchService) Suggestions(_ context.Context, _ string, limit int) []string {
	if limit > len(m.suggestions) {
		return m.suggestions
	}
	return m.suggestions[:limit]
}

func (m *mockSearchService) Stats(_ context.Context) domain.EngineStats {
	return m.stats
}

// mockIngestService implements driving.IngestService for testing.
type mockIngestService struct {
	doc       *domain.Document
	count     int
	ingestErr error

	lastPath string
	lastMeta driving.IngestMeta
}

func (m *mockIngestService) IngestFile(_ context.Context, path string, meta driving.IngestMeta) (*domain.Document, int, error) {
	m.lastPath = path
	m.lastMeta = meta
	if m.ingestErr != nil {
		return nil, 0, m.ingestErr
	}
	return m.doc, m.count, nil
}

// mockHistoryStore implements driven.HistoryStore for testing.
type mockHistoryStore struct {
	entries []domain.HistoryEntry
}

func (m *mockHistoryStore) Add(_ context.Context, entry domain.HistoryEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, n int) ([]domain.HistoryEntry, error) {
	if n > len(m.entries) {
		n = len(m.entries)
	}
	return m.entries[:n], nil
}

func (m *mockHistoryStore) MatchQueries(_ context.Context, _ string, _ int) ([]string, error) {
	return nil, nil
}

func (m *mockHistoryStore) Stats(_ context.Context) (domain.HistoryStats, error) {
	return domain.HistoryStats{}, nil
}

// --- Test helpers ---

// setupTestServices swaps the wired services for mocks and returns a
// cleanup restoring the previous state.
func setupTestServices() (search *mockSearchService, ingest *mockIngestService, history *mockHistoryStore, cleanup func()) {
	oldSearch := searchService
	oldIngest := ingestService
	oldHistory := historyStore

	search = &mockSearchService{
		results: []domain.SearchResult{
			{
				ArticleID:     1,
				DocumentID:    10,
				ArticleNumber: "1",
				Title:         "Verginin konusu",
				Content:       "Gerçek kişilerin gelirleri gelir vergisine tabidir.",
				DocumentTitle: "Gelir Vergisi Kanunu",
				LawNumber:     "193",
				DocumentType:  domain.DocumentTypeLaw,
				Score:         1.52,
				Match:         domain.MatchTypeMixed,
				Highlights:    []string{"gelir <mark>vergisine</mark> tabidir"},
			},
		},
		rebuildOK:   true,
		suggestions: []string{"vergi iadesi", "vergi dairesi"},
	}
	ingest = &mockIngestService{
		doc: &domain.Document{
			ID:    10,
			Title: "Gelir Vergisi Kanunu",
			Type:  domain.DocumentTypeLaw,
		},
		count: 3,
	}
	history = &mockHistoryStore{}

	searchService = search
	ingestService = ingest
	historyStore = history

	cleanup = func() {
		searchService = oldSearch
		ingestService = oldIngest
		historyStore = oldHistory
	}
	return search, ingest, history, cleanup
}
