package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seedDocument inserts a document with one article per content string and
// returns the document id and article ids.
func seedDocument(t *testing.T, store *Store, doc domain.Document, contents ...string) (int64, []int64) {
	t.Helper()
	ctx := context.Background()
	articles := store.ArticleStore()

	docID, err := articles.SaveDocument(ctx, &doc)
	require.NoError(t, err)

	rows := make([]domain.Article, 0, len(contents))
	for i, content := range contents {
		rows = append(rows, domain.Article{
			DocumentID:    docID,
			Number:        string(rune('1' + i)),
			Content:       content,
			ContentClean:  content,
			ContentSearch: content,
			SeqIndex:      i,
		})
	}
	ids, err := articles.SaveArticles(ctx, rows)
	require.NoError(t, err)
	return docID, ids
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "mevzuat.db"), store.Path())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	seedDocument(t, first, domain.Document{Title: "Test Kanunu", Type: domain.DocumentTypeLaw},
		"vergi matrahı beyanname üzerinden hesaplanır")
	require.NoError(t, first.Close())

	// Reopening must not rerun applied migrations or lose data.
	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	row, err := second.ArticleStore().GetArticle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Test Kanunu", row.DocumentTitle)
}

func TestArticleStore_SaveDocument_Defaults(t *testing.T) {
	store := setupStore(t)

	doc := domain.Document{Title: "Gelir Vergisi Kanunu", Type: domain.DocumentTypeLaw, FileHash: "abc"}
	id, err := store.ArticleStore().SaveDocument(context.Background(), &doc)
	require.NoError(t, err)

	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "ACTIVE", doc.Status)
	assert.Equal(t, 1, doc.Version)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestArticleStore_SaveDocument_DuplicateHash(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	doc := domain.Document{Title: "Gelir Vergisi Kanunu", Type: domain.DocumentTypeLaw, FileHash: "samehash"}
	_, err := store.ArticleStore().SaveDocument(ctx, &doc)
	require.NoError(t, err)

	dup := domain.Document{Title: "Aynı dosya", Type: domain.DocumentTypeLaw, FileHash: "samehash"}
	_, err = store.ArticleStore().SaveDocument(ctx, &dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateDocument)
}

func TestArticleStore_SaveArticles(t *testing.T) {
	store := setupStore(t)

	_, ids := seedDocument(t, store, domain.Document{Title: "Test Kanunu", Type: domain.DocumentTypeLaw},
		"birinci madde içeriği", "ikinci madde içeriği")

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])

	row, err := store.ArticleStore().GetArticle(context.Background(), ids[1])
	require.NoError(t, err)
	assert.Equal(t, "2", row.ArticleNumber)
	assert.Equal(t, "ikinci madde içeriği", row.Content)
}

func TestArticleStore_SearchArticles(t *testing.T) {
	store := setupStore(t)

	seedDocument(t, store, domain.Document{Title: "Gelir Vergisi Kanunu", LawNumber: "193", Type: domain.DocumentTypeLaw},
		"vergi matrahı beyanname üzerinden hesaplanır",
		"ceza hükümleri ayrı bölümde düzenlenir")

	rows, err := store.ArticleStore().SearchArticles(context.Background(), `vergi`, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Gelir Vergisi Kanunu", rows[0].DocumentTitle)
	assert.Equal(t, "193", rows[0].LawNumber)
	assert.Equal(t, domain.DocumentTypeLaw, rows[0].DocumentType)
	assert.Greater(t, rows[0].Rank, 0.0, "bm25 rank is negated to higher-is-better")
}

func TestArticleStore_SearchArticles_DocTypeFilter(t *testing.T) {
	store := setupStore(t)

	seedDocument(t, store, domain.Document{Title: "Vergi Kanunu", Type: domain.DocumentTypeLaw, FileHash: "h1"},
		"vergi beyannamesi verilir")
	seedDocument(t, store, domain.Document{Title: "Vergi Yönetmeliği", Type: domain.DocumentTypeRegulation, FileHash: "h2"},
		"vergi usulüne dair yönetmelik hükümleri")

	all, err := store.ArticleStore().SearchArticles(context.Background(), `vergi`, nil, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	laws, err := store.ArticleStore().SearchArticles(context.Background(), `vergi`,
		[]domain.DocumentType{domain.DocumentTypeLaw}, 10)
	require.NoError(t, err)
	require.Len(t, laws, 1)
	assert.Equal(t, "Vergi Kanunu", laws[0].DocumentTitle)
}

func TestArticleStore_SearchArticles_Limit(t *testing.T) {
	store := setupStore(t)

	seedDocument(t, store, domain.Document{Title: "Test Kanunu", Type: domain.DocumentTypeLaw},
		"vergi birinci", "vergi ikinci", "vergi üçüncü")

	rows, err := store.ArticleStore().SearchArticles(context.Background(), `vergi`, nil, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestArticleStore_SearchArticles_NoMatch(t *testing.T) {
	store := setupStore(t)

	seedDocument(t, store, domain.Document{Title: "Test Kanunu", Type: domain.DocumentTypeLaw},
		"vergi matrahı beyanname üzerinden hesaplanır")

	rows, err := store.ArticleStore().SearchArticles(context.Background(), `bulunmaz`, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestArticleStore_GetArticle_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.ArticleStore().GetArticle(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleStore_DeleteDocument_Cascades(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	docID, ids := seedDocument(t, store, domain.Document{Title: "Test Kanunu", Type: domain.DocumentTypeLaw},
		"silinecek madde içeriği")

	require.NoError(t, store.ArticleStore().DeleteDocument(ctx, docID))

	_, err := store.ArticleStore().GetArticle(ctx, ids[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleStore_ArticlesForIndexing(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	docID, err := store.ArticleStore().SaveDocument(ctx, &domain.Document{Title: "Test Kanunu", Type: domain.DocumentTypeLaw})
	require.NoError(t, err)

	long := "vergi matrahının tespiti ve beyanname verilmesine dair uzun hükümler"
	_, err = store.ArticleStore().SaveArticles(ctx, []domain.Article{
		{DocumentID: docID, Number: "1", Content: long, ContentClean: long},
		{DocumentID: docID, Number: "2", Content: "kısa", ContentClean: "kısa"},
		// Empty clean form falls back to the raw content.
		{DocumentID: docID, Number: "3", Content: long, ContentClean: ""},
	})
	require.NoError(t, err)

	docs, err := store.ArticleStore().ArticlesForIndexing(ctx, 50)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, long, docs[0].Content)
	assert.Equal(t, long, docs[1].Content)
}

func TestHistoryStore_AddAndRecent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	history := store.HistoryStore()

	require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: "eski arama", QueryType: domain.SearchTypeKeyword, ResultCount: 3, ElapsedMS: 12.5}))
	require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: "yeni arama", QueryType: domain.SearchTypeMixed, ResultCount: 7, ElapsedMS: 4.0}))

	entries, err := history.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "yeni arama", entries[0].Query)
	assert.Equal(t, domain.SearchTypeMixed, entries[0].QueryType)
	assert.Equal(t, 7, entries[0].ResultCount)
	assert.Equal(t, "eski arama", entries[1].Query)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestHistoryStore_Recent_Limit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	history := store.HistoryStore()

	for _, q := range []string{"bir", "iki", "üç"} {
		require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: q, QueryType: domain.SearchTypeKeyword}))
	}

	entries, err := history.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "üç", entries[0].Query)
}

func TestHistoryStore_MatchQueries(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	history := store.HistoryStore()

	for _, q := range []string{"vergi matrahi", "ceza hukuku", "vergi iadesi", "vergi matrahi"} {
		require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: q, QueryType: domain.SearchTypeKeyword}))
	}

	matches, err := history.MatchQueries(ctx, "vergi", 10)
	require.NoError(t, err)

	// Distinct queries, most recently used first.
	assert.Equal(t, []string{"vergi matrahi", "vergi iadesi"}, matches)
}

func TestHistoryStore_MatchQueries_CaseInsensitive(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	history := store.HistoryStore()

	require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: "Vergi Matrahi", QueryType: domain.SearchTypeKeyword}))

	matches, err := history.MatchQueries(ctx, "VERGI", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vergi Matrahi"}, matches)
}

func TestHistoryStore_Stats(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	history := store.HistoryStore()

	require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: "a", QueryType: domain.SearchTypeKeyword, ElapsedMS: 10}))
	require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: "b", QueryType: domain.SearchTypeKeyword, ElapsedMS: 30}))
	require.NoError(t, history.Add(ctx, domain.HistoryEntry{Query: "c", QueryType: domain.SearchTypeMixed, ElapsedMS: 20}))

	stats, err := history.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSearches)
	assert.InDelta(t, 20.0, stats.AvgElapsedMS, 1e-9)
	assert.InDelta(t, 10.0, stats.MinElapsedMS, 1e-9)
	assert.InDelta(t, 30.0, stats.MaxElapsedMS, 1e-9)
	assert.Equal(t, 2, stats.TypeCounts[domain.SearchTypeKeyword])
	assert.Equal(t, 1, stats.TypeCounts[domain.SearchTypeMixed])
}

func TestHistoryStore_Stats_Empty(t *testing.T) {
	store := setupStore(t)

	stats, err := store.HistoryStore().Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSearches)
	assert.Empty(t, stats.TypeCounts)
}
