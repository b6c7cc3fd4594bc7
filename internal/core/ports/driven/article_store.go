package driven

import (
	"context"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

// ArticleRow is one raw keyword-search hit: an article joined with its
// parent document's metadata, plus the FTS engine's relevance rank.
type ArticleRow struct {
	ArticleID     int64
	DocumentID    int64
	ArticleNumber string
	Title         string
	Content       string
	IsRepealed    bool
	IsAmended     bool
	DocumentTitle string
	LawNumber     string
	DocumentType  domain.DocumentType

	// Rank is the keyword relevance score, non-negative, higher is
	// better. Repeal filtering is NOT applied here; it is a
	// cross-cutting concern owned by the caller.
	Rank float64
}

// ArticleStore provides article/document persistence and FTS5 keyword
// search. Backed by SQLite.
type ArticleStore interface {
	// SearchArticles executes a built FTS5 query string and returns rows
	// ordered by the engine's native relevance rank, best first. An
	// empty docTypes slice means no type restriction.
	SearchArticles(ctx context.Context, ftsQuery string, docTypes []domain.DocumentType, limit int) ([]ArticleRow, error)

	// GetArticle returns an article joined with its parent document.
	// Returns domain.ErrNotFound when the id is unknown.
	GetArticle(ctx context.Context, id int64) (*ArticleRow, error)

	// SaveDocument inserts a document and returns its assigned id.
	// Returns domain.ErrDuplicateDocument when the content hash is
	// already present.
	SaveDocument(ctx context.Context, doc *domain.Document) (int64, error)

	// SaveArticles inserts a document's articles in one transaction and
	// returns their assigned ids in input order.
	SaveArticles(ctx context.Context, articles []domain.Article) ([]int64, error)

	// DeleteDocument removes a document; its articles cascade.
	DeleteDocument(ctx context.Context, id int64) error

	// ArticlesForIndexing returns every article whose cleaned-or-raw
	// content is longer than minLength characters, as semantic index
	// training input.
	ArticlesForIndexing(ctx context.Context, minLength int) ([]domain.IndexDocument, error)

	// Close releases resources.
	Close() error
}

// HistoryStore persists search telemetry. Append-only from the search
// core's point of view.
type HistoryStore interface {
	// Add appends one history entry.
	Add(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns the most recent n entries, newest first.
	Recent(ctx context.Context, n int) ([]domain.HistoryEntry, error)

	// MatchQueries returns up to limit distinct prior query texts
	// containing the fragment case-insensitively, newest first.
	MatchQueries(ctx context.Context, fragment string, limit int) ([]string, error)

	// Stats aggregates counts and timings across all entries.
	Stats(ctx context.Context) (domain.HistoryStats, error)
}
