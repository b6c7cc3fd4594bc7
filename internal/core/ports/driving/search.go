package driving

import (
	"context"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

// SearchService is the public search surface.
type SearchService interface {
	// Search runs a keyword, semantic or mixed search. It returns
	// domain.ErrInvalidQuery for an empty query; runtime failures of
	// either retrieval path degrade to fewer or zero results, never an
	// error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// AddArticleToIndex appends one newly ingested article to the
	// semantic index.
	AddArticleToIndex(ctx context.Context, articleID int64, content string) error

	// RebuildIndex retrains the semantic index from every qualifying
	// article. Reports success.
	RebuildIndex(ctx context.Context) bool

	// Suggestions returns prior history queries containing the partial
	// query, padded from a fixed list of common legal terms.
	Suggestions(ctx context.Context, partial string, limit int) []string

	// Stats reports engine state and history aggregates.
	Stats(ctx context.Context) domain.EngineStats
}

// IngestService turns source files into persisted, indexed articles.
type IngestService interface {
	// IngestFile reads a UTF-8 text file, splits it into articles and
	// persists document plus articles. Returns the stored document and
	// the number of articles created.
	IngestFile(ctx context.Context, path string, meta IngestMeta) (*domain.Document, int, error)
}

// IngestMeta carries optional caller-supplied document metadata; empty
// fields are detected from the file content.
type IngestMeta struct {
	Title     string
	LawNumber string
	Type      domain.DocumentType
	Category  string
}
