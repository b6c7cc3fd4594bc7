package driven

import (
	"context"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

// SemanticHit is a similarity search result.
type SemanticHit struct {
	// ArticleID is the matched article.
	ArticleID int64

	// Similarity is the cosine similarity score in [0, 1].
	Similarity float64
}

// SemanticIndex provides vector similarity search over article content.
//
// The engine depends only on this capability; whether the implementation is
// a lexical vector space (TF-IDF) or a neural embedding model is a
// construction-time choice, never a runtime type check.
type SemanticIndex interface {
	// Initialize loads a persisted model from disk, or trains a new one
	// from docs when nothing valid is persisted. Returns false when
	// neither is possible; never returns an error to the caller's
	// control flow beyond that boolean.
	Initialize(ctx context.Context, docs []domain.IndexDocument) bool

	// Search returns the topK most similar articles to the query,
	// best first, omitting scores below the similarity floor. Returns
	// an empty slice when no model is loaded.
	Search(ctx context.Context, query string, topK int) ([]SemanticHit, error)

	// AddDocument vectorises new content through the existing
	// vocabulary and appends it to the index. Vocabulary drift is
	// accepted until the next Rebuild.
	AddDocument(ctx context.Context, articleID int64, content string) error

	// Rebuild discards persisted state and trains from scratch.
	// Full replace, never partial.
	Rebuild(ctx context.Context, docs []domain.IndexDocument) error

	// Size returns the number of indexed articles.
	Size() int
}
