package tfidf

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driven"
	"github.com/mevzuat-labs/mevzuat-cli/internal/logger"
)

// minSimilarity is the floor below which a hit is noise, not a match.
const minSimilarity = 0.01

// minTrainContentLen excludes near-empty articles from training.
const minTrainContentLen = 10

// Ensure Index implements the port.
var _ driven.SemanticIndex = (*Index)(nil)

// Index is a TF-IDF vector index over article content.
//
// Reads take the read lock; Train, AddDocument and Rebuild serialise on the
// write lock so the matrix, the id list and the persisted artifact never
// interleave partial updates.
type Index struct {
	mu sync.RWMutex

	cfg        VectorizerConfig
	dir        string
	vectorizer *Vectorizer
	vectors    *mat.Dense // one L2-normalised row per indexed article
	articleIDs []int64
}

// NewIndex creates an index persisting under dir.
func NewIndex(dir string, cfg VectorizerConfig) *Index {
	return &Index{cfg: cfg, dir: dir}
}

// Initialize loads the persisted model, or trains from docs when nothing
// valid is on disk. Returns false when neither succeeds.
func (x *Index) Initialize(ctx context.Context, docs []domain.IndexDocument) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.loadLocked(); err == nil {
		logger.Info("TF-IDF model loaded from disk: %d articles", len(x.articleIDs))
		return true
	} else {
		logger.Debug("No persisted TF-IDF model: %v", err)
	}

	if len(docs) == 0 {
		logger.Warn("No persisted model and no training documents; semantic search disabled")
		return false
	}

	if err := x.trainLocked(ctx, docs); err != nil {
		logger.Warn("TF-IDF training failed: %v", err)
		return false
	}
	return true
}

// Train fits a new model from docs and persists it, replacing any previous
// model only on full success.
func (x *Index) Train(ctx context.Context, docs []domain.IndexDocument) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.trainLocked(ctx, docs)
}

func (x *Index) trainLocked(ctx context.Context, docs []domain.IndexDocument) error {
	texts := make([]string, 0, len(docs))
	ids := make([]int64, 0, len(docs))
	for _, d := range docs {
		if len(strings.TrimSpace(d.Content)) > minTrainContentLen {
			texts = append(texts, d.Content)
			ids = append(ids, d.ArticleID)
		}
	}
	if len(texts) == 0 {
		return fmt.Errorf("training tf-idf model: %w", domain.ErrNoContent)
	}

	logger.Info("Training TF-IDF model: %d articles", len(texts))
	vectorizer := Fit(x.cfg, texts)
	if vectorizer.Features() == 0 {
		return fmt.Errorf("training tf-idf model: empty vocabulary: %w", domain.ErrNoContent)
	}

	data := make([]float64, 0, len(texts)*vectorizer.Features())
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("training tf-idf model: %w", err)
		}
		data = append(data, vectorizer.Transform(text)...)
	}
	vectors := mat.NewDense(len(texts), vectorizer.Features(), data)

	// In-memory state flips only together with a successful persist
	// attempt; a failed disk write leaves the new model usable for this
	// process and is logged as a durability gap.
	x.vectorizer = vectorizer
	x.vectors = vectors
	x.articleIDs = ids

	if err := x.saveLocked(); err != nil {
		logger.Warn("Persisting TF-IDF model failed (in-memory model still active): %v", err)
	}

	logger.Info("TF-IDF model trained: %d articles, %d features", len(texts), vectorizer.Features())
	return nil
}

// Search transforms the query and ranks every indexed article by cosine
// similarity. Rows and query are L2-normalised, so similarity is a dot
// product.
func (x *Index) Search(_ context.Context, query string, topK int) ([]driven.SemanticHit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.vectorizer == nil || x.vectors == nil {
		logger.Debug("Semantic search skipped: no model loaded")
		return []driven.SemanticHit{}, nil
	}

	queryVec := x.vectorizer.Transform(query)
	rows, _ := x.vectors.Dims()

	hits := make([]driven.SemanticHit, 0, rows)
	for i := 0; i < rows; i++ {
		sim := floats.Dot(x.vectors.RawRowView(i), queryVec)
		if sim > minSimilarity {
			hits = append(hits, driven.SemanticHit{ArticleID: x.articleIDs[i], Similarity: sim})
		}
	}

	// Stable sort keeps row order as the deterministic tiebreak.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}

	logger.Debug("TF-IDF search: %d hits", len(hits))
	return hits, nil
}

// AddDocument vectorises content through the existing vocabulary and
// appends it as a new row. No refitting happens here; vocabulary drift is
// corrected only by a full Rebuild.
func (x *Index) AddDocument(_ context.Context, articleID int64, content string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.vectorizer == nil {
		return domain.ErrIndexUnavailable
	}

	vec := x.vectorizer.Transform(content)

	rows := 0
	cols := x.vectorizer.Features()
	var data []float64
	if x.vectors != nil {
		rows, _ = x.vectors.Dims()
		raw := x.vectors.RawMatrix().Data
		data = make([]float64, 0, len(raw)+cols)
		data = append(data, raw...)
	}
	data = append(data, vec...)

	x.vectors = mat.NewDense(rows+1, cols, data)
	x.articleIDs = append(x.articleIDs, articleID)

	if err := x.saveLocked(); err != nil {
		logger.Warn("Persisting TF-IDF model after add failed: %v", err)
	}

	logger.Debug("Article %d added to TF-IDF index", articleID)
	return nil
}

// Rebuild clears persisted state and trains from scratch.
func (x *Index) Rebuild(ctx context.Context, docs []domain.IndexDocument) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	logger.Section("TF-IDF Rebuild")
	x.clearPersistedLocked()
	return x.trainLocked(ctx, docs)
}

// Size returns the number of indexed articles.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.articleIDs)
}
