package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/mevzuat-labs/mevzuat-cli/internal/analyzer"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driven"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driving"
	"github.com/mevzuat-labs/mevzuat-cli/internal/logger"
)

const (
	defaultMaxResults     = 20
	defaultKeywordWeight  = 0.6
	defaultSemanticWeight = 0.4
	defaultCacheSize      = 100

	// Articles shorter than this are too thin to contribute useful
	// vocabulary and are skipped when (re)building the semantic index.
	minIndexableContentLen = 50

	searchPoolSize = 2
)

// Ensure Engine implements the interface.
var _ driving.SearchService = (*Engine)(nil)

// Engine combines FTS5 keyword retrieval and TF-IDF similarity retrieval
// into one ranked, cached, history-logged search surface.
type Engine struct {
	articles driven.ArticleStore
	history  driven.HistoryStore
	semantic driven.SemanticIndex

	analyzer    *analyzer.Analyzer
	builder     *analyzer.QueryBuilder
	highlighter *highlighter
	cache       *resultCache

	// pool runs the two sub-searches of a mixed query concurrently.
	// When nil, dispatch falls back to sequential execution, which
	// produces identical results.
	pool *ants.Pool

	maxResults      int
	keywordWeight   float64
	semanticWeight  float64
	semanticEnabled bool
}

// NewEngine wires the search engine from its driven ports. Tunables come
// from the config store with sensible defaults for absent keys.
func NewEngine(
	cfg driven.ConfigStore,
	articles driven.ArticleStore,
	history driven.HistoryStore,
	semantic driven.SemanticIndex,
) *Engine {
	a := analyzer.New()

	pool, err := ants.NewPool(configInt(cfg, "performance.max_workers", searchPoolSize))
	if err != nil {
		logger.Warn("worker pool unavailable, mixed searches run sequentially: %v", err)
		pool = nil
	}

	return &Engine{
		articles:        articles,
		history:         history,
		semantic:        semantic,
		analyzer:        a,
		builder:         analyzer.NewQueryBuilder(a),
		highlighter:     newHighlighter(a),
		cache:           newResultCache(configInt(cfg, "search.cache_size", defaultCacheSize)),
		pool:            pool,
		maxResults:      configInt(cfg, "search.max_results", defaultMaxResults),
		keywordWeight:   configFloat(cfg, "search.keyword_weight", defaultKeywordWeight),
		semanticWeight:  configFloat(cfg, "search.semantic_weight", defaultSemanticWeight),
		semanticEnabled: configBool(cfg, "search.semantic_enabled", true),
	}
}

// Close releases the worker pool.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Search runs one search call through the staged pipeline: cache lookup,
// sub-search dispatch, repeal filtering, fusion, ranking, truncation,
// cache store and history append. Retrieval failures degrade to fewer or
// zero results; only an empty query is an error.
func (e *Engine) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	searchType := opts.Type
	if searchType == "" {
		searchType = domain.SearchTypeMixed
	}

	key := cacheKey(query, opts.DocumentTypes, searchType, opts.IncludeRepealed)
	if cached, ok := e.cache.Get(key); ok {
		logger.Debug("cache hit for %q", query)
		return cached, nil
	}

	start := time.Now()

	var keywordResults, semanticResults []domain.SearchResult
	switch searchType {
	case domain.SearchTypeKeyword:
		keywordResults = e.keywordSearch(ctx, query, opts)
	case domain.SearchTypeSemantic:
		semanticResults = e.semanticSearch(ctx, query, opts)
	case domain.SearchTypeMixed:
		keywordResults, semanticResults = e.mixedSearch(ctx, query, opts)
	default:
		logger.Debug("unknown search type %q, using keyword", searchType)
		searchType = domain.SearchTypeKeyword
		keywordResults = e.keywordSearch(ctx, query, opts)
	}

	var results []domain.SearchResult
	if searchType == domain.SearchTypeMixed {
		results = e.fuse(keywordResults, semanticResults)
	} else if keywordResults != nil {
		results = keywordResults
	} else {
		results = semanticResults
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > e.maxResults {
		results = results[:e.maxResults]
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	e.cache.Put(key, results)

	entry := domain.HistoryEntry{
		Query:       query,
		QueryType:   searchType,
		ResultCount: len(results),
		ElapsedMS:   float64(time.Since(start)) / float64(time.Millisecond),
	}
	if err := e.history.Add(ctx, entry); err != nil {
		logger.Warn("recording search history: %v", err)
	}

	return results, nil
}

// mixedSearch runs both retrieval paths, concurrently when the pool is
// available. The paths are read-only against independent stores, so the
// fused output is identical to sequential execution.
func (e *Engine) mixedSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, []domain.SearchResult) {
	var (
		keywordResults  []domain.SearchResult
		semanticResults []domain.SearchResult
	)

	if e.pool == nil {
		return e.keywordSearch(ctx, query, opts), e.semanticSearch(ctx, query, opts)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	submit := func(task func()) {
		if err := e.pool.Submit(task); err != nil {
			// Pool saturated or released; run inline instead.
			task()
		}
	}
	submit(func() {
		defer wg.Done()
		keywordResults = e.keywordSearch(ctx, query, opts)
	})
	submit(func() {
		defer wg.Done()
		semanticResults = e.semanticSearch(ctx, query, opts)
	})
	wg.Wait()

	return keywordResults, semanticResults
}

// keywordSearch builds a comprehensive FTS5 query, executes it and wraps
// the surviving rows. Scores are the engine's native rank, unweighted.
func (e *Engine) keywordSearch(ctx context.Context, query string, opts domain.SearchOptions) []domain.SearchResult {
	ftsQuery := e.builder.Build(query, analyzer.QueryModeComprehensive)

	rows, err := e.articles.SearchArticles(ctx, ftsQuery, opts.DocumentTypes, e.maxResults*2)
	if err != nil {
		logger.Warn("keyword search failed: %v", err)
		return nil
	}

	results := make([]domain.SearchResult, 0, len(rows))
	for _, row := range rows {
		if row.IsRepealed && !opts.IncludeRepealed {
			continue
		}
		results = append(results, domain.SearchResult{
			ArticleID:     row.ArticleID,
			DocumentID:    row.DocumentID,
			ArticleNumber: row.ArticleNumber,
			Title:         row.Title,
			Content:       row.Content,
			DocumentTitle: row.DocumentTitle,
			LawNumber:     row.LawNumber,
			DocumentType:  row.DocumentType,
			IsRepealed:    row.IsRepealed,
			IsAmended:     row.IsAmended,
			Score:         row.Rank,
			Match:         domain.MatchTypeKeyword,
			Highlights:    e.highlighter.Keyword(row.Content, query),
		})
	}
	return results
}

// semanticSearch runs the similarity path and resolves each hit back to a
// full article row. Scores are raw cosine similarities, unweighted.
func (e *Engine) semanticSearch(ctx context.Context, query string, opts domain.SearchOptions) []domain.SearchResult {
	if !e.semanticEnabled {
		return nil
	}

	hits, err := e.semantic.Search(ctx, query, e.maxResults*2)
	if err != nil {
		logger.Warn("semantic search failed: %v", err)
		return nil
	}

	typeFilter := make(map[domain.DocumentType]struct{}, len(opts.DocumentTypes))
	for _, t := range opts.DocumentTypes {
		typeFilter[t] = struct{}{}
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		row, err := e.articles.GetArticle(ctx, hit.ArticleID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("resolving semantic hit %d: %v", hit.ArticleID, err)
			}
			continue
		}
		if row.IsRepealed && !opts.IncludeRepealed {
			continue
		}
		if len(typeFilter) > 0 {
			if _, ok := typeFilter[row.DocumentType]; !ok {
				continue
			}
		}
		results = append(results, domain.SearchResult{
			ArticleID:     row.ArticleID,
			DocumentID:    row.DocumentID,
			ArticleNumber: row.ArticleNumber,
			Title:         row.Title,
			Content:       row.Content,
			DocumentTitle: row.DocumentTitle,
			LawNumber:     row.LawNumber,
			DocumentType:  row.DocumentType,
			IsRepealed:    row.IsRepealed,
			IsAmended:     row.IsAmended,
			Score:         hit.Similarity,
			Match:         domain.MatchTypeSemantic,
			Highlights:    e.highlighter.Semantic(row.Content),
		})
	}
	return results
}

// fuse merges the two paths' result sets keyed by article id. Keyword
// scores are weighted first; a semantic hit on an already present article
// adds its weighted score on top and marks the entry mixed. The additive
// combination lets a double-signal article outscore either path's maximum;
// that boost is deliberate and relied upon by downstream ranking.
func (e *Engine) fuse(keyword, semantic []domain.SearchResult) []domain.SearchResult {
	fused := make([]domain.SearchResult, 0, len(keyword)+len(semantic))
	index := make(map[int64]int, len(keyword))

	for _, r := range keyword {
		r.Score *= e.keywordWeight
		index[r.ArticleID] = len(fused)
		fused = append(fused, r)
	}
	for _, r := range semantic {
		if i, ok := index[r.ArticleID]; ok {
			fused[i].Score += r.Score * e.semanticWeight
			fused[i].Match = domain.MatchTypeMixed
			fused[i].Highlights = append(fused[i].Highlights, r.Highlights...)
			continue
		}
		r.Score *= e.semanticWeight
		index[r.ArticleID] = len(fused)
		fused = append(fused, r)
	}
	return fused
}

// AddArticleToIndex appends one article to the semantic index.
func (e *Engine) AddArticleToIndex(ctx context.Context, articleID int64, content string) error {
	if !e.semanticEnabled {
		return nil
	}
	return e.semantic.AddDocument(ctx, articleID, content)
}

// RebuildIndex retrains the semantic index from every article with enough
// content to vectorise.
func (e *Engine) RebuildIndex(ctx context.Context) bool {
	docs, err := e.articles.ArticlesForIndexing(ctx, minIndexableContentLen)
	if err != nil {
		logger.Warn("loading articles for indexing: %v", err)
		return false
	}
	if err := e.semantic.Rebuild(ctx, docs); err != nil {
		logger.Warn("rebuilding semantic index: %v", err)
		return false
	}
	logger.Info("semantic index rebuilt over %d articles", len(docs))
	return true
}

// Suggestions returns prior queries containing partial, newest first,
// padded from a fixed list of common legal terms when history alone cannot
// fill the limit. Fragments shorter than two characters yield nothing.
func (e *Engine) Suggestions(ctx context.Context, partial string, limit int) []string {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < 2 || limit <= 0 {
		return nil
	}

	suggestions, err := e.history.MatchQueries(ctx, partial, limit)
	if err != nil {
		logger.Warn("loading history suggestions: %v", err)
		suggestions = nil
	}

	if len(suggestions) < limit {
		seen := make(map[string]struct{}, len(suggestions))
		for _, s := range suggestions {
			seen[strings.ToLower(s)] = struct{}{}
		}
		needle := strings.ToLower(partial)
		for _, term := range analyzer.PopularTerms() {
			if len(suggestions) >= limit {
				break
			}
			if !strings.Contains(strings.ToLower(term), needle) {
				continue
			}
			if _, dup := seen[strings.ToLower(term)]; dup {
				continue
			}
			seen[strings.ToLower(term)] = struct{}{}
			suggestions = append(suggestions, term)
		}
	}
	return suggestions
}

// Stats reports engine state plus history aggregates.
func (e *Engine) Stats(ctx context.Context) domain.EngineStats {
	historyStats, err := e.history.Stats(ctx)
	if err != nil {
		logger.Warn("loading history stats: %v", err)
		historyStats = domain.HistoryStats{}
	}
	return domain.EngineStats{
		SemanticEnabled: e.semanticEnabled,
		IndexSize:       e.semantic.Size(),
		CacheSize:       e.cache.Len(),
		History:         historyStats,
	}
}

// cacheKey hashes the full identity of a search call. Document types are
// sorted so filter order does not fragment the cache.
func cacheKey(query string, docTypes []domain.DocumentType, searchType domain.SearchType, includeRepealed bool) string {
	types := make([]string, len(docTypes))
	for i, t := range docTypes {
		types[i] = string(t)
	}
	sort.Strings(types)

	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(types, ",")))
	h.Write([]byte{0})
	h.Write([]byte(searchType))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(includeRepealed)))
	return hex.EncodeToString(h.Sum(nil))
}

func configInt(cfg driven.ConfigStore, key string, def int) int {
	if _, ok := cfg.Get(key); !ok {
		return def
	}
	if v := cfg.GetInt(key); v > 0 {
		return v
	}
	return def
}

func configFloat(cfg driven.ConfigStore, key string, def float64) float64 {
	if _, ok := cfg.Get(key); !ok {
		return def
	}
	if v := cfg.GetFloat(key); v > 0 {
		return v
	}
	return def
}

func configBool(cfg driven.ConfigStore, key string, def bool) bool {
	if _, ok := cfg.Get(key); !ok {
		return def
	}
	return cfg.GetBool(key)
}
