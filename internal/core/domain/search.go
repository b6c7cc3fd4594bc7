package domain

// SearchType selects which retrieval paths a search runs.
type SearchType string

// Available search types.
const (
	// SearchTypeKeyword uses only the FTS5 keyword index.
	SearchTypeKeyword SearchType = "keyword"

	// SearchTypeSemantic uses only the TF-IDF vector index.
	SearchTypeSemantic SearchType = "semantic"

	// SearchTypeMixed runs both paths and fuses the result sets.
	SearchTypeMixed SearchType = "mixed"
)

// IsValid returns true if the search type is recognised.
func (t SearchType) IsValid() bool {
	switch t {
	case SearchTypeKeyword, SearchTypeSemantic, SearchTypeMixed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SearchType) String() string {
	return string(t)
}

// MatchType tags which path(s) produced a result.
type MatchType string

// Match type values mirror the search types; MatchTypeMixed marks a hit
// found by both paths.
const (
	MatchTypeKeyword  MatchType = "keyword"
	MatchTypeSemantic MatchType = "semantic"
	MatchTypeMixed    MatchType = "mixed"
)

// SearchOptions configures a search call.
type SearchOptions struct {
	// DocumentTypes restricts results to the given instrument types.
	// Empty means no restriction.
	DocumentTypes []DocumentType

	// Type selects the retrieval paths. Unrecognised values fall back
	// to keyword search. Defaults to mixed.
	Type SearchType

	// IncludeRepealed retains mülga articles in the result set.
	IncludeRepealed bool
}

// SearchResult represents a single ranked hit. It is transient and never
// persisted.
//
// Score is a non-negative real number; higher is more relevant. Scores are
// comparable only within one search invocation: the keyword path reports the
// FTS engine's rank and the semantic path reports cosine similarity, and the
// two scales are fused without calibration.
type SearchResult struct {
	// ArticleID is the matched article.
	ArticleID int64

	// DocumentID is the owning document.
	DocumentID int64

	// ArticleNumber is the article number as printed, may be empty.
	ArticleNumber string

	// Title is the article heading, may be empty.
	Title string

	// Content is the raw article text.
	Content string

	// DocumentTitle, LawNumber and DocumentType describe the parent
	// instrument.
	DocumentTitle string
	LawNumber     string
	DocumentType  DocumentType

	// IsRepealed and IsAmended carry the article's status flags.
	IsRepealed bool
	IsAmended  bool

	// Score is the relevance score after weighting and fusion.
	Score float64

	// Match tags which path(s) produced this hit.
	Match MatchType

	// Highlights contains marked-up snippets around matched terms.
	// May be empty.
	Highlights []string
}

// HistoryEntry is one persisted search_history row. Append-only; the search
// core never mutates or deletes entries.
type HistoryEntry struct {
	ID          int64
	Query       string
	QueryType   SearchType
	ResultCount int
	ElapsedMS   float64
	CreatedAt   string
}

// HistoryStats aggregates search_history for the stats surface.
type HistoryStats struct {
	TotalSearches int
	AvgElapsedMS  float64
	MinElapsedMS  float64
	MaxElapsedMS  float64
	TypeCounts    map[SearchType]int
}

// EngineStats reports the search engine's runtime state.
type EngineStats struct {
	SemanticEnabled bool
	IndexSize       int
	CacheSize       int
	History         HistoryStats
}
