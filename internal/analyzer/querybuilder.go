package analyzer

import (
	"strings"

	"github.com/mevzuat-labs/mevzuat-cli/internal/logger"
)

// QueryMode selects the FTS5 query construction strategy.
type QueryMode string

// Available query modes.
const (
	// QueryModeExact wraps the literal query in quotes.
	QueryModeExact QueryMode = "exact"

	// QueryModePhrase is equivalent to exact, kept distinct so the two
	// can diverge later.
	QueryModePhrase QueryMode = "phrase"

	// QueryModeSimple AND-joins prefix tokens.
	QueryModeSimple QueryMode = "simple"

	// QueryModeComprehensive OR-joins prefix tokens over the original
	// words, their folded forms and detected legal terms. The default.
	QueryModeComprehensive QueryMode = "comprehensive"
)

// QueryBuilder turns a free-text user query into an FTS5 MATCH string.
//
// The comprehensive strategy favours recall: any token hit counts as a
// match, and precision is pushed to the scoring stage. Short legal queries
// (a bare law number, a single term) benefit most from this.
type QueryBuilder struct {
	analyzer *Analyzer
}

// NewQueryBuilder constructs a QueryBuilder on top of an Analyzer.
func NewQueryBuilder(a *Analyzer) *QueryBuilder {
	return &QueryBuilder{analyzer: a}
}

// Build constructs the FTS5 query string for the given mode. Unknown modes
// degrade to the simple strategy.
func (b *QueryBuilder) Build(query string, mode QueryMode) string {
	if strings.TrimSpace(query) == "" {
		return `""`
	}

	switch mode {
	case QueryModeExact, QueryModePhrase:
		return `"` + query + `"`
	case QueryModeComprehensive:
		return b.buildComprehensive(query)
	case QueryModeSimple:
		return b.buildSimple(query)
	default:
		logger.Debug("Unknown query mode %q, using simple strategy", mode)
		return b.buildSimple(query)
	}
}

// buildSimple produces a prefix token for a single word, or an AND-join of
// prefix tokens for multi-word queries, dropping words of two characters
// or fewer.
func (b *QueryBuilder) buildSimple(query string) string {
	words := strings.Fields(query)
	if len(words) == 1 {
		return `"` + words[0] + `"*`
	}

	parts := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) > 2 {
			parts = append(parts, `"`+w+`"*`)
		}
	}
	return strings.Join(parts, " AND ")
}

// buildComprehensive emits prefix tokens for the original words, adds
// folded alternatives not already covered, and appends exact tokens for up
// to three detected legal terms absent from the literal query. Tokens are
// OR-joined.
func (b *QueryBuilder) buildComprehensive(query string) string {
	analysis := b.analyzer.Analyze(query)

	var parts []string
	covered := make(map[string]struct{})

	for _, w := range strings.Fields(analysis.OriginalText) {
		if len([]rune(w)) <= 2 {
			continue
		}
		if _, ok := covered[w]; ok {
			continue
		}
		parts = append(parts, `"`+w+`"*`)
		covered[w] = struct{}{}
	}

	for _, w := range strings.Fields(analysis.NormalizedText) {
		if len([]rune(w)) <= 2 {
			continue
		}
		if _, ok := covered[w]; ok {
			continue
		}
		parts = append(parts, `"`+w+`"*`)
		covered[w] = struct{}{}
	}

	queryLower := strings.ToLower(analysis.OriginalText)
	added := 0
	for _, term := range analysis.LegalTerms {
		if added >= 3 {
			break
		}
		if strings.Contains(queryLower, term) {
			continue
		}
		parts = append(parts, `"`+term+`"`)
		added++
	}

	if len(parts) == 0 {
		return `"` + analysis.OriginalText + `"*`
	}
	return strings.Join(parts, " OR ")
}
