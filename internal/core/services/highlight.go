package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mevzuat-labs/mevzuat-cli/internal/analyzer"
)

const (
	maxHighlights      = 3
	maxSemanticSnips   = 2
	highlightRadius    = 60
	fallbackRadius     = 50
	minHighlightWord   = 3
	minSemanticSentLen = 20
)

// highlighter produces marked-up snippets for search results. Keyword
// snippets locate query words in the article body; semantic snippets are a
// plain content preview, not an explanation of the similarity match.
type highlighter struct {
	analyzer *analyzer.Analyzer
}

func newHighlighter(a *analyzer.Analyzer) *highlighter {
	return &highlighter{analyzer: a}
}

// Keyword returns up to three snippets around occurrences of the query
// words, each occurrence wrapped in <mark> tags. Matching is
// case-insensitive and accepts suffixed forms, so "kanun" also marks
// "kanunu". Both the literal words and their diacritic-folded forms are
// tried. Any regexp failure degrades to a literal single-pass scan.
func (h *highlighter) Keyword(content, query string) []string {
	snippets, err := h.keywordSnippets(content, query)
	if err != nil {
		return h.fallbackSnippets(content, query)
	}
	return snippets
}

func (h *highlighter) keywordSnippets(content, query string) ([]string, error) {
	var snippets []string
	seen := make(map[string]struct{})

	for _, term := range h.analyzer.SearchTerms(query) {
		for _, word := range strings.Fields(term) {
			if utf8.RuneCountInString(word) < minHighlightWord {
				continue
			}
			variants := []string{word}
			if folded := h.analyzer.Normalize(word); folded != "" && folded != strings.ToLower(word) {
				variants = append(variants, folded)
			}
			for _, variant := range variants {
				re, err := compileWordPattern(variant)
				if err != nil {
					return nil, err
				}
				for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
					if len(snippets) >= maxHighlights {
						return snippets, nil
					}
					snippet := markSnippet(content, loc[2], loc[3], highlightRadius)
					if _, dup := seen[snippet]; dup {
						continue
					}
					seen[snippet] = struct{}{}
					snippets = append(snippets, snippet)
				}
			}
		}
	}
	return snippets, nil
}

// compileWordPattern matches word at a left word boundary and extends over
// any trailing word runes. RE2's \b is ASCII-only, so the boundary is
// expressed with explicit Unicode classes and a capture group.
func compileWordPattern(word string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(word) + `[\p{L}\p{N}_]*)`)
}

// fallbackSnippets is the degraded path: literal case-insensitive scan of
// the raw query words with a tighter window.
func (h *highlighter) fallbackSnippets(content, query string) []string {
	var snippets []string
	seen := make(map[string]struct{})

	lowered := strings.ToLower(content)
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) < minHighlightWord {
			continue
		}
		needle := strings.ToLower(word)
		offset := 0
		for {
			idx := strings.Index(lowered[offset:], needle)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(needle)
			offset = end
			if len(snippets) >= maxHighlights {
				return snippets
			}
			snippet := markSnippet(content, start, end, fallbackRadius)
			if _, dup := seen[snippet]; dup {
				continue
			}
			seen[snippet] = struct{}{}
			snippets = append(snippets, snippet)
		}
	}
	return snippets
}

// Semantic returns the first two substantial sentences of the content as a
// preview. Splitting is on periods only.
func (h *highlighter) Semantic(content string) []string {
	var snippets []string
	for _, sentence := range strings.Split(content, ".") {
		trimmed := strings.TrimSpace(sentence)
		if utf8.RuneCountInString(trimmed) <= minSemanticSentLen {
			continue
		}
		snippets = append(snippets, trimmed)
		if len(snippets) >= maxSemanticSnips {
			break
		}
	}
	return snippets
}

// markSnippet extracts a window of radius bytes around [start, end) and
// wraps the match in <mark> tags. Window edges are pulled back to rune
// boundaries so multi-byte Turkish characters are never split.
func markSnippet(content string, start, end, radius int) string {
	ws := start - radius
	if ws < 0 {
		ws = 0
	}
	we := end + radius
	if we > len(content) {
		we = len(content)
	}
	for ws > 0 && !utf8.RuneStart(content[ws]) {
		ws--
	}
	for we < len(content) && !utf8.RuneStart(content[we]) {
		we++
	}

	var b strings.Builder
	b.WriteString(content[ws:start])
	b.WriteString("<mark>")
	b.WriteString(content[start:end])
	b.WriteString("</mark>")
	b.WriteString(content[end:we])
	return strings.TrimSpace(b.String())
}
