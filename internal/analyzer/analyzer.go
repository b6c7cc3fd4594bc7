package analyzer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

// turkishFolder maps the six Turkish-specific letters (both cases) to
// their ASCII equivalents.
var turkishFolder = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	"Ç", "C", "Ğ", "G", "İ", "I", "Ö", "O", "Ş", "S", "Ü", "U",
)

// Analyzer performs Turkish-aware analysis of legal text. All methods are
// pure functions over the receiver's precompiled state; an Analyzer is safe
// for concurrent use.
type Analyzer struct {
	cleanupChars   *regexp.Regexp
	whitespace     *regexp.Regexp
	punctuation    *regexp.Regexp
	sentenceSplit  *regexp.Regexp
	articleNumbers *regexp.Regexp
	lawNumbers     *regexp.Regexp
	lawReferences  *regexp.Regexp

	stopWords map[string]struct{}
}

// New constructs an Analyzer with all patterns compiled.
func New() *Analyzer {
	// Stop words are matched against ASCII-folded tokens, so the set
	// carries both spellings.
	stops := make(map[string]struct{}, 2*len(stopWords))
	for w := range stopWords {
		stops[w] = struct{}{}
		stops[turkishFolder.Replace(w)] = struct{}{}
	}

	return &Analyzer{
		cleanupChars:   regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?\-()"'/%]`),
		whitespace:     regexp.MustCompile(`\s+`),
		punctuation:    regexp.MustCompile(`[^\p{L}\p{N}_\s]`),
		sentenceSplit:  regexp.MustCompile(`[.!?]+`),
		articleNumbers: regexp.MustCompile(`(?i)\b(?:madde|md\.?)\s*:?\s*(\d+(?:/\w+)?)\b`),
		lawNumbers:     regexp.MustCompile(`(?i)\b(\d{4})\s*sayılı\s*(?:kanun|yasa)\b`),
		lawReferences:  regexp.MustCompile(`(?i)\b(\d{1,4})\s*sayılı\s*(.+?)\s*(?:kanun|yasa|tüzük|yönetmelik)(?:u|un|ı|in)?\b`),
		stopWords:      stops,
	}
}

// Clean produces the display form of raw legal text: Unicode compatibility
// normalisation, a legal-text-safe character allowlist, and whitespace
// collapsing. Deterministic; empty input yields empty output.
func (a *Analyzer) Clean(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)
	text = a.cleanupChars.ReplaceAllString(text, " ")
	text = a.whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Normalize produces the ASCII-folded search form: Turkish letters folded,
// lowercased, punctuation stripped, whitespace collapsed. Idempotent.
func (a *Analyzer) Normalize(text string) string {
	text = turkishFolder.Replace(text)
	text = strings.ToLower(text)
	text = a.punctuation.ReplaceAllString(text, " ")
	text = a.whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractKeywords tokenises normalised text and returns up to maxCount
// alphabetic, non-stop-word tokens of at least minLength runes, ordered by
// descending frequency. Ties keep first-occurrence order.
func (a *Analyzer) ExtractKeywords(text string, minLength, maxCount int) []string {
	words := strings.Fields(a.Normalize(text))

	type wordStat struct {
		word  string
		count int
		first int
	}
	stats := make(map[string]*wordStat)
	order := make([]*wordStat, 0)

	for i, word := range words {
		if len([]rune(word)) < minLength {
			continue
		}
		if _, stop := a.stopWords[word]; stop {
			continue
		}
		if !isAlpha(word) {
			continue
		}
		if s, ok := stats[word]; ok {
			s.count++
			continue
		}
		s := &wordStat{word: word, count: 1, first: i}
		stats[word] = s
		order = append(order, s)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > maxCount {
		order = order[:maxCount]
	}
	keywords := make([]string, len(order))
	for i, s := range order {
		keywords[i] = s.word
	}
	return keywords
}

// ExtractLegalTerms returns the dictionary terms present in the lowercased
// text, deduplicated, in dictionary order.
func (a *Analyzer) ExtractLegalTerms(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range legalTerms {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// ExtractArticleNumbers captures number tokens from "madde 12" and
// "md. 12/A" style references, deduplicated.
func (a *Analyzer) ExtractArticleNumbers(text string) []string {
	return captureUnique(a.articleNumbers.FindAllStringSubmatch(text, -1), func(m []string) string {
		return m[1]
	})
}

// ExtractLawReferences captures "1234 sayılı ... kanunu" references,
// normalised to "{number} sayılı {name}" (or "{number} sayılı kanun" for
// the bare numeric form), deduplicated.
func (a *Analyzer) ExtractLawReferences(text string) []string {
	refs := captureUnique(a.lawReferences.FindAllStringSubmatch(text, -1), func(m []string) string {
		return m[1] + " sayılı " + strings.TrimSpace(m[2])
	})
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		seen[r] = struct{}{}
	}
	for _, m := range a.lawNumbers.FindAllStringSubmatch(text, -1) {
		ref := m[1] + " sayılı kanun"
		if _, ok := seen[ref]; !ok {
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs
}

// Analyze runs the full pipeline. Analysis is best-effort: empty or
// whitespace-only input yields a result with only OriginalText set.
func (a *Analyzer) Analyze(text string) domain.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return domain.AnalysisResult{OriginalText: text}
	}

	clean := a.Clean(text)
	normalized := a.Normalize(clean)

	wordCount := a.countWords(normalized)
	sentenceCount := a.countSentences(clean)

	return domain.AnalysisResult{
		OriginalText:     text,
		CleanText:        clean,
		NormalizedText:   normalized,
		Keywords:         a.ExtractKeywords(normalized, 3, 50),
		LegalTerms:       a.ExtractLegalTerms(clean),
		ArticleNumbers:   a.ExtractArticleNumbers(text),
		LawReferences:    a.ExtractLawReferences(text),
		WordCount:        wordCount,
		SentenceCount:    sentenceCount,
		ReadabilityScore: readability(wordCount, sentenceCount),
	}
}

// PrepareForFTS builds the over-inclusive indexable field for an article:
// clean text, ASCII-folded text, the top keywords and any legal terms,
// concatenated. Indexing both spellings lets one FTS query match either.
func (a *Analyzer) PrepareForFTS(text string) string {
	analysis := a.Analyze(text)

	var b strings.Builder
	b.WriteString(analysis.CleanText)
	b.WriteString(" ")
	b.WriteString(analysis.NormalizedText)

	keywords := analysis.Keywords
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	for _, kw := range keywords {
		b.WriteString(" ")
		b.WriteString(kw)
	}
	for _, term := range analysis.LegalTerms {
		b.WriteString(" ")
		b.WriteString(term)
	}
	return strings.TrimSpace(b.String())
}

// SearchTerms widens a query for highlight matching: the original query,
// its normalised form when different, and a per-word-normalised join for
// multi-word queries. Deduplicated, original first.
func (a *Analyzer) SearchTerms(query string) []string {
	terms := []string{query}

	if normalized := a.Normalize(query); normalized != query {
		terms = append(terms, normalized)
	}

	if words := strings.Fields(query); len(words) > 1 {
		folded := make([]string, len(words))
		for i, w := range words {
			folded[i] = a.Normalize(w)
		}
		terms = append(terms, strings.Join(folded, " "))
	}

	seen := make(map[string]struct{}, len(terms))
	unique := terms[:0]
	for _, t := range terms {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			unique = append(unique, t)
		}
	}
	return unique
}

func (a *Analyzer) countWords(normalized string) int {
	count := 0
	for _, w := range strings.Fields(normalized) {
		if isAlpha(w) {
			count++
		}
	}
	return count
}

func (a *Analyzer) countSentences(clean string) int {
	count := 0
	for _, s := range a.sentenceSplit.Split(clean, -1) {
		if strings.TrimSpace(s) != "" {
			count++
		}
	}
	return count
}

// readability scores average sentence length on a 0-100 scale. The ideal
// band is 10-15 words per sentence; the score decays linearly outside it.
func readability(wordCount, sentenceCount int) float64 {
	if sentenceCount == 0 {
		return 0
	}
	avg := float64(wordCount) / float64(sentenceCount)
	if avg <= 15 {
		score := (15 - avg + 10) * 5
		if score > 100 {
			return 100
		}
		return score
	}
	score := 100 - (avg-15)*2
	if score < 0 {
		return 0
	}
	return score
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func captureUnique(matches [][]string, pick func([]string) string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range matches {
		v := pick(m)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
