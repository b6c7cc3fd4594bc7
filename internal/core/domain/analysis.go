package domain

// AnalysisResult holds the structured facts the analyzer extracts from a
// piece of Turkish legal text. Analysis is best-effort: on internal failure
// the analyzer returns a result with only OriginalText set rather than an
// error.
type AnalysisResult struct {
	// OriginalText is the input as given.
	OriginalText string

	// CleanText is the Unicode-normalised, allowlist-filtered form.
	CleanText string

	// NormalizedText is lowercased with Turkish letters folded to ASCII
	// and punctuation stripped. Used for diacritic-insensitive matching.
	NormalizedText string

	// Keywords are the most frequent content words, descending by
	// frequency, ties broken by first occurrence.
	Keywords []string

	// LegalTerms are dictionary terms found in the text, deduplicated.
	LegalTerms []string

	// ArticleNumbers are numbers captured from "madde 12" style
	// references, deduplicated.
	ArticleNumbers []string

	// LawReferences are normalised "1234 sayılı ..." references,
	// deduplicated.
	LawReferences []string

	// WordCount counts alphabetic tokens in the normalised text.
	WordCount int

	// SentenceCount counts sentence terminators in the clean text.
	SentenceCount int

	// ReadabilityScore is a 0-100 heuristic; 10-15 words per sentence
	// scores highest.
	ReadabilityScore float64
}
