package tfidf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches alphabetic runs of length two or more, Turkish
// letters included. Digits and punctuation never become terms.
var tokenPattern = regexp.MustCompile(`[a-zA-ZçğıöşüÇĞİÖŞÜ]{2,}`)

// VectorizerConfig holds the fitting parameters.
type VectorizerConfig struct {
	// MaxFeatures caps the vocabulary size; the most frequent terms
	// across the corpus win.
	MaxFeatures int `json:"max_features"`

	// MinDF drops terms appearing in fewer documents than this.
	MinDF int `json:"min_df"`

	// MaxDFRatio drops terms appearing in more than this fraction of
	// documents.
	MaxDFRatio float64 `json:"max_df_ratio"`
}

// DefaultVectorizerConfig mirrors the tuning the index ships with.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MaxFeatures: 10000,
		MinDF:       2,
		MaxDFRatio:  0.8,
	}
}

// Vectorizer maps text to L2-normalised TF-IDF vectors over a fitted
// vocabulary of unigrams and bigrams.
type Vectorizer struct {
	Config     VectorizerConfig `json:"config"`
	Vocabulary map[string]int   `json:"vocabulary"`
	IDF        []float64        `json:"idf"`
}

// tokenize lowercases text and returns its unigrams followed by bigrams.
func tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(words)-1)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// Fit builds the vocabulary and IDF weights from a corpus. Terms outside
// the document-frequency band are dropped; when more terms survive than
// MaxFeatures allows, the most frequent ones are kept, ties resolved
// lexicographically so fitting is deterministic.
func Fit(cfg VectorizerConfig, corpus []string) *Vectorizer {
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)

	for _, text := range corpus {
		terms := tokenize(text)
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			termFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	n := len(corpus)
	maxDF := int(cfg.MaxDFRatio * float64(n))

	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < cfg.MinDF {
			continue
		}
		if n > 1 && df > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}

	sort.Slice(candidates, func(i, j int) bool {
		fi, fj := termFreq[candidates[i]], termFreq[candidates[j]]
		if fi != fj {
			return fi > fj
		}
		return candidates[i] < candidates[j]
	})
	if cfg.MaxFeatures > 0 && len(candidates) > cfg.MaxFeatures {
		candidates = candidates[:cfg.MaxFeatures]
	}

	// Column order is lexicographic over the surviving terms.
	sort.Strings(candidates)

	v := &Vectorizer{
		Config:     cfg,
		Vocabulary: make(map[string]int, len(candidates)),
		IDF:        make([]float64, len(candidates)),
	}
	for i, term := range candidates {
		v.Vocabulary[term] = i
		// Smoothed IDF, never zero.
		v.IDF[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}
	return v
}

// Features returns the vocabulary size.
func (v *Vectorizer) Features() int {
	return len(v.IDF)
}

// Transform maps text to its L2-normalised TF-IDF vector. Out-of-vocabulary
// terms contribute nothing; text with no known terms yields a zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, term := range tokenize(text) {
		if col, ok := v.Vocabulary[term]; ok {
			vec[col] += v.IDF[col]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
