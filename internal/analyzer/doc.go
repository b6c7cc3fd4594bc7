// Package analyzer implements Turkish-aware text analysis for legal
// documents: cleanup, diacritic folding, keyword and legal-term extraction,
// and FTS5 query construction.
//
// Turkish legal text mixes diacritics inconsistently across scanned and
// typed sources. The analyzer therefore produces both a cleaned display
// form and an ASCII-folded form; storing both in the indexable field lets
// a single full-text query match either spelling without transliterating
// the index at query time.
package analyzer
