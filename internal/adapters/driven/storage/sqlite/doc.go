// Package sqlite implements the ArticleStore and HistoryStore ports on a
// single SQLite database with an FTS5 keyword index.
//
// The articles_fts virtual table uses external content backed by the
// articles table; triggers keep the two in sync. Relevance comes from the
// FTS5 bm25 rank, negated so that higher is better.
package sqlite
