// Package tfidf implements the SemanticIndex port as a TF-IDF vector
// space over article content.
//
// It is the primary semantic path because it has no heavy runtime
// dependency: no model download, no GPU, no external service. A neural
// embedding implementation can replace it behind the same port.
//
// The fitted model persists as three co-located files under the index
// directory: vectorizer.json (vocabulary, IDF weights, configuration),
// vectors.bin (row-major float64 matrix) and ids.json (row index to
// article id). A load succeeds only when all three are present and
// mutually consistent; anything else counts as "no index" and triggers
// the rebuild-or-disable path instead of an error.
package tfidf
