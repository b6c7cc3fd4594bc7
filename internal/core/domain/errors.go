package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuery indicates an empty or malformed search query.
	// Rejected before any sub-search dispatch.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrDuplicateDocument indicates a document with the same content
	// hash has already been ingested.
	ErrDuplicateDocument = errors.New("document already ingested")

	// ErrNoContent indicates no article had enough content to train
	// the semantic index from.
	ErrNoContent = errors.New("no indexable content")

	// ErrIndexUnavailable indicates the semantic index is not loaded.
	// Semantic search contributes nothing until a rebuild succeeds.
	ErrIndexUnavailable = errors.New("semantic index unavailable")
)
