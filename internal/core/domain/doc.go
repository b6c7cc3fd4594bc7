// Package domain defines the core business entities for mevzuat-cli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A legal instrument (law, regulation, circular, ...)
//   - Article: An addressable unit of legal text within a document
//   - SearchResult: A single ranked hit from the search engine
//   - AnalysisResult: Structured facts extracted from Turkish legal text
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
