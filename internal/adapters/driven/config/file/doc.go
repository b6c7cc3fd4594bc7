// Package file provides the TOML-backed ConfigStore adapter. Tunables for
// the search engine (weights, cache size, result caps, index paths) live in
// a flat dotted-key configuration file on disk.
package file
