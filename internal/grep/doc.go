// Package grep implements a parallel, ignore-aware, regex-capable
// file-content search engine.
//
// Given a pattern and a root directory, Search enumerates candidate files
// with a pool of walker workers, scans each file against the compiled
// matcher, and aggregates per-line matches plus run statistics and error
// diagnostics into a single Result.
//
// The pipeline:
//
//	Search -> Walker (parallel) -> per-worker fileSearcher -> channel -> collector -> Result
//
// Matches from one file form an atomic batch and are never interleaved
// with another file's matches; batches arrive in completion order, not
// filesystem order. A single file's failure never aborts the search.
package grep
