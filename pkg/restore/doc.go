// Package restore reconstructs the final version of a source file from a
// chronological development log.
//
// A log interleaves one full-text snapshot of the initial code with a series
// of unified-diff style change records. The package parses that grammar,
// applies each change record hunk-by-hunk with exact context verification,
// and either produces the final text or a structured error describing the
// first point of failure. It performs no I/O, which makes it straightforward
// to embed in other tools and tests.
package restore
