// Package prefilter provides fast candidate filtering for regex search:
// scanning a haystack for a pattern's mandatory leading literal(s) with
// SIMD-accelerated primitives, so find can skip straight to positions worth
// running the full backtracker against instead of attempting every offset.
package prefilter

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
//
// The prefilter scans the haystack for literals extracted from the regex
// pattern. When a literal is found, that position is returned as a
// candidate; the regex engine then verifies whether a full match exists
// there.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or
	// after start, or -1 if no candidate is found.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a prefilter match guarantees a full regex
	// match, letting the caller skip verification.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete
	// is true, so callers can compute match bounds without re-running the
	// engine. It is 0 when IsComplete is false.
	LiteralLen() int

	// HeapBytes returns the heap memory this prefilter holds, for profiling.
	HeapBytes() int
}

// MatchFinder is an optional interface for prefilters that can return the
// matched range directly, letting callers skip backtracker verification
// entirely for patterns that are wholly one of several literal branches.
type MatchFinder interface {
	// FindMatch returns the start and end positions of the first match, or
	// (-1, -1) if none is found at or after start.
	FindMatch(haystack []byte, start int) (start2, end int)
}
