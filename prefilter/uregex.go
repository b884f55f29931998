package prefilter

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/uregex/simd"
)

// BuildLiteral returns a Prefilter over a single literal string, backed by
// the SIMD substring search used throughout this package for the
// single-literal case. It never returns nil for a non-empty literal.
func BuildLiteral(s string) Prefilter {
	return &literalPrefilter{needle: []byte(s)}
}

type literalPrefilter struct {
	needle []byte
}

func (p *literalPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		if len(p.needle) == 0 && start <= len(haystack) {
			return start
		}
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *literalPrefilter) IsComplete() bool  { return false }
func (p *literalPrefilter) LiteralLen() int   { return 0 }
func (p *literalPrefilter) HeapBytes() int    { return len(p.needle) }

// BuildAlternation returns a Prefilter over a set of two or more literal
// branch texts (e.g. the "cat|dog|bird" in a leading alternation), backed by
// an Aho-Corasick automaton so Find costs O(n) regardless of branch count
// instead of one memmem pass per branch. ok is false if lits is too short or
// the automaton fails to build, in which case the caller should fall back to
// a plain position scan.
func BuildAlternation(lits []string) (pf Prefilter, ok bool) {
	if len(lits) < 2 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, l := range lits {
		if l == "" {
			return nil, false
		}
		builder.AddPattern([]byte(l))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &ahoCorasickPrefilter{auto: auto, lits: lits}, true
}

type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
	lits []string
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// FindMatch implements MatchFinder: the automaton already knows each
// candidate's matched length, so callers that only need "does the leading
// alternation match here" can skip re-deriving it.
func (p *ahoCorasickPrefilter) FindMatch(haystack []byte, start int) (int, int) {
	if start >= len(haystack) {
		return -1, -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1, -1
	}
	return m.Start, m.End
}

func (p *ahoCorasickPrefilter) IsComplete() bool { return false }
func (p *ahoCorasickPrefilter) LiteralLen() int  { return 0 }

func (p *ahoCorasickPrefilter) HeapBytes() int {
	n := 0
	for _, l := range p.lits {
		n += len(l)
	}
	return n
}
