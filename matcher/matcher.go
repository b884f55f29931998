// Package matcher executes a compiled *program.Pattern against input text.
// Matcher holds all mutable search state — captures, region bounds, limits —
// so a single Pattern may back any number of Matchers, including across
// goroutines, as long as no one Matcher is driven concurrently with itself.
// The execution strategy mirrors the teacher's BoundedBacktracker: a
// recursive match(pc, pos) dispatch over the program, one case per opcode,
// trying alternatives depth-first and returning on the first success.
package matcher

import (
	"github.com/coregx/uregex/prefilter"
	"github.com/coregx/uregex/program"
	"github.com/coregx/uregex/ucode"
)

// Matcher is a stateful regex search over one piece of input text.
type Matcher struct {
	pat *program.Pattern
	in  ucode.Input

	regionStart int
	regionEnd   int

	anchoringBounds   bool
	transparentBounds bool

	limits Limits

	caps  []int32
	marks []int32

	lookBehindTarget []int32

	pf prefilter.Prefilter // built once from pat.InitialString or pat.AltLiterals, nil if none apply

	prevMatchEnd int // -1 if Find has not yet produced a match
	haveMatch    bool

	stopPos int

	steps         int
	depth         int
	stackOverflow bool
	timedOut      bool
	stoppedByUser bool

	hitEnd     bool
	requireEnd bool
}

// New creates a Matcher for pat over input. The region is initially the
// whole input, with anchoring bounds on and transparent bounds off, matching
// ICU's defaults.
func New(pat *program.Pattern, input string) *Matcher {
	m := &Matcher{pat: pat}
	switch {
	case pat.StaticType == program.StartString && pat.InitialString != "":
		m.pf = prefilter.BuildLiteral(pat.InitialString)
	case len(pat.AltLiterals) >= 2:
		if pf, ok := prefilter.BuildAlternation(pat.AltLiterals); ok {
			m.pf = pf
		}
	}
	m.Reset(input)
	return m
}

// Reset rebinds the matcher to new input, restoring default region and
// bounds settings and clearing any previous match.
func (m *Matcher) Reset(input string) {
	m.in = ucode.NewInputString(input)
	m.regionStart = 0
	m.regionEnd = m.in.Len()
	m.anchoringBounds = true
	m.transparentBounds = false
	m.prevMatchEnd = -1
	m.haveMatch = false
	m.hitEnd = false
	m.requireEnd = false
	m.ensureScratch()
}

func (m *Matcher) ensureScratch() {
	n := 2 * m.pat.NumCaptures
	if cap(m.caps) < n {
		m.caps = make([]int32, n)
	}
	m.caps = m.caps[:n]
	if cap(m.marks) < m.pat.NumLoopMarks {
		m.marks = make([]int32, m.pat.NumLoopMarks)
	}
	m.marks = m.marks[:m.pat.NumLoopMarks]
	if cap(m.lookBehindTarget) < len(m.pat.Looks) {
		m.lookBehindTarget = make([]int32, len(m.pat.Looks))
	}
	m.lookBehindTarget = m.lookBehindTarget[:len(m.pat.Looks)]
	for i := range m.lookBehindTarget {
		m.lookBehindTarget[i] = -1
	}
}

// Pattern returns the compiled pattern driving this matcher.
func (m *Matcher) Pattern() *program.Pattern { return m.pat }

// Text returns the input substring in [start, end), for callers (such as the
// substitution package) that need the literal text between or around
// matches.
func (m *Matcher) Text(start, end int) string { return m.in.Slice(start, end) }

// InputLen returns the length in bytes of the input currently bound to the
// matcher.
func (m *Matcher) InputLen() int { return m.in.Len() }

// SetLimits installs resource limits for subsequent match attempts.
func (m *Matcher) SetLimits(l Limits) { m.limits = l }

// Region restricts the matcher to [start, end) of the input. Returns a
// RuntimeError with kind IndexOutOfRange if the bounds are invalid.
func (m *Matcher) Region(start, end int) error {
	if start < 0 || end > m.in.Len() || start > end {
		return program.NewRuntimeError(program.IndexOutOfRange, "region bounds out of range")
	}
	m.regionStart, m.regionEnd = start, end
	m.prevMatchEnd = -1
	m.haveMatch = false
	return nil
}

// RegionStart returns the current region's start offset.
func (m *Matcher) RegionStart() int { return m.regionStart }

// RegionEnd returns the current region's end offset.
func (m *Matcher) RegionEnd() int { return m.regionEnd }

// UseAnchoringBounds controls whether ^, $, \A, \Z, and \z treat the region
// bounds as input boundaries. Default true.
func (m *Matcher) UseAnchoringBounds(b bool) { m.anchoringBounds = b }

// UseTransparentBounds controls whether look-around assertions may inspect
// text outside the region. Default false (opaque bounds).
func (m *Matcher) UseTransparentBounds(b bool) { m.transparentBounds = b }

// HitEnd reports whether the last match attempt needed to inspect the last
// character of input, meaning appending more input could change the result.
func (m *Matcher) HitEnd() bool { return m.hitEnd }

// RequireEnd reports whether the last successful match would be invalidated
// by appending more input (e.g. it ended at an EOI-style assertion).
func (m *Matcher) RequireEnd() bool { return m.requireEnd }

// GroupCount returns the number of capture groups, excluding group 0.
func (m *Matcher) GroupCount() int { return m.pat.NumCaptures - 1 }

// SubexpNames returns the declared name of each group, indexed by group
// number ("" for unnamed groups, including group 0).
func (m *Matcher) SubexpNames() []string { return m.pat.SubexpNames() }

func (m *Matcher) inputStart() int {
	if m.anchoringBounds {
		return m.regionStart
	}
	return 0
}

func (m *Matcher) inputEnd() int {
	if m.anchoringBounds {
		return m.regionEnd
	}
	return m.in.Len()
}

// Start returns the start offset of the whole match (group 0). It panics-free
// returns -1 if there is no current match.
func (m *Matcher) Start() int { return m.groupStart(0) }

// End returns the end offset of the whole match (group 0).
func (m *Matcher) End() int { return m.groupEnd(0) }

// StartGroup returns the start offset of capture group g, or -1 if it did
// not participate, and an error if g is out of range.
func (m *Matcher) StartGroup(g int) (int, error) {
	if g < 0 || g >= m.pat.NumCaptures {
		return -1, program.NewRuntimeError(program.IndexOutOfRange, "no such group")
	}
	return m.groupStart(g), nil
}

// EndGroup returns the end offset of capture group g, or -1 if it did not
// participate.
func (m *Matcher) EndGroup(g int) (int, error) {
	if g < 0 || g >= m.pat.NumCaptures {
		return -1, program.NewRuntimeError(program.IndexOutOfRange, "no such group")
	}
	return m.groupEnd(g), nil
}

// Group returns the text captured by group g and whether it participated in
// the match.
func (m *Matcher) Group(g int) (string, bool, error) {
	if g < 0 || g >= m.pat.NumCaptures {
		return "", false, program.NewRuntimeError(program.IndexOutOfRange, "no such group")
	}
	s, e := m.groupStart(g), m.groupEnd(g)
	if s < 0 || e < 0 {
		return "", false, nil
	}
	return m.in.Slice(s, e), true, nil
}

// GroupByName returns the text captured by a named group.
func (m *Matcher) GroupByName(name string) (string, bool, error) {
	g, ok := m.pat.GroupNumberFromName(name)
	if !ok {
		return "", false, program.NewRuntimeError(program.IllegalArgument, "no group named "+name)
	}
	return m.Group(g)
}

func (m *Matcher) groupStart(g int) int {
	if !m.haveMatch || 2*g >= len(m.caps) {
		return -1
	}
	return int(m.caps[2*g])
}

func (m *Matcher) groupEnd(g int) int {
	if !m.haveMatch || 2*g+1 >= len(m.caps) {
		return -1
	}
	return int(m.caps[2*g+1])
}
