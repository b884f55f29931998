package uregex

import (
	"strings"
	"time"

	mt "github.com/coregx/uregex/matcher"
	"github.com/coregx/uregex/subst"
)

// Matcher drives a single matching session over one piece of input text. A
// Matcher is not safe for concurrent use by multiple goroutines; create one
// Matcher per goroutine from a shared Pattern instead.
type Matcher struct {
	pat *Pattern
	m   *mt.Matcher

	timeLimitMillis int
	stackLimit      int
	matchCallback   func() bool
	findCallback    func(pos int) bool
}

func newMatcher(p *Pattern, input string) *Matcher {
	return &Matcher{pat: p, m: mt.New(p.compiled, input)}
}

// Reset rebinds the matcher to new input, clearing any previous match and
// restoring the default region and bounds.
func (m *Matcher) Reset(input string) *Matcher {
	m.m.Reset(input)
	return m
}

// Matches reports whether the pattern matches the whole region.
func (m *Matcher) Matches() (bool, error) {
	m.applyLimits()
	return m.m.Matches()
}

// MatchesAt resets the region start to pos and reports whether the pattern
// matches the whole region from there.
func (m *Matcher) MatchesAt(pos int) (bool, error) {
	if err := m.m.Region(pos, m.m.RegionEnd()); err != nil {
		return false, err
	}
	return m.Matches()
}

// LookingAt reports whether the pattern matches a prefix of the region.
func (m *Matcher) LookingAt() (bool, error) {
	m.applyLimits()
	return m.m.LookingAt()
}

// Find searches for the next match, resuming after the previous one.
func (m *Matcher) Find() (bool, error) {
	m.applyLimits()
	return m.m.Find()
}

// FindFrom searches for the next match starting no earlier than from.
func (m *Matcher) FindFrom(from int) (bool, error) {
	m.applyLimits()
	return m.m.FindFrom(from)
}

// Start returns the start offset of the whole match (group 0), or -1 if
// there is no current match.
func (m *Matcher) Start() int { return m.m.Start() }

// End returns the end offset of the whole match (group 0).
func (m *Matcher) End() int { return m.m.End() }

// StartGroup returns the start offset of capture group g, or -1 if it did
// not participate in the match.
func (m *Matcher) StartGroup(g int) (int, error) { return m.m.StartGroup(g) }

// EndGroup returns the end offset of capture group g.
func (m *Matcher) EndGroup(g int) (int, error) { return m.m.EndGroup(g) }

// Group returns the text captured by group g and whether it participated.
func (m *Matcher) Group(g int) (string, bool, error) { return m.m.Group(g) }

// GroupByName returns the text captured by a named group.
func (m *Matcher) GroupByName(name string) (string, bool, error) {
	return m.m.GroupByName(name)
}

// GroupCount returns the number of capture groups, excluding group 0.
func (m *Matcher) GroupCount() int { return m.m.GroupCount() }

// Region restricts the matcher to [start, end) of the input.
func (m *Matcher) Region(start, end int) error { return m.m.Region(start, end) }

// RegionStart returns the current region's start offset.
func (m *Matcher) RegionStart() int { return m.m.RegionStart() }

// RegionEnd returns the current region's end offset.
func (m *Matcher) RegionEnd() int { return m.m.RegionEnd() }

// UseAnchoringBounds controls whether ^, $, \A, \Z, \z treat the region
// bounds as input boundaries. Default true.
func (m *Matcher) UseAnchoringBounds(b bool) *Matcher {
	m.m.UseAnchoringBounds(b)
	return m
}

// UseTransparentBounds controls whether look-around may inspect text
// outside the region. Default false.
func (m *Matcher) UseTransparentBounds(b bool) *Matcher {
	m.m.UseTransparentBounds(b)
	return m
}

// HitEnd reports whether the last match attempt needed to inspect the last
// character of input.
func (m *Matcher) HitEnd() bool { return m.m.HitEnd() }

// RequireEnd reports whether the last successful match would be
// invalidated by appending more input.
func (m *Matcher) RequireEnd() bool { return m.m.RequireEnd() }

// Pattern returns the Pattern this matcher was created from.
func (m *Matcher) Pattern() *Pattern { return m.pat }

// SetTimeLimit bounds how long a single match attempt (Matches, LookingAt,
// Find) may run, in milliseconds. Zero disables the limit (the default).
// Negative values are rejected with an ILLEGAL_ARGUMENT RuntimeError.
func (m *Matcher) SetTimeLimit(millis int) error {
	if millis < 0 {
		return illegalArgumentError("time limit must be >= 0")
	}
	m.timeLimitMillis = millis
	return nil
}

// TimeLimit returns the current time limit in milliseconds, or 0 if unset.
func (m *Matcher) TimeLimit() int { return m.timeLimitMillis }

// SetStackLimit bounds the matcher's recursion depth. Zero selects the
// default. Negative values are rejected with an ILLEGAL_ARGUMENT
// RuntimeError.
func (m *Matcher) SetStackLimit(depth int) error {
	if depth < 0 {
		return illegalArgumentError("stack limit must be >= 0")
	}
	m.stackLimit = depth
	return nil
}

// StackLimit returns the current recursion depth limit, or 0 if unset.
func (m *Matcher) StackLimit() int { return m.stackLimit }

// SetMatchCallback installs a callback polled periodically during a match
// attempt; returning false aborts the search with a STOPPED_BY_CALLER
// error. A nil callback removes any previously installed one.
func (m *Matcher) SetMatchCallback(cb func() bool) { m.matchCallback = cb }

// MatchCallback returns the currently installed match callback, or nil.
func (m *Matcher) MatchCallback() func() bool { return m.matchCallback }

// SetFindProgressCallback installs a callback invoked with each candidate
// start position Find rejects while scanning for the next match; useful
// for surfacing progress on a Find over a long input with a pathological
// pattern. Returning false aborts the search the same way a match callback
// does.
func (m *Matcher) SetFindProgressCallback(cb func(pos int) bool) { m.findCallback = cb }

// FindProgressCallback returns the currently installed find-progress
// callback, or nil.
func (m *Matcher) FindProgressCallback() func(pos int) bool { return m.findCallback }

func (m *Matcher) applyLimits() {
	limits := mt.Limits{}
	if m.stackLimit > 0 {
		limits.MaxStackDepth = m.stackLimit
	}
	if m.timeLimitMillis > 0 {
		limits.Deadline = time.Now().Add(time.Duration(m.timeLimitMillis) * time.Millisecond)
	}
	if m.matchCallback != nil {
		limits.Callback = m.matchCallback
	}
	if m.findCallback != nil {
		limits.FindProgress = m.findCallback
	}
	m.m.SetLimits(limits)
}

// ReplaceFirst expands repl against only the matcher's next match, leaving
// the rest of the input untouched. repl uses $n / ${name} group references,
// as ReplaceAll documents.
func (m *Matcher) ReplaceFirst(repl string) (string, error) {
	tmpl, cerr := m.pat.parseTemplate(repl)
	if cerr != nil {
		return "", cerr
	}
	return subst.ReplaceFirst(m.m, tmpl)
}

// ReplaceAll expands repl against every non-overlapping match the matcher
// finds from its current position onward. repl may reference captured
// groups with $n (e.g. $1, ${name}) and literal text otherwise; a bare $ or
// a digit run naming a group that doesn't exist is copied through as
// literal text.
func (m *Matcher) ReplaceAll(repl string) (string, error) {
	tmpl, cerr := m.pat.parseTemplate(repl)
	if cerr != nil {
		return "", cerr
	}
	return subst.ReplaceAll(m.m, tmpl)
}

// Replacer returns a low-level appendReplacement/appendTail driver over this
// matcher's remaining matches, for callers building output incrementally
// alongside other text rather than replacing the whole string at once.
func (m *Matcher) Replacer() *Replacer {
	return &Replacer{r: subst.NewReplacer(m.m), m: m}
}

// Replacer implements the appendReplacement/appendTail substitution
// protocol: copy text up to each match plus its expansion, then the
// trailing unmatched text.
type Replacer struct {
	r *subst.Replacer
	m *Matcher
}

// AppendReplacement expands repl against the matcher's current match and
// appends the unmatched text before it plus the expansion to dest.
func (rp *Replacer) AppendReplacement(dest *strings.Builder, repl string) error {
	tmpl, cerr := rp.m.pat.parseTemplate(repl)
	if cerr != nil {
		return cerr
	}
	return rp.r.AppendReplacement(dest, tmpl)
}

// AppendTail appends the input remaining after the last AppendReplacement
// call to dest, completing a replacement pass.
func (rp *Replacer) AppendTail(dest *strings.Builder) {
	rp.r.AppendTail(dest)
}
