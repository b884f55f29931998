package subst

import (
	"strings"

	"github.com/coregx/uregex/matcher"
	"github.com/coregx/uregex/program"
)

// Target is the subset of *matcher.Matcher the Replacer drives. Matching it
// with an interface keeps this package from depending on matcher internals
// beyond its public surface.
type Target interface {
	Source
	Start() int
	End() int
	Find() (bool, error)
	Text(start, end int) string
	InputLen() int
}

var _ Target = (*matcher.Matcher)(nil)

// Replacer implements appendReplacement/appendTail: it walks a Matcher's
// successive Find results, copying the unmatched text before each match
// plus the match's expanded replacement, and finally the unmatched tail.
// Unlike Find itself, a Replacer is single-use bookkeeping around one
// left-to-right pass; construct a fresh one per pass.
type Replacer struct {
	m         Target
	appendPos int
}

// NewReplacer returns a Replacer over m, with the append position starting
// at 0. m should not yet have advanced past any text the caller wants
// copied into the output.
func NewReplacer(m Target) *Replacer {
	return &Replacer{m: m}
}

// AppendReplacement copies the input between the append position and the
// start of m's current match into dest, followed by tmpl expanded against
// that match, and advances the append position to the match's end. It
// fails with INVALID_STATE if m has no current match.
func (r *Replacer) AppendReplacement(dest *strings.Builder, tmpl *Template) error {
	start := r.m.Start()
	if start < 0 {
		return program.NewRuntimeError(program.InvalidState, "appendReplacement: no current match")
	}
	dest.WriteString(r.m.Text(r.appendPos, start))
	expanded, err := tmpl.Expand(r.m)
	if err != nil {
		return err
	}
	dest.WriteString(expanded)
	r.appendPos = r.m.End()
	return nil
}

// AppendTail copies the input remaining after the append position into
// dest, completing a replacement pass.
func (r *Replacer) AppendTail(dest *strings.Builder) {
	dest.WriteString(r.m.Text(r.appendPos, r.m.InputLen()))
}

// ReplaceAll expands tmpl against every non-overlapping match m finds from
// its current position onward, returning the fully substituted text. Pass a
// Matcher positioned at the start of the region to replace the whole thing.
func ReplaceAll(m Target, tmpl *Template) (string, error) {
	r := NewReplacer(m)
	var b strings.Builder
	for {
		ok, err := m.Find()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if err := r.AppendReplacement(&b, tmpl); err != nil {
			return "", err
		}
	}
	r.AppendTail(&b)
	return b.String(), nil
}

// ReplaceFirst expands tmpl against only the first match m finds from its
// current position onward, leaving the rest of the input untouched.
func ReplaceFirst(m Target, tmpl *Template) (string, error) {
	ok, err := m.Find()
	if err != nil {
		return "", err
	}
	if !ok {
		return m.Text(0, m.InputLen()), nil
	}
	r := NewReplacer(m)
	var b strings.Builder
	if err := r.AppendReplacement(&b, tmpl); err != nil {
		return "", err
	}
	r.AppendTail(&b)
	return b.String(), nil
}
