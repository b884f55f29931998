package matcher

import (
	"github.com/coregx/uregex/program"
	"github.com/coregx/uregex/ucode"
)

// Matches reports whether the pattern matches the entire region. It is
// anchored at both ends: a successful result consumes exactly
// [RegionStart, RegionEnd).
func (m *Matcher) Matches() (bool, error) {
	ok, err := m.attempt(m.regionStart)
	if err != nil {
		return false, err
	}
	if !ok || int(m.caps[1]) != m.regionEnd {
		m.haveMatch = false
		return false, nil
	}
	return true, nil
}

// LookingAt reports whether the pattern matches a prefix of the region,
// anchored only at the start.
func (m *Matcher) LookingAt() (bool, error) {
	return m.attempt(m.regionStart)
}

// Find searches for the next match, resuming after the previous one (or
// from the region start if there is no previous match), and advancing by one
// code point past a previous zero-length match so the search always makes
// progress.
func (m *Matcher) Find() (bool, error) {
	start := m.regionStart
	if m.haveMatch {
		start = int(m.caps[1])
		if int(m.caps[0]) == int(m.caps[1]) {
			if _, next := m.in.Next(start); next > start {
				start = next
			} else {
				start++
			}
		}
	} else if m.prevMatchEnd >= 0 {
		start = m.prevMatchEnd
	}
	if start > m.regionEnd {
		m.haveMatch = false
		return false, nil
	}
	return m.FindFrom(start)
}

// FindFrom searches for the next match starting no earlier than from.
func (m *Matcher) FindFrom(from int) (bool, error) {
	if from < m.regionStart {
		from = m.regionStart
	}
	if from > m.regionEnd {
		return false, program.NewRuntimeError(program.IndexOutOfRange, "start position past region end")
	}
	pos := from
	for pos <= m.regionEnd {
		candidate, stop := m.nextCandidate(pos)
		if stop {
			break
		}
		ok, err := m.attempt(candidate)
		if err != nil {
			return false, err
		}
		if ok {
			m.prevMatchEnd = int(m.caps[1])
			return true, nil
		}
		if m.limits.FindProgress != nil && !m.limits.FindProgress(candidate) {
			m.haveMatch = false
			return false, program.NewRuntimeError(program.StoppedByCaller, "find progress callback stopped the search")
		}
		if candidate >= m.regionEnd {
			break
		}
		if _, next := m.in.Next(candidate); next > candidate {
			pos = next
		} else {
			pos = candidate + 1
		}
	}
	m.haveMatch = false
	return false, nil
}

// nextCandidate returns the next position at or after pos worth attempting,
// using the pattern's static start-of-match information to skip positions
// that provably cannot succeed. stop is true when no later position can
// possibly match either (a wholly input-anchored pattern past its one legal
// start).
func (m *Matcher) nextCandidate(pos int) (candidate int, stop bool) {
	if m.pf != nil && pos < m.regionEnd {
		idx := m.pf.Find(m.in.Bytes()[:m.regionEnd], pos)
		if idx < 0 {
			return 0, true
		}
		return idx, false
	}
	switch m.pat.StaticType {
	case program.StartAnchor:
		start := m.inputStart()
		if pos > start {
			return 0, true
		}
		return start, false
	case program.StartLine:
		for p := pos; p <= m.regionEnd; {
			if m.atLineStart(p, true) {
				return p, false
			}
			r, next := m.in.Next(p)
			if r == ucode.Sentinel {
				return 0, true
			}
			p = next
		}
		return 0, true
	case program.StartChar, program.StartSet:
		for p := pos; p < m.regionEnd; {
			r, next := m.in.Next(p)
			if r == ucode.Sentinel {
				break
			}
			if m.pat.InitialChars.Contains(r) {
				return p, false
			}
			p = next
		}
		if pos <= m.regionEnd && m.pat.MinMatchLength == 0 {
			return m.regionEnd, false
		}
		return 0, true
	default:
		return pos, false
	}
}
