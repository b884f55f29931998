package matcher

import (
	"github.com/coregx/uregex/program"
	"github.com/coregx/uregex/ucode"
)

func (m *Matcher) unixLines() bool { return m.pat.Flags.Has(program.UnixLines) }

// atLineStart reports whether pos is a ^ position: the start of input
// (subject to anchoring bounds) or, under multiline, immediately after a
// line terminator.
func (m *Matcher) atLineStart(pos int, multiline bool) bool {
	if pos == m.inputStart() {
		return true
	}
	if !multiline {
		return false
	}
	prev, _ := m.in.Prev(pos)
	if prev == ucode.Sentinel {
		return false
	}
	if prev == '\r' {
		// A lone CR is a terminator; CRLF's boundary is after the LF, not
		// between CR and LF, so ^ does not match mid-CRLF.
		if next := m.in.Peek(pos); next == '\n' {
			return false
		}
	}
	return ucode.IsLineTerminator(prev, m.unixLines())
}

// atLineEnd reports whether pos is a $ position: the end of input (subject
// to anchoring bounds) or, under multiline, immediately before a line
// terminator (or immediately before the LF of a CRLF pair).
func (m *Matcher) atLineEnd(pos int, multiline bool) bool {
	end := m.inputEnd()
	if pos == end {
		m.hitEnd = true
		return true
	}
	if !multiline {
		return false
	}
	r := m.in.Peek(pos)
	if r == ucode.Sentinel {
		return false
	}
	return ucode.IsLineTerminator(r, m.unixLines())
}

func (m *Matcher) isWordBoundary(pos int) bool {
	before, _ := m.in.Prev(pos)
	after := m.in.Peek(pos)
	return ucode.IsWordChar(before) != ucode.IsWordChar(after)
}
