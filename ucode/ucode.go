// Package ucode provides code-point indexing over UTF-8 input for the regex
// engine.
//
// The matcher and compiler never reason about bytes directly: every position
// they hold is a native offset (a byte index into the UTF-8 input) and every
// character is a full Unicode code point, never a position mid-sequence. This
// package is the single place that bridges the two.
//
// Unicode character-property data itself (general category membership, simple
// and full case folding) is treated as an external table: this package calls
// into the standard library's unicode tables the same way the rest of the
// engine calls into github.com/coregx/ahocorasick or golang.org/x/sys/cpu —
// as a queryable collaborator, not something this repository generates.
package ucode

import (
	"unicode"
	"unicode/utf8"
)

// Sentinel is returned by Peek when the offset is outside the input.
const Sentinel rune = -1

// Input wraps a UTF-8 byte slice with code-point-aware navigation.
//
// All offsets are native byte offsets. Input never exposes a position that
// falls inside a multi-byte sequence: Next and Prev always step by a whole
// rune.
type Input struct {
	b []byte
}

// NewInput wraps b for code-point-aware navigation.
func NewInput(b []byte) Input {
	return Input{b: b}
}

// NewInputString wraps a byte copy of s for code-point-aware navigation.
func NewInputString(s string) Input {
	return Input{b: []byte(s)}
}

// Len returns the number of bytes in the input.
func (in Input) Len() int { return len(in.b) }

// Bytes returns the underlying byte slice.
func (in Input) Bytes() []byte { return in.b }

// Slice returns the substring in [start, end) as a string.
func (in Input) Slice(start, end int) string {
	if start < 0 || end > len(in.b) || start > end {
		return ""
	}
	return string(in.b[start:end])
}

// Peek returns the code point at off, or Sentinel if off is out of range.
// It never returns a value from the middle of a sequence.
func (in Input) Peek(off int) rune {
	if off < 0 || off >= len(in.b) {
		return Sentinel
	}
	r, _ := utf8.DecodeRune(in.b[off:])
	return r
}

// Next returns the code point starting at off and the offset immediately
// after it. If off is at or past the end, it returns (Sentinel, off).
func (in Input) Next(off int) (rune, int) {
	if off < 0 || off >= len(in.b) {
		return Sentinel, off
	}
	r, size := utf8.DecodeRune(in.b[off:])
	return r, off + size
}

// Prev returns the code point immediately preceding off and the offset of
// its first byte. If off is at or before the start, it returns (Sentinel, off).
func (in Input) Prev(off int) (rune, int) {
	if off <= 0 || off > len(in.b) {
		return Sentinel, off
	}
	r, size := utf8.DecodeLastRune(in.b[:off])
	return r, off - size
}

// Width returns the width in bytes of the code point at off, or 0 if off is
// out of range.
func (in Input) Width(off int) int {
	if off < 0 || off >= len(in.b) {
		return 0
	}
	_, size := utf8.DecodeRune(in.b[off:])
	return size
}

// IsWordChar reports whether r is a "word" character for \w / \b purposes:
// Unicode letters, digits, and the underscore, matching ICU's UREGEX_UWORD
// default behavior built on Unicode property data.
func IsWordChar(r rune) bool {
	if r == Sentinel {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsLineTerminator reports whether r is a line terminator under the given
// UNIX_LINES setting: {LF} only when unixLines is true, else the full ICU
// set {LF, CR, NEL, LS, PS, VT, FF}. CRLF is handled by callers as a unit.
func IsLineTerminator(r rune, unixLines bool) bool {
	if unixLines {
		return r == '\n'
	}
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	default:
		return false
	}
}

// FullFold returns the simple case-fold orbit of r: every code point that is
// case-equivalent to r according to simple case folding, without duplicates.
// r itself comes first, followed by the rest of its unicode.SimpleFold orbit
// in that orbit's order (so the slice is not necessarily sorted). Folds that
// map one code point to several (such as U+00DF to "ss") are not included.
// This realizes the "external Unicode property table" collaborator's
// simple-fold query.
func FullFold(r rune) []rune {
	variants := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		variants = append(variants, f)
	}
	return variants
}

// EqualFold reports whether the rune sequences a and b are equal under
// Unicode simple case folding, comparing them one code point at a time.
// Sequences of different lengths never compare equal, so multi-code-point
// folds (U+00DF against "ss") are not matched.
func EqualFold(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !RuneEqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// RuneEqualFold reports whether r1 and r2 are the same code point under
// Unicode simple case folding.
func RuneEqualFold(r1, r2 rune) bool {
	if r1 == r2 {
		return true
	}
	for f := unicode.SimpleFold(r1); f != r1; f = unicode.SimpleFold(f) {
		if f == r2 {
			return true
		}
	}
	return false
}
