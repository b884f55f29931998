package compiler

import "github.com/coregx/uregex/program"

// decodeSimpleEscape decodes one of the fixed control escapes recognized
// both inside patterns and inside replacement templates: \a \e \f \n \r \t.
// ok is false if c is not one of these.
func decodeSimpleEscape(c rune) (r rune, ok bool) {
	switch c {
	case 'a':
		return '\a', true
	case 'e':
		return 0x1b, true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

// decodeHexEscape decodes \xHH, \x{H...H}, \uHHHH, and \UHHHHHHHH starting
// right after the 'x'/'u'/'U' letter at src[pos]. It returns the decoded
// rune and the position right after the escape.
func decodeHexEscape(src []rune, pos int, kind rune) (r rune, newPos int, err *program.CompileError) {
	switch kind {
	case 'x':
		if pos < len(src) && src[pos] == '{' {
			start := pos + 1
			end := start
			for end < len(src) && src[end] != '}' {
				end++
			}
			if end >= len(src) {
				return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "unterminated \\x{...}"}
			}
			v, ok := parseHex(src[start:end])
			if !ok {
				return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "invalid hex escape"}
			}
			return rune(v), end + 1, nil
		}
		end := pos + 2
		if end > len(src) {
			return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "truncated \\xHH escape"}
		}
		v, ok := parseHex(src[pos:end])
		if !ok {
			return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "invalid hex escape"}
		}
		return rune(v), end, nil
	case 'u':
		end := pos + 4
		if end > len(src) {
			return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "truncated \\uHHHH escape"}
		}
		v, ok := parseHex(src[pos:end])
		if !ok {
			return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "invalid hex escape"}
		}
		return rune(v), end, nil
	case 'U':
		end := pos + 8
		if end > len(src) {
			return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "truncated \\UHHHHHHHH escape"}
		}
		v, ok := parseHex(src[pos:end])
		if !ok {
			return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "invalid hex escape"}
		}
		return rune(v), end, nil
	}
	return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "unknown hex escape kind"}
}

func parseHex(digits []rune) (int64, bool) {
	if len(digits) == 0 {
		return 0, false
	}
	var v int64
	for _, d := range digits {
		var x int64
		switch {
		case d >= '0' && d <= '9':
			x = int64(d - '0')
		case d >= 'a' && d <= 'f':
			x = int64(d-'a') + 10
		case d >= 'A' && d <= 'F':
			x = int64(d-'A') + 10
		default:
			return 0, false
		}
		v = v*16 + x
		if v > 0x10FFFF {
			return 0, false
		}
	}
	return v, true
}

// decodeOctalEscape decodes \0ddd (up to 3 octal digits after the leading
// zero) starting at src[pos], which must point just past the '0'.
func decodeOctalEscape(src []rune, pos int) (r rune, newPos int) {
	v := int64(0)
	n := 0
	for pos < len(src) && n < 3 && src[pos] >= '0' && src[pos] <= '7' {
		v = v*8 + int64(src[pos]-'0')
		pos++
		n++
	}
	return rune(v), pos
}

// decodeControlEscape decodes \cX (control character) starting right after
// the 'c', which must point at X.
func decodeControlEscape(src []rune, pos int) (r rune, newPos int, err *program.CompileError) {
	if pos >= len(src) {
		return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "truncated \\c escape"}
	}
	c := src[pos]
	return rune(c) ^ 0x40, pos + 1, nil
}
