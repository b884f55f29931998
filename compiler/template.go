package compiler

import "github.com/coregx/uregex/program"

// DecodeEscape decodes a single backslash escape, shared between pattern
// literals and replacement templates: \a \e \f \n \r \t, \xHH, \x{...},
// \uHHHH, \UHHHHHHHH, \0ddd, \cX, and otherwise the escaped character
// itself. pos must point just past the backslash, at the escape letter. It
// returns the decoded rune and the position right after the whole escape.
func DecodeEscape(src []rune, pos int) (r rune, newPos int, err *program.CompileError) {
	if pos >= len(src) {
		return 0, pos, &program.CompileError{Kind: program.BadEscapeSequence, Message: "trailing backslash"}
	}
	c := src[pos]
	if simple, ok := decodeSimpleEscape(c); ok {
		return simple, pos + 1, nil
	}
	switch c {
	case 'x', 'u', 'U':
		return decodeHexEscape(src, pos+1, c)
	case 'c':
		return decodeControlEscape(src, pos+1)
	case '0':
		r, np := decodeOctalEscape(src, pos+1)
		return r, np, nil
	default:
		return c, pos + 1, nil
	}
}
