package compiler

import "github.com/coregx/uregex/program"

// parseGroup parses a '(' ... ')' construct: plain capturing groups, named
// captures, non-capturing groups, flag spans/groups, look-around, atomic
// groups, and (?#...) comments. p.pos is at '(' on entry.
func (p *parser) parseGroup(outerFS *flagState) (n *node, changedFlags bool, err *program.CompileError) {
	start := p.pos
	p.advanceRaw() // consume '('
	if p.peekRaw() != '?' {
		// Plain capturing group.
		p.captureCount++
		num := p.captureCount
		p.numbered = append(p.numbered, "")
		inner, ierr := p.parseAlternate(*outerFS)
		if ierr != nil {
			return nil, false, ierr
		}
		if perr := p.expectClose(start); perr != nil {
			return nil, false, perr
		}
		return &node{kind: nCapture, kids: []*node{inner}, groupNum: num}, false, nil
	}
	p.advanceRaw() // consume '?'
	switch p.peekRaw() {
	case ':':
		p.advanceRaw()
		inner, ierr := p.parseAlternate(*outerFS)
		if ierr != nil {
			return nil, false, ierr
		}
		if perr := p.expectClose(start); perr != nil {
			return nil, false, perr
		}
		return inner, false, nil
	case '=':
		p.advanceRaw()
		return p.parseLookBody(*outerFS, program.LookAhead, start)
	case '!':
		p.advanceRaw()
		return p.parseLookBody(*outerFS, program.LookAheadNeg, start)
	case '>':
		p.advanceRaw()
		inner, ierr := p.parseAlternate(*outerFS)
		if ierr != nil {
			return nil, false, ierr
		}
		if perr := p.expectClose(start); perr != nil {
			return nil, false, perr
		}
		return &node{kind: nAtomic, kids: []*node{inner}}, false, nil
	case '#':
		p.advanceRaw()
		for !p.atEOF() && p.peekRaw() != ')' {
			p.advanceRaw()
		}
		if perr := p.expectClose(start); perr != nil {
			return nil, false, perr
		}
		return nil, true, nil // comment: behaves like a flag span that changed nothing
	case '<':
		p.advanceRaw()
		switch p.peekRaw() {
		case '=':
			p.advanceRaw()
			return p.parseLookBody(*outerFS, program.LookBehind, start)
		case '!':
			p.advanceRaw()
			return p.parseLookBody(*outerFS, program.LookBehindNeg, start)
		default:
			return p.parseNamedCapture(outerFS, start)
		}
	default:
		return p.parseFlagGroup(outerFS, start)
	}
}

func (p *parser) expectClose(start int) *program.CompileError {
	if p.peekRaw() != ')' {
		return p.errf(program.MismatchedParen, "missing closing ')'")
	}
	p.advanceRaw()
	return nil
}

func (p *parser) parseLookBody(fs flagState, kind program.LookKind, start int) (*node, bool, *program.CompileError) {
	inner, ierr := p.parseAlternate(fs)
	if ierr != nil {
		return nil, false, ierr
	}
	if perr := p.expectClose(start); perr != nil {
		return nil, false, perr
	}
	return &node{kind: nLook, kids: []*node{inner}, lookKind: kind}, false, nil
}

func (p *parser) parseNamedCapture(outerFS *flagState, start int) (*node, bool, *program.CompileError) {
	nameStart := p.pos
	for !p.atEOF() && p.peekRaw() != '>' {
		p.advanceRaw()
	}
	if p.atEOF() {
		return nil, false, p.errf(program.InvalidCaptureGroupName, "unterminated named group")
	}
	name := string(p.src[nameStart:p.pos])
	if !validGroupName(name) {
		return nil, false, p.errf(program.InvalidCaptureGroupName, "invalid capture group name "+name)
	}
	if _, dup := p.groupNames[name]; dup {
		return nil, false, p.errf(program.InvalidCaptureGroupName, "duplicate capture group name "+name)
	}
	p.advanceRaw() // consume '>'
	p.captureCount++
	num := p.captureCount
	p.numbered = append(p.numbered, name)
	p.groupNames[name] = num
	inner, ierr := p.parseAlternate(*outerFS)
	if ierr != nil {
		return nil, false, ierr
	}
	if perr := p.expectClose(start); perr != nil {
		return nil, false, perr
	}
	return &node{kind: nCapture, kids: []*node{inner}, groupNum: num, groupName: name}, false, nil
}

func validGroupName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, r := range name {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 {
			if !isLetter {
				return false
			}
		} else if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// parseFlagGroup parses "(?ims-ims)" (a span affecting the rest of the
// enclosing concatenation) or "(?ims-ims:...)" (a scoped group). p.pos is
// positioned right after the leading '?'.
func (p *parser) parseFlagGroup(outerFS *flagState, start int) (*node, bool, *program.CompileError) {
	newFS := *outerFS
	negate := false
	sawFlag := false
	for {
		c := p.peekRaw()
		switch c {
		case 'i':
			sawFlag = true
			newFS.ci = !negate
			p.advanceRaw()
		case 'm':
			sawFlag = true
			newFS.multiline = !negate
			p.advanceRaw()
		case 's':
			sawFlag = true
			newFS.dotAll = !negate
			p.advanceRaw()
		case '-':
			negate = true
			p.advanceRaw()
		case ':':
			p.advanceRaw()
			inner, ierr := p.parseAlternate(newFS)
			if ierr != nil {
				return nil, false, ierr
			}
			if perr := p.expectClose(start); perr != nil {
				return nil, false, perr
			}
			return inner, false, nil
		case ')':
			if !sawFlag && !negate {
				return nil, false, p.errf(program.InvalidFlag, "empty flag group")
			}
			p.advanceRaw()
			*outerFS = newFS
			return nil, true, nil
		default:
			return nil, false, p.errf(program.InvalidFlag, "unknown inline flag")
		}
	}
}
