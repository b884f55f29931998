package compiler

import (
	"github.com/coregx/uregex/program"
)

// parseAtom parses one atom: a literal, a class, '.', an anchor, a group, or
// an escape sequence. changedFlags is true when the atom was a pure
// flag-modifying span "(?ims-ims)" that produced no node; in that case fs
// has been mutated in place and n is nil.
func (p *parser) parseAtom(fs *flagState) (n *node, changedFlags bool, err *program.CompileError) {
	c := p.peekRaw()
	switch c {
	case '(':
		return p.parseGroup(fs)
	case '[':
		p.advanceRaw()
		cn, cerr := p.parseClass()
		if cerr != nil {
			return nil, false, cerr
		}
		cn.ci = fs.ci
		if fs.ci {
			cn.class = cn.class.CaseFoldClose(simpleFoldVariants)
		}
		return cn, false, nil
	case '.':
		p.advanceRaw()
		return &node{kind: nAny, dotAll: fs.dotAll}, false, nil
	case '^':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aBOL, multiline: fs.multiline}, false, nil
	case '$':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aEOL, multiline: fs.multiline}, false, nil
	case '*', '+', '?':
		return nil, false, p.errf(program.RuleSyntax, "quantifier with no preceding atom")
	case '{':
		// '{' only starts a quantifier if it looks like one; otherwise it's
		// literal. parseQuantifierSuffix handles the lookahead/backtrack,
		// so here a bare '{' atom is simply a literal.
		p.advanceRaw()
		return &node{kind: nLiteral, lit: '{', ci: fs.ci}, false, nil
	case '\\':
		p.advanceRaw()
		return p.parseEscapeAtom(fs)
	case ')':
		return nil, false, p.errf(program.RuleSyntax, "unexpected ')'")
	default:
		p.advanceRaw()
		return &node{kind: nLiteral, lit: c, ci: fs.ci}, false, nil
	}
}

// parseEscapeAtom parses the body of a backslash escape occurring at the
// top grammar level (outside a bracket expression): shorthand classes,
// \p{...}, boundaries/anchors, back-references, and literal escapes.
func (p *parser) parseEscapeAtom(fs *flagState) (*node, bool, *program.CompileError) {
	if p.atEOF() {
		return nil, false, p.errf(program.BadEscapeSequence, "trailing backslash")
	}
	c := p.peekRaw()
	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S', 'h', 'H', 'v', 'V':
		cs, _, cerr := p.parseClassEscape()
		if cerr != nil {
			return nil, false, cerr
		}
		if fs.ci {
			cs = cs.CaseFoldClose(simpleFoldVariants)
		}
		return &node{kind: nClass, class: cs}, false, nil
	case 'R':
		p.advanceRaw()
		cs := verticalSpaceSet()
		return &node{kind: nClass, class: cs}, false, nil
	case 'p', 'P':
		cs, _, cerr := p.parseClassEscape()
		if cerr != nil {
			return nil, false, cerr
		}
		if fs.ci {
			cs = cs.CaseFoldClose(simpleFoldVariants)
		}
		return &node{kind: nClass, class: cs}, false, nil
	case 'b':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aWordBoundary}, false, nil
	case 'B':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aNotWordBoundary}, false, nil
	case 'A':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aBOI}, false, nil
	case 'z':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aEOI}, false, nil
	case 'Z':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aEOIOptNL}, false, nil
	case 'G':
		p.advanceRaw()
		return &node{kind: nAnchor, anchor: aPrevMatchEnd}, false, nil
	case 'k':
		p.advanceRaw()
		return p.parseNamedBackref(fs)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return p.parseNumericBackref(fs)
	}
	r, rerr := p.decodeLiteralEscape()
	if rerr != nil {
		return nil, false, rerr
	}
	return &node{kind: nLiteral, lit: r, ci: fs.ci}, false, nil
}

func (p *parser) parseNamedBackref(fs *flagState) (*node, bool, *program.CompileError) {
	if p.peekRaw() != '<' {
		return nil, false, p.errf(program.RuleSyntax, "expected '<' after \\k")
	}
	p.advanceRaw()
	start := p.pos
	for !p.atEOF() && p.peekRaw() != '>' {
		p.advanceRaw()
	}
	if p.atEOF() {
		return nil, false, p.errf(program.RuleSyntax, "unterminated \\k<name>")
	}
	name := string(p.src[start:p.pos])
	p.advanceRaw() // consume '>'
	num, ok := p.groupNames[name]
	if !ok {
		return nil, false, p.errf(program.InvalidBackRef, "\\k<"+name+"> refers to an undefined group")
	}
	return &node{kind: nBackref, backrefNum: num, ci: fs.ci}, false, nil
}

func (p *parser) parseNumericBackref(fs *flagState) (*node, bool, *program.CompileError) {
	start := p.pos
	for !p.atEOF() && p.peekRaw() >= '0' && p.peekRaw() <= '9' {
		p.advanceRaw()
	}
	digits := string(p.src[start:p.pos])
	num := 0
	for _, d := range digits {
		num = num*10 + int(d-'0')
	}
	if num < 1 || num > p.captureCount {
		return nil, false, p.errf(program.InvalidBackRef, "back-reference to undefined group")
	}
	return &node{kind: nBackref, backrefNum: num, ci: fs.ci}, false, nil
}
