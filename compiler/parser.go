package compiler

import (
	"strconv"

	"github.com/coregx/uregex/program"
	"github.com/coregx/uregex/ucode"
)

// flagState carries the inline-scoped flags (i, m, s) that affect leaf node
// construction. It is passed and copied by value through the recursive
// descent so that "(?i:...)" scopes cleanly to its group while "(?i)"
// (a flag-only span with no ':') mutates the caller's local copy for the
// remainder of the enclosing concatenation, matching ICU's documented
// scoping rules.
type flagState struct {
	ci, multiline, dotAll bool
}

// parser turns pattern source into a parse tree. It is host-recursive with
// an explicit depth counter checked against cfg.MaxRecursionDepth on every
// descent, which is how this implementation realizes the spec's goal of
// bounding compile memory deterministically (design note §9) without a
// hand-rolled operator stack for what is, in the end, a small grammar.
type parser struct {
	src     []rune
	pos     int
	line    int
	col     int
	pattern string

	global program.Flag // pattern-wide flags: Comments, UnixLines, Literal, ErrorOnUnknownEscapes, plus initial i/m/s
	cfg    Config

	depth int

	captureCount int
	groupNames   map[string]int
	numbered     []string // index by group number -> name ("" if unnamed)
}

func newParser(pattern string, flags program.Flag, cfg Config) *parser {
	return &parser{
		src:        []rune(pattern),
		line:       1,
		col:        1,
		pattern:    pattern,
		global:     flags,
		cfg:        cfg,
		groupNames: map[string]int{},
		numbered:   []string{""},
	}
}

func (p *parser) atEOF() bool           { return p.pos >= len(p.src) }
func (p *parser) atEOFAt(off int) bool  { return p.pos+off >= len(p.src) }
func (p *parser) peekRaw() rune {
	if p.atEOF() {
		return ucode.Sentinel
	}
	return p.src[p.pos]
}
func (p *parser) peekRawAt(off int) rune {
	if p.atEOFAt(off) {
		return ucode.Sentinel
	}
	return p.src[p.pos+off]
}
func (p *parser) advanceRaw() {
	if p.atEOF() {
		return
	}
	if p.src[p.pos] == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	p.pos++
}

func (p *parser) errf(kind program.ErrorKind, msg string) *program.CompileError {
	return &program.CompileError{Kind: kind, Line: p.line, Column: p.col, Pattern: p.pattern, Message: msg}
}

func (p *parser) enter() *program.CompileError {
	p.depth++
	if p.depth > p.cfg.MaxRecursionDepth {
		return p.errf(program.PatternTooBig, "pattern nesting too deep")
	}
	return nil
}
func (p *parser) leave() { p.depth-- }

// parse parses the entire pattern and returns its root node.
func (p *parser) parse() (*node, *program.CompileError) {
	if len(p.src) > p.cfg.MaxPatternLength {
		return nil, p.errf(program.PatternTooBig, "pattern exceeds maximum length")
	}
	if p.global.Has(program.Literal) {
		return p.parseLiteralWhole()
	}
	fs := flagState{
		ci: p.global.Has(program.CaseInsensitive),
		multiline: p.global.Has(program.Multiline),
		dotAll: p.global.Has(program.DotAll),
	}
	root, err := p.parseAlternate(fs)
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		if p.peekRaw() == ')' {
			return nil, p.errf(program.MismatchedParen, "unmatched ')'")
		}
		return nil, p.errf(program.RuleSyntax, "unexpected trailing input")
	}
	return root, nil
}

func (p *parser) parseLiteralWhole() (*node, *program.CompileError) {
	var kids []*node
	for !p.atEOF() {
		r := p.peekRaw()
		p.advanceRaw()
		kids = append(kids, &node{kind: nLiteral, lit: r, ci: p.global.Has(program.CaseInsensitive)})
	}
	if len(kids) == 0 {
		return &node{kind: nEmpty}, nil
	}
	return &node{kind: nConcat, kids: kids}, nil
}

// skipIgnorable consumes whitespace and #-comments when COMMENTS is set.
// It has no effect inside bracket expressions (callers never invoke it
// there).
func (p *parser) skipIgnorable() {
	if !p.global.Has(program.Comments) {
		return
	}
	for {
		switch {
		case !p.atEOF() && isPatternWhitespace(p.peekRaw()):
			p.advanceRaw()
		case p.peekRaw() == '#':
			for !p.atEOF() && p.peekRaw() != '\n' {
				p.advanceRaw()
			}
		default:
			return
		}
	}
}

func isPatternWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// parseAlternate parses `concat ('|' concat)*`.
func (p *parser) parseAlternate(fs flagState) (*node, *program.CompileError) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	first, err := p.parseConcat(fs)
	if err != nil {
		return nil, err
	}
	p.skipIgnorable()
	if p.peekRaw() != '|' {
		return first, nil
	}
	branches := []*node{first}
	for p.peekRaw() == '|' {
		p.advanceRaw()
		n, err := p.parseConcat(fs)
		if err != nil {
			return nil, err
		}
		branches = append(branches, n)
		p.skipIgnorable()
	}
	return &node{kind: nAlternate, kids: branches}, nil
}

// parseConcat parses a sequence of quantified atoms, stopping at '|', ')',
// or end of input. fs is copied so flag-span modifiers ("(?i)") mutate only
// this call's local view, matching the enclosing group's scope.
func (p *parser) parseConcat(fs flagState) (*node, *program.CompileError) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var kids []*node
	for {
		p.skipIgnorable()
		if p.atEOF() || p.peekRaw() == '|' || p.peekRaw() == ')' {
			break
		}
		n, changedFlags, err := p.parseQuantified(&fs)
		if err != nil {
			return nil, err
		}
		if changedFlags {
			continue
		}
		kids = append(kids, n)
	}
	switch len(kids) {
	case 0:
		return &node{kind: nEmpty}, nil
	case 1:
		return kids[0], nil
	default:
		return &node{kind: nConcat, kids: kids}, nil
	}
}

// parseQuantified parses one atom followed by an optional quantifier. If the
// atom turned out to be a pure flag-span ("(?i)") with no node to emit, it
// returns changedFlags=true and a nil node.
func (p *parser) parseQuantified(fs *flagState) (n *node, changedFlags bool, err *program.CompileError) {
	atom, changedFlags, err := p.parseAtom(fs)
	if err != nil {
		return nil, false, err
	}
	if changedFlags {
		return nil, true, nil
	}
	p.skipIgnorable()
	min, max, greedy, possessive, has, qerr := p.parseQuantifierSuffix()
	if qerr != nil {
		return nil, false, qerr
	}
	if !has {
		return atom, false, nil
	}
	if atom.kind == nLook || (atom.kind == nAnchor) {
		// quantifying a zero-width assertion is legal in ICU/Perl; fall
		// through and wrap it like any other atom.
	}
	return &node{kind: nRepeat, kids: []*node{atom}, min: min, max: max, greedy: greedy, possessive: possessive}, false, nil
}

// parseQuantifierSuffix parses ? * + {n} {n,} {n,m} optionally followed by
// ? (reluctant) or + (possessive). has is false if no quantifier follows.
func (p *parser) parseQuantifierSuffix() (min, max int, greedy, possessive bool, has bool, err *program.CompileError) {
	p.skipIgnorable()
	switch p.peekRaw() {
	case '?':
		p.advanceRaw()
		min, max, has = 0, 1, true
	case '*':
		p.advanceRaw()
		min, max, has = 0, -1, true
	case '+':
		p.advanceRaw()
		min, max, has = 1, -1, true
	case '{':
		save := p.pos
		saveLine, saveCol := p.line, p.col
		p.advanceRaw()
		n1, ok1 := p.parseNumber()
		if !ok1 {
			p.pos, p.line, p.col = save, saveLine, saveCol
			return 0, 0, true, false, false, nil
		}
		if n1 > p.cfg.MaxRepeatCount {
			return 0, 0, false, false, false, p.errf(program.NumberTooBig, "repeat count too large")
		}
		if p.peekRaw() == '}' {
			p.advanceRaw()
			min, max, has = n1, n1, true
		} else if p.peekRaw() == ',' {
			p.advanceRaw()
			if p.peekRaw() == '}' {
				p.advanceRaw()
				min, max, has = n1, -1, true
			} else {
				n2, ok2 := p.parseNumber()
				if !ok2 || p.peekRaw() != '}' {
					p.pos, p.line, p.col = save, saveLine, saveCol
					return 0, 0, true, false, false, nil
				}
				if n2 > p.cfg.MaxRepeatCount {
					return 0, 0, false, false, false, p.errf(program.NumberTooBig, "repeat count too large")
				}
				p.advanceRaw()
				if n2 < n1 {
					return 0, 0, false, false, false, p.errf(program.MaxLtMin, "{n,m} with m < n")
				}
				min, max, has = n1, n2, true
			}
		} else {
			p.pos, p.line, p.col = save, saveLine, saveCol
			return 0, 0, true, false, false, nil
		}
	default:
		return 0, 0, true, false, false, nil
	}
	greedy = true
	switch p.peekRaw() {
	case '?':
		p.advanceRaw()
		greedy = false
	case '+':
		p.advanceRaw()
		possessive = true
	}
	return min, max, greedy, possessive, has, nil
}

func (p *parser) parseNumber() (int, bool) {
	start := p.pos
	for !p.atEOF() && p.peekRaw() >= '0' && p.peekRaw() <= '9' {
		p.advanceRaw()
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.Atoi(string(p.src[start:p.pos]))
	if err != nil {
		// Only digits were consumed, so the one possible failure is
		// overflow: report a value past any repeat-count cap.
		return int(^uint(0) >> 1), true
	}
	return n, true
}

// decodeLiteralEscape decodes a single-rune escape (used both by the main
// grammar and by bracket-expression parsing), with p.pos positioned right
// after the backslash.
func (p *parser) decodeLiteralEscape() (rune, *program.CompileError) {
	if p.atEOF() {
		return 0, p.errf(program.BadEscapeSequence, "trailing backslash")
	}
	c := p.peekRaw()
	if r, ok := decodeSimpleEscape(c); ok {
		p.advanceRaw()
		return r, nil
	}
	switch c {
	case 'c':
		p.advanceRaw()
		r, newPos, err := decodeControlEscape(p.src, p.pos)
		if err != nil {
			return 0, err
		}
		p.pos = newPos
		return r, nil
	case 'x', 'u', 'U':
		p.advanceRaw()
		r, newPos, err := decodeHexEscape(p.src, p.pos, c)
		if err != nil {
			return 0, err
		}
		p.pos = newPos
		return r, nil
	}
	if c == '0' {
		p.advanceRaw()
		r, newPos := decodeOctalEscape(p.src, p.pos)
		p.pos = newPos
		return r, nil
	}
	if isPunct(c) {
		p.advanceRaw()
		return c, nil
	}
	if p.global.Has(program.ErrorOnUnknownEscapes) {
		return 0, p.errf(program.BadEscapeSequence, "unknown escape sequence")
	}
	p.advanceRaw()
	return c, nil
}

func isPunct(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	default:
		return true
	}
}

func simpleFoldVariants(r rune) []rune {
	return ucode.FullFold(r)
}
