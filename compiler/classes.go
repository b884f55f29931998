package compiler

import (
	"unicode"

	"github.com/coregx/uregex/program"
)

// digitSet, spaceSet, wordSet back the Perl shorthand classes.
// These are built on each call from the standard library's Unicode tables (the
// external Unicode property table collaborator spec.md §1 names) rather than
// hand-maintained, so they track whatever Unicode version the Go toolchain
// ships.
func digitSet() program.CharSet {
	return rangeTableSet(unicode.Nd)
}

func spaceSet() program.CharSet {
	cs := program.CharSet{}
	for _, r := range []rune{' ', '\t', '\n', '\r', '\f', '\v'} {
		cs.AddRune(r)
	}
	cs.Union(rangeTableSet(unicode.Z))
	return cs
}

func wordSet() program.CharSet {
	cs := rangeTableSet(unicode.L)
	cs.Union(rangeTableSet(unicode.Nd))
	cs.AddRune('_')
	return cs
}

func horizontalSpaceSet() program.CharSet {
	cs := program.CharSet{}
	cs.AddRune('\t')
	cs.Union(rangeTableSet(unicode.Zs))
	return cs
}

func verticalSpaceSet() program.CharSet {
	cs := program.CharSet{}
	for _, r := range []rune{'\n', '\v', '\f', '\r', 0x85, 0x2028, 0x2029} {
		cs.AddRune(r)
	}
	return cs
}

// rangeTableSet flattens a unicode.RangeTable into a CharSet.
func rangeTableSet(t *unicode.RangeTable) program.CharSet {
	cs := program.CharSet{}
	for _, r16 := range t.R16 {
		cs.AddRange(rune(r16.Lo), rune(r16.Hi))
	}
	for _, r32 := range t.R32 {
		cs.AddRange(rune(r32.Lo), rune(r32.Hi))
	}
	return cs
}

// lookupProperty resolves a \p{Name}/\P{Name} body to a CharSet using the
// standard library's Unicode category, script, and property tables. Unknown
// names are a PROPERTY_SYNTAX compile error.
func lookupProperty(name string) (program.CharSet, bool) {
	switch name {
	case "L", "Letter":
		return rangeTableSet(unicode.L), true
	case "N", "Number":
		return rangeTableSet(unicode.N), true
	case "Nd":
		return rangeTableSet(unicode.Nd), true
	case "P", "Punctuation":
		return rangeTableSet(unicode.P), true
	case "S", "Symbol":
		return rangeTableSet(unicode.S), true
	case "Z", "Separator":
		return rangeTableSet(unicode.Z), true
	case "C", "Other":
		return rangeTableSet(unicode.C), true
	case "M", "Mark":
		return rangeTableSet(unicode.M), true
	case "Lu":
		return rangeTableSet(unicode.Lu), true
	case "Ll":
		return rangeTableSet(unicode.Ll), true
	case "Lt":
		return rangeTableSet(unicode.Lt), true
	case "Alpha", "Alphabetic":
		return rangeTableSet(unicode.L), true
	case "Word":
		return wordSet(), true
	case "White_Space", "space", "Space":
		return spaceSet(), true
	}
	if t, ok := unicode.Categories[name]; ok {
		return rangeTableSet(t), true
	}
	if t, ok := unicode.Scripts[name]; ok {
		return rangeTableSet(t), true
	}
	if t, ok := unicode.Properties[name]; ok {
		return rangeTableSet(t), true
	}
	return program.CharSet{}, false
}

// parseClass parses a [...] bracket expression. p.pos must be just past '['.
// It handles negation (^), literal members, ranges (a-z), embedded shorthand
// classes (\d \w \s ...), embedded \p{...}, and nested [...] sub-classes
// (unioned in — full ICU set intersection/difference (&&, --) is deferred to
// the external Unicode-set collaborator per spec.md §4.3 and is not
// implemented here: '&' is read as an ordinary member, '-' as a member or a
// range dash, and any nested [...] is unioned in).
func (p *parser) parseClass() (*node, *program.CompileError) {
	negated := false
	if p.peekRaw() == '^' {
		negated = true
		p.advanceRaw()
	}
	cs := program.CharSet{}
	first := true
	for {
		c, eof := p.peekRaw(), p.atEOF()
		if eof {
			return nil, p.errf(program.MissingCloseBracket, "missing closing ']'")
		}
		if c == ']' && !first {
			p.advanceRaw()
			break
		}
		first = false
		if c == ']' {
			// ']' as the first member is a literal per POSIX/ICU convention.
			p.advanceRaw()
			cs.AddRune(']')
			continue
		}
		if c == '[' {
			p.advanceRaw()
			sub, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			cs.Union(foldIfNeeded(sub.class, sub.ci, p))
			continue
		}
		if c == '\\' {
			p.advanceRaw()
			sub, isClass, err := p.parseClassEscape()
			if err != nil {
				return nil, err
			}
			if isClass {
				cs.Union(sub)
				continue
			}
			// sub holds a single literal rune in Ranges[0].
			lo := sub.Ranges[0].Lo
			if p.peekRaw() == '-' && p.peekRawAt(1) != ']' && !p.atEOFAt(1) {
				p.advanceRaw() // consume '-'
				hi, err := p.parseClassChar()
				if err != nil {
					return nil, err
				}
				cs.AddRange(lo, hi)
			} else {
				cs.AddRune(lo)
			}
			continue
		}
		lo, err := p.parseClassChar()
		if err != nil {
			return nil, err
		}
		if p.peekRaw() == '-' && p.peekRawAt(1) != ']' && !p.atEOFAt(1) {
			p.advanceRaw() // consume '-'
			if p.peekRaw() == '\\' {
				p.advanceRaw()
				sub, isClass, err := p.parseClassEscape()
				if err != nil {
					return nil, err
				}
				if isClass {
					return nil, p.errf(program.InvalidRange, "class cannot be a range endpoint")
				}
				hi := sub.Ranges[0].Lo
				if hi < lo {
					return nil, p.errf(program.InvalidRange, "range out of order")
				}
				cs.AddRange(lo, hi)
				continue
			}
			hi, err := p.parseClassChar()
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errf(program.InvalidRange, "range out of order")
			}
			cs.AddRange(lo, hi)
		} else {
			cs.AddRune(lo)
		}
	}
	cs.Negated = negated
	n := &node{kind: nClass, class: cs}
	return n, nil
}

// parseClassChar reads one literal code point inside a bracket expression
// (raw, not going through the outer-expression escape table).
func (p *parser) parseClassChar() (rune, *program.CompileError) {
	if p.atEOF() {
		return 0, p.errf(program.MissingCloseBracket, "missing closing ']'")
	}
	c := p.peekRaw()
	if c == '\\' {
		p.advanceRaw()
		sub, isClass, err := p.parseClassEscape()
		if err != nil {
			return 0, err
		}
		if isClass {
			return 0, p.errf(program.InvalidRange, "class cannot be used as a literal character")
		}
		return sub.Ranges[0].Lo, nil
	}
	p.advanceRaw()
	return c, nil
}

// parseClassEscape parses a backslash escape occurring inside a bracket
// expression. p.pos is positioned just past the backslash. It returns either
// a multi-member CharSet (isClass true, e.g. from \d) or a single-rune
// CharSet with one range (isClass false) for literal escapes like \n or \x41.
func (p *parser) parseClassEscape() (program.CharSet, bool, *program.CompileError) {
	if p.atEOF() {
		return program.CharSet{}, false, p.errf(program.BadEscapeSequence, "trailing backslash")
	}
	c := p.peekRaw()
	switch c {
	case 'd':
		p.advanceRaw()
		return digitSet(), true, nil
	case 'D':
		p.advanceRaw()
		s := digitSet()
		s.Negated = true
		return s, true, nil
	case 'w':
		p.advanceRaw()
		return wordSet(), true, nil
	case 'W':
		p.advanceRaw()
		s := wordSet()
		s.Negated = true
		return s, true, nil
	case 's':
		p.advanceRaw()
		return spaceSet(), true, nil
	case 'S':
		p.advanceRaw()
		s := spaceSet()
		s.Negated = true
		return s, true, nil
	case 'h':
		p.advanceRaw()
		return horizontalSpaceSet(), true, nil
	case 'H':
		p.advanceRaw()
		s := horizontalSpaceSet()
		s.Negated = true
		return s, true, nil
	case 'v':
		p.advanceRaw()
		return verticalSpaceSet(), true, nil
	case 'V':
		p.advanceRaw()
		s := verticalSpaceSet()
		s.Negated = true
		return s, true, nil
	case 'p', 'P':
		neg := c == 'P'
		p.advanceRaw()
		name, err := p.parsePropertyName()
		if err != nil {
			return program.CharSet{}, false, err
		}
		s, ok := lookupProperty(name)
		if !ok {
			return program.CharSet{}, false, p.errf(program.PropertySyntax, "unknown Unicode property "+name)
		}
		s.Negated = neg
		return s, true, nil
	}
	r, err := p.decodeLiteralEscape()
	if err != nil {
		return program.CharSet{}, false, err
	}
	single := program.CharSet{}
	single.AddRune(r)
	return single, false, nil
}

// parsePropertyName parses the "{Name}" or single-letter form following
// \p / \P, with p.pos positioned right after the p/P.
func (p *parser) parsePropertyName() (string, *program.CompileError) {
	if p.peekRaw() == '{' {
		p.advanceRaw()
		start := p.pos
		for !p.atEOF() && p.peekRaw() != '}' {
			p.advanceRaw()
		}
		if p.atEOF() {
			return "", p.errf(program.PropertySyntax, "unterminated \\p{...}")
		}
		name := string(p.src[start:p.pos])
		p.advanceRaw() // consume '}'
		return name, nil
	}
	if p.atEOF() {
		return "", p.errf(program.PropertySyntax, "missing property name after \\p")
	}
	r := p.peekRaw()
	p.advanceRaw()
	return string(r), nil
}

func foldIfNeeded(cs program.CharSet, ci bool, p *parser) program.CharSet {
	if !ci {
		return cs
	}
	return cs.CaseFoldClose(func(r rune) []rune { return simpleFoldVariants(r) })
}
