// Package subst implements replacement-template parsing and substitution:
// the $n / ${name} expansion language used by appendReplacement, replaceAll,
// and replaceFirst, built on top of the matcher package's capture accessors.
package subst

import (
	"strconv"
	"strings"

	"github.com/coregx/uregex/compiler"
	"github.com/coregx/uregex/program"
)

type segKind uint8

const (
	segLiteral segKind = iota
	segGroup
)

type segment struct {
	kind  segKind
	lit   string
	group int
}

// Template is a parsed replacement string: a sequence of literal runs and
// group references, ready to be expanded against any match of the pattern
// it was parsed against.
type Template struct {
	segs []segment
}

// Source supplies the captured groups a Template expands against. *matcher.
// Matcher satisfies it directly.
type Source interface {
	Group(g int) (string, bool, error)
}

// Parse parses repl into a Template against pat, validating that every group
// reference names a group that pat actually declares. Escapes (\n, \xHH,
// ...) use the same decoding as pattern literals. $<digits> takes the
// longest digit run that names an existing group, backing off one digit at
// a time; leftover digits and an unmatched $ are copied through literally.
// ${name} must name a declared group or parsing fails with
// INVALID_CAPTURE_GROUP_NAME.
func Parse(pat *program.Pattern, repl string) (*Template, *program.CompileError) {
	src := []rune(repl)
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: segLiteral, lit: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '\\':
			r, next, err := compiler.DecodeEscape(src, i+1)
			if err != nil {
				return nil, err
			}
			lit.WriteRune(r)
			i = next

		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				end := i + 2
				for end < len(src) && src[end] != '}' {
					end++
				}
				if end >= len(src) {
					return nil, &program.CompileError{Kind: program.InvalidCaptureGroupName, Message: "unterminated ${name} in replacement"}
				}
				name := string(src[i+2 : end])
				g, ok := pat.GroupNumberFromName(name)
				if !ok {
					return nil, &program.CompileError{Kind: program.InvalidCaptureGroupName, Message: "no group named " + name}
				}
				flush()
				segs = append(segs, segment{kind: segGroup, group: g})
				i = end + 1
				continue
			}

			digitsEnd := i + 1
			for digitsEnd < len(src) && src[digitsEnd] >= '0' && src[digitsEnd] <= '9' {
				digitsEnd++
			}
			digits := string(src[i+1 : digitsEnd])
			if digits == "" {
				lit.WriteByte('$')
				i++
				continue
			}

			matched := false
			for k := len(digits); k >= 1; k-- {
				n, err := strconv.Atoi(digits[:k])
				if err != nil {
					continue
				}
				if n < pat.NumCaptures {
					flush()
					segs = append(segs, segment{kind: segGroup, group: n})
					for _, r := range digits[k:] {
						lit.WriteRune(r)
					}
					i = i + 1 + k
					matched = true
					break
				}
			}
			if !matched {
				lit.WriteByte('$')
				i++
			}

		default:
			lit.WriteRune(c)
			i++
		}
	}
	flush()
	return &Template{segs: segs}, nil
}

// Expand renders the template against src's current match.
func (t *Template) Expand(src Source) (string, error) {
	var b strings.Builder
	for _, seg := range t.segs {
		if seg.kind == segLiteral {
			b.WriteString(seg.lit)
			continue
		}
		s, ok, err := src.Group(seg.group)
		if err != nil {
			return "", err
		}
		if ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
