package compiler

import "github.com/coregx/uregex/program"

// minMaxLen computes a conservative [min, max] match length in code points
// for n. max == -1 means unbounded. This backs both Pattern.MinMatchLength
// (spec.md §4.3) and the bounded look-behind length computation (§4.3,
// "the compiler computes min and max match lengths for the inner
// expression").
func minMaxLen(n *node) (min, max int) {
	switch n.kind {
	case nLiteral, nClass, nAny:
		return 1, 1
	case nEmpty:
		return 0, 0
	case nAnchor:
		return 0, 0
	case nBackref:
		// Conservative: a non-participating group matches empty, so the
		// lower bound is 0; upper bound is unknown.
		return 0, -1
	case nConcat:
		tmin, tmax := 0, 0
		for _, k := range n.kids {
			kmin, kmax := minMaxLen(k)
			tmin += kmin
			if tmax == -1 || kmax == -1 {
				tmax = -1
			} else {
				tmax += kmax
			}
		}
		return tmin, tmax
	case nAlternate:
		first := true
		var rmin, rmax int
		for _, k := range n.kids {
			kmin, kmax := minMaxLen(k)
			if first {
				rmin, rmax = kmin, kmax
				first = false
				continue
			}
			if kmin < rmin {
				rmin = kmin
			}
			if rmax == -1 || kmax == -1 {
				rmax = -1
			} else if kmax > rmax {
				rmax = kmax
			}
		}
		return rmin, rmax
	case nCapture, nAtomic:
		return minMaxLen(n.kids[0])
	case nLook:
		return 0, 0
	case nRepeat:
		kmin, kmax := minMaxLen(n.kids[0])
		rmin := kmin * n.min
		var rmax int
		if n.max == -1 || kmax == -1 {
			if n.max == 0 {
				rmax = 0
			} else {
				rmax = -1
			}
		} else {
			rmax = kmax * n.max
		}
		return rmin, rmax
	default:
		return 0, -1
	}
}

// leadingAnchorKind reports whether every match of n must begin at the start
// of input (kind = StartAnchor) or merely at a line start under MULTILINE
// (kind = StartLine). It inspects only the leading mandatory atom(s) of a
// concatenation, which is a conservative (sound but incomplete) analysis:
// false negatives just forgo an optimization, never cause a missed match.
func leadingAnchorKind(n *node) program.StaticType {
	switch n.kind {
	case nAnchor:
		switch n.anchor {
		case aBOI:
			return program.StartAnchor
		case aBOL:
			if n.multiline {
				return program.StartLine
			}
			return program.StartAnchor
		}
		return program.StartUnspec
	case nConcat:
		if len(n.kids) == 0 {
			return program.StartUnspec
		}
		return leadingAnchorKind(n.kids[0])
	case nCapture, nAtomic:
		return leadingAnchorKind(n.kids[0])
	case nAlternate:
		kind := leadingAnchorKind(n.kids[0])
		if kind == program.StartUnspec {
			return program.StartUnspec
		}
		for _, k := range n.kids[1:] {
			if leadingAnchorKind(k) != kind {
				return program.StartUnspec
			}
		}
		return kind
	default:
		return program.StartUnspec
	}
}

// literalPrefix returns the longest run of leading mandatory, case-sensitive
// literal code points n is guaranteed to start with, as a string. It only
// looks through a top-level nConcat; any other node yields its own rune if it
// is a case-sensitive literal and "" otherwise.
func literalPrefix(n *node) string {
	var kids []*node
	switch n.kind {
	case nConcat:
		kids = n.kids
	default:
		kids = []*node{n}
	}
	runes := make([]rune, 0, len(kids))
	for _, k := range kids {
		if k.kind != nLiteral || k.ci {
			break
		}
		runes = append(runes, k.lit)
	}
	return string(runes)
}

// altLiterals returns the branch texts when n (or n's first concatenation
// child) is an alternation of two or more plain, case-sensitive literal
// runs, letting the compiler hand Find a multi-literal prefilter instead of
// a position-by-position scan. It returns nil when no such shape is found.
func altLiterals(n *node) []string {
	target := n
	if n.kind == nConcat && len(n.kids) > 0 {
		target = n.kids[0]
	}
	if target.kind != nAlternate || len(target.kids) < 2 {
		return nil
	}
	out := make([]string, 0, len(target.kids))
	for _, branch := range target.kids {
		s, ok := literalRun(branch)
		if !ok || s == "" {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// literalRun reports whether n is wholly composed of mandatory,
// case-sensitive literal runes (a single literal, or a concatenation of
// them), returning the resulting text.
func literalRun(n *node) (string, bool) {
	switch n.kind {
	case nLiteral:
		if n.ci {
			return "", false
		}
		return string(n.lit), true
	case nConcat:
		var runes []rune
		for _, k := range n.kids {
			if k.kind != nLiteral || k.ci {
				return "", false
			}
			runes = append(runes, k.lit)
		}
		return string(runes), true
	default:
		return "", false
	}
}

// firstCharSet returns the set of code points n's first mandatory atom may
// be, if that can be determined without ambiguity, and whether it found one.
func firstCharSet(n *node) (program.CharSet, bool) {
	switch n.kind {
	case nLiteral:
		cs := program.CharSet{}
		if n.ci {
			for _, v := range simpleFoldVariants(n.lit) {
				cs.AddRune(v)
			}
		} else {
			cs.AddRune(n.lit)
		}
		return cs, true
	case nClass:
		return n.class, true
	case nConcat:
		if len(n.kids) == 0 {
			return program.CharSet{}, false
		}
		return firstCharSet(n.kids[0])
	case nCapture, nAtomic:
		return firstCharSet(n.kids[0])
	case nRepeat:
		if n.min >= 1 {
			return firstCharSet(n.kids[0])
		}
		return program.CharSet{}, false
	case nAlternate:
		cs, ok := firstCharSet(n.kids[0])
		if !ok {
			return program.CharSet{}, false
		}
		for _, k := range n.kids[1:] {
			kcs, kok := firstCharSet(k)
			if !kok {
				return program.CharSet{}, false
			}
			cs.Union(kcs)
		}
		return cs, true
	default:
		return program.CharSet{}, false
	}
}
