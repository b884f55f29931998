package compiler

import "github.com/coregx/uregex/program"

// nodeKind discriminates the parse-tree node shapes produced by the parser
// and consumed by the static-analysis pass and the emitter.
type nodeKind int

const (
	nLiteral nodeKind = iota
	nClass
	nAny
	nConcat
	nAlternate
	nCapture
	nBackref
	nRepeat
	nAtomic
	nLook
	nAnchor
	nEmpty
)

type anchorKind int

const (
	aBOL anchorKind = iota
	aEOL
	aBOI
	aEOI
	aEOIOptNL
	aWordBoundary
	aNotWordBoundary
	aPrevMatchEnd
)

// node is a parse-tree node. Fields not relevant to Kind are left zero.
// Flag state (case-insensitivity, DOTALL, MULTILINE) is resolved at parse
// time and baked into the leaf nodes it affects, rather than carried as a
// separate annotation layer, since ICU's inline (?ims-ims:...) spans are
// lexically scoped and the effective flags at each leaf are exactly what the
// parser already knows when it builds that leaf.
type node struct {
	kind nodeKind

	lit rune // nLiteral
	ci  bool // nLiteral, nClass, nBackref: effective case-insensitivity

	class program.CharSet // nClass

	dotAll bool // nAny

	kids []*node // nConcat, nAlternate children; nCapture/nAtomic/nRepeat/nLook use kids[0]

	groupNum  int    // nCapture
	groupName string // nCapture, "" if unnamed

	backrefNum int // nBackref

	min, max   int  // nRepeat, max == -1 means unbounded
	greedy     bool // nRepeat
	possessive bool // nRepeat

	lookKind program.LookKind // nLook

	anchor    anchorKind // nAnchor
	multiline bool       // nAnchor BOL/EOL effective MULTILINE
}
