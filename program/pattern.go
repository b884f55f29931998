package program

// Flag is one compilation flag bit. Flags combine with bitwise OR.
type Flag uint32

const (
	CaseInsensitive Flag = 1 << iota
	Comments
	DotAll
	Multiline
	UnixLines
	Literal
	ErrorOnUnknownEscapes
)

// Has reports whether f includes flag bit x.
func (f Flag) Has(x Flag) bool { return f&x != 0 }

// LookKind identifies the direction and polarity of a look-around assertion.
type LookKind uint8

const (
	LookAhead LookKind = iota
	LookAheadNeg
	LookBehind
	LookBehindNeg
)

// LookInfo describes one look-around assertion's bounds. For look-ahead,
// MinLen/MaxLen are unused (look-ahead runs forward from the current
// position with no length bound). For look-behind, the compiler has proven
// the inner expression's match length lies in [MinLen, MaxLen]; MaxLen is
// never unbounded (unbounded look-behind is a LOOK_BEHIND_LIMIT compile error).
type LookInfo struct {
	Kind           LookKind
	MinLen, MaxLen int
	BodyStart      int32 // pc of the first instruction inside the assertion
	EndPC          int32 // pc of the assertion's OpLookEnd instruction
}

// StaticType classifies how a compiled pattern may begin a match, used by
// find's starting-position scan to skip positions that cannot possibly
// succeed.
type StaticType uint8

const (
	// StartUnspec: no useful static information; try every position.
	StartUnspec StaticType = iota
	// StartChar: every match starts with one specific code point.
	StartChar
	// StartSet: every match starts with a code point from InitialChars.
	StartSet
	// StartString: every match starts with the literal InitialString.
	StartString
	// StartLine: the pattern is anchored to the start of a line (^ in
	// MULTILINE).
	StartLine
	// StartAnchor: the pattern is wholly anchored to the start of input (\A,
	// or ^ outside MULTILINE).
	StartAnchor
)

// Pattern is a compiled, immutable regular expression: bytecode plus the
// ancillary tables the compiler derived from the source text. A Pattern may
// be shared by any number of Matchers, including across goroutines, as long
// as no single Matcher is used concurrently with itself.
type Pattern struct {
	Source string
	Flags  Flag

	Program []Inst
	EndPC   int32 // pc of the program's single OpEnd instruction

	Literals []string
	Sets     []CharSet
	Looks    []LookInfo

	// NumCaptures is the number of capture groups including group 0 (the
	// whole match). Slots are 2*NumCaptures wide: group g occupies
	// [2g, 2g+1).
	NumCaptures int
	// GroupNames maps declared group name -> group number.
	GroupNames map[string]int
	// NumberedNames maps group number -> declared name, or "" if unnamed.
	NumberedNames []string

	// NumLoopMarks is how many OpLoopMark/OpLoopCheck slots the program uses.
	NumLoopMarks int

	MinMatchLength int
	StaticType     StaticType
	InitialChars   CharSet
	InitialString  string

	// AltLiterals holds the branch literals when the pattern's leading atom
	// is an alternation of two or more case-sensitive literal strings (e.g.
	// "cat|dog|bird"), letting Find accelerate its candidate scan with a
	// multi-literal search instead of trying every start position. Empty
	// when no such alternation was found, or when StaticType already gives a
	// more precise single string/anchor.
	AltLiterals []string
}

// GroupCount returns the number of capture groups, including group 0.
func (p *Pattern) GroupCount() int { return p.NumCaptures }

// GroupNumberFromName returns the group number for a declared name.
func (p *Pattern) GroupNumberFromName(name string) (int, bool) {
	n, ok := p.GroupNames[name]
	return n, ok
}

// SubexpNames returns a slice indexed by group number giving the declared
// name of each group, or "" for unnamed groups (including group 0).
func (p *Pattern) SubexpNames() []string {
	out := make([]string, len(p.NumberedNames))
	copy(out, p.NumberedNames)
	return out
}

// Equal reports whether p and other were compiled from the same source and
// flags. Per the spec, Pattern equality is defined structurally on
// (source, flags) alone, not on semantic equivalence.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Source == other.Source && p.Flags == other.Flags
}
