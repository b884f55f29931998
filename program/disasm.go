package program

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders the program as a human-readable instruction listing,
// one instruction per line. It exists for tests and debugging tooling in
// place of a logging dependency: internal state is made inspectable by
// rendering it as plain text, not by emitting log records.
func (p *Pattern) Disassemble() string {
	var b strings.Builder
	for pc, inst := range p.Program {
		fmt.Fprintf(&b, "%4d  %s", pc, inst.Op)
		switch inst.Op {
		case OpChar:
			fmt.Fprintf(&b, " %q", rune(inst.X))
		case OpSet:
			fmt.Fprintf(&b, " sets[%d]", inst.X)
		case OpLiteralString, OpLiteralStringCI:
			fmt.Fprintf(&b, " literals[%d]=%q", inst.X, p.literalAt(int(inst.X)))
		case OpJmp:
			fmt.Fprintf(&b, " -> %d", inst.X)
		case OpSplit:
			fmt.Fprintf(&b, " -> %d, %d", inst.X, inst.Y)
		case OpSave:
			fmt.Fprintf(&b, " slot[%d]", inst.X)
		case OpBackref, OpBackrefCI:
			fmt.Fprintf(&b, " group %d", inst.X)
		case OpLoopMark:
			fmt.Fprintf(&b, " mark[%d]", inst.X)
		case OpLoopCheck:
			fmt.Fprintf(&b, " mark[%d] else -> %d", inst.X, inst.Y)
		case OpLookStart:
			fmt.Fprintf(&b, " kind=%d looks[%d]", inst.X, inst.Y)
		case OpLookEnd, OpAtomicStart, OpAtomicEnd:
			fmt.Fprintf(&b, " id=%d", inst.X)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Pattern) literalAt(idx int) string {
	if idx < 0 || idx >= len(p.Literals) {
		return ""
	}
	return p.Literals[idx]
}

// GoString implements fmt.GoStringer so %#v on a Pattern prints something
// legible instead of dumping the raw slices.
func (p *Pattern) GoString() string {
	return "program.Pattern{Source: " + strconv.Quote(p.Source) + ", Flags: " +
		strconv.FormatUint(uint64(p.Flags), 2) + "}"
}
