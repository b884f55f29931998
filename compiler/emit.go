package compiler

import "github.com/coregx/uregex/program"

// emitter walks a parse tree and appends bytecode to a single flat
// instruction slice, in the style of a Thompson-construction compiler except
// that jump targets are real pcs (patched once their destination is known)
// rather than patch lists, since the tree is fully available up front.
type emitter struct {
	insts []program.Inst

	literals []string
	sets     []program.CharSet
	looks    []program.LookInfo

	numLoopMarks int
	nextAtomicID int32

	cfg Config
}

func newEmitter(cfg Config) *emitter {
	return &emitter{cfg: cfg}
}

func (e *emitter) here() int32 { return int32(len(e.insts)) }

func (e *emitter) emit(op program.Opcode, x, y int32) int32 {
	pc := e.here()
	e.insts = append(e.insts, program.Inst{Op: op, X: x, Y: y})
	return pc
}

func (e *emitter) patch(pc int32, x, y int32) {
	e.insts[pc].X = x
	e.insts[pc].Y = y
}

func (e *emitter) patchY(pc int32, y int32) {
	e.insts[pc].Y = y
}

func (e *emitter) registerSet(cs program.CharSet) int32 {
	idx := int32(len(e.sets))
	e.sets = append(e.sets, cs)
	return idx
}

func (e *emitter) registerLiteral(s string) int32 {
	idx := int32(len(e.literals))
	e.literals = append(e.literals, s)
	return idx
}

func (e *emitter) allocLoopMark() int32 {
	slot := int32(e.numLoopMarks)
	e.numLoopMarks++
	return slot
}

func (e *emitter) allocAtomicID() int32 {
	id := e.nextAtomicID
	e.nextAtomicID++
	return id
}

func (e *emitter) tooBig() *program.CompileError {
	if len(e.insts) > e.cfg.MaxProgramInstructions {
		return &program.CompileError{Kind: program.PatternTooBig, Message: "compiled program exceeds maximum instruction count"}
	}
	return nil
}

// compile emits n and everything under it, returning a compile error only
// for resource-limit violations (look-behind length, program size); the
// grammar itself was already validated during parsing.
func (e *emitter) compile(n *node) *program.CompileError {
	if err := e.tooBig(); err != nil {
		return err
	}
	switch n.kind {
	case nEmpty:
		return nil
	case nLiteral:
		return e.compileLiteral(n)
	case nClass:
		e.emit(program.OpSet, e.registerSet(n.class), 0)
		return nil
	case nAny:
		if n.dotAll {
			e.emit(program.OpAnyNL, 0, 0)
		} else {
			e.emit(program.OpAny, 0, 0)
		}
		return nil
	case nAnchor:
		return e.compileAnchor(n)
	case nBackref:
		op := program.OpBackref
		if n.ci {
			op = program.OpBackrefCI
		}
		e.emit(op, int32(n.backrefNum), 0)
		return nil
	case nConcat:
		return e.compileConcat(n)
	case nAlternate:
		return e.compileAlternate(n)
	case nCapture:
		e.emit(program.OpSave, int32(2*n.groupNum), 0)
		if err := e.compile(n.kids[0]); err != nil {
			return err
		}
		e.emit(program.OpSave, int32(2*n.groupNum+1), 0)
		return nil
	case nAtomic:
		return e.compileAtomicBody(n.kids[0])
	case nLook:
		return e.compileLook(n)
	case nRepeat:
		return e.compileRepeat(n)
	default:
		return &program.CompileError{Kind: program.Unimplemented, Message: "unhandled node kind"}
	}
}

func (e *emitter) compileLiteral(n *node) *program.CompileError {
	if n.ci {
		cs := program.CharSet{}
		for _, v := range simpleFoldVariants(n.lit) {
			cs.AddRune(v)
		}
		if cs.IsEmpty() {
			cs.AddRune(n.lit)
		}
		e.emit(program.OpSet, e.registerSet(cs), 0)
		return nil
	}
	e.emit(program.OpChar, n.lit, 0)
	return nil
}

func (e *emitter) compileAnchor(n *node) *program.CompileError {
	ml := int32(0)
	if n.multiline {
		ml = 1
	}
	switch n.anchor {
	case aBOL:
		e.emit(program.OpBOL, ml, 0)
	case aEOL:
		e.emit(program.OpEOL, ml, 0)
	case aBOI:
		e.emit(program.OpBOI, 0, 0)
	case aEOI:
		e.emit(program.OpEOI, 0, 0)
	case aEOIOptNL:
		e.emit(program.OpEOIOptNL, 0, 0)
	case aWordBoundary:
		e.emit(program.OpWordBoundary, 0, 0)
	case aNotWordBoundary:
		e.emit(program.OpNotWordBoundary, 0, 0)
	case aPrevMatchEnd:
		e.emit(program.OpPrevMatchEnd, 0, 0)
	}
	return nil
}

// compileConcat collapses runs of two or more consecutive plain literal
// children sharing the same case-sensitivity into a single pooled
// OpLiteralString/OpLiteralStringCI instruction instead of one OpChar/OpSet
// per rune, the same multi-character fast path the teacher's literal
// extractor looks for at the NFA level.
func (e *emitter) compileConcat(n *node) *program.CompileError {
	kids := n.kids
	i := 0
	for i < len(kids) {
		if isPlainLiteral(kids[i]) {
			j := i + 1
			for j < len(kids) && isPlainLiteral(kids[j]) && kids[j].ci == kids[i].ci {
				j++
			}
			if j-i >= 2 {
				runes := make([]rune, 0, j-i)
				for k := i; k < j; k++ {
					runes = append(runes, kids[k].lit)
				}
				s := string(runes)
				idx := e.registerLiteral(s)
				op := program.OpLiteralString
				if kids[i].ci {
					op = program.OpLiteralStringCI
				}
				e.emit(op, idx, 0)
				i = j
				continue
			}
		}
		if err := e.compile(kids[i]); err != nil {
			return err
		}
		i++
	}
	return nil
}

func isPlainLiteral(n *node) bool { return n.kind == nLiteral }

// compileAlternate emits a right-leaning chain of OpSplit instructions:
// Alt(b1, b2, ..., bk) becomes Split(b1, Split(b2, ... bk)).
func (e *emitter) compileAlternate(n *node) *program.CompileError {
	var endJmps []int32
	for i, branch := range n.kids {
		last := i == len(n.kids)-1
		if last {
			if err := e.compile(branch); err != nil {
				return err
			}
			break
		}
		splitPc := e.emit(program.OpSplit, 0, 0)
		bodyStart := e.here()
		if err := e.compile(branch); err != nil {
			return err
		}
		jmpPc := e.emit(program.OpJmp, 0, 0)
		endJmps = append(endJmps, jmpPc)
		nextBranch := e.here()
		e.patch(splitPc, bodyStart, nextBranch)
	}
	end := e.here()
	for _, jmpPc := range endJmps {
		e.patch(jmpPc, end, 0)
	}
	return nil
}

// compileAtomicBody wraps child in OpAtomicStart/OpAtomicEnd markers: the
// matcher runs the body to completion as a self-contained sub-match and, on
// success, commits to it, never backtracking into alternatives inside once
// control has moved past OpAtomicEnd.
func (e *emitter) compileAtomicBody(child *node) *program.CompileError {
	id := e.allocAtomicID()
	startPc := e.emit(program.OpAtomicStart, id, 0)
	if err := e.compile(child); err != nil {
		return err
	}
	endPc := e.emit(program.OpAtomicEnd, id, 0)
	e.patchY(startPc, endPc)
	return nil
}

// compileLook emits a look-around assertion. Look-ahead bodies run forward
// from the current position with no length bound; look-behind bodies must
// have a compiler-proven bounded match length (unbounded look-behind is
// rejected as LOOK_BEHIND_LIMIT), since the matcher evaluates look-behind by
// trying each candidate starting offset in [pos-MaxLen, pos-MinLen].
func (e *emitter) compileLook(n *node) *program.CompileError {
	info := program.LookInfo{Kind: n.lookKind}
	if n.lookKind == program.LookBehind || n.lookKind == program.LookBehindNeg {
		min, max := minMaxLen(n.kids[0])
		if max == -1 {
			return &program.CompileError{Kind: program.LookBehindLimit, Message: "look-behind body has unbounded length"}
		}
		info.MinLen, info.MaxLen = min, max
	}
	idx := int32(len(e.looks))
	e.looks = append(e.looks, info)

	startPc := e.emit(program.OpLookStart, int32(n.lookKind), idx)
	bodyStart := e.here()
	_ = startPc
	if err := e.compile(n.kids[0]); err != nil {
		return err
	}
	endPc := e.emit(program.OpLookEnd, idx, 0)
	e.looks[idx].BodyStart = bodyStart
	e.looks[idx].EndPC = endPc
	return nil
}

// compileRepeat emits a quantified atom. Unbounded tails ({n,}, *, +) become
// a genuine back-jumping loop guarded by OpLoopMark/OpLoopCheck so a
// zero-width loop body cannot spin forever; bounded tails ({n,m}) unroll
// into nested optionals instead of a runtime counter slot, trading a larger
// program for a simpler, counter-free VM loop — a deliberate simplification
// over a literal reading of the bytecode model, recorded as such.
// Possessive quantifiers wrap the whole construct (mandatory copies plus
// tail) in an atomic body so no later failure can re-enter it for fewer
// repetitions.
func (e *emitter) compileRepeat(n *node) *program.CompileError {
	if n.min == 0 && n.max == 0 {
		return nil
	}
	var atomicID int32
	var atomicStartPc int32
	if n.possessive {
		atomicID = e.allocAtomicID()
		atomicStartPc = e.emit(program.OpAtomicStart, atomicID, 0)
	}
	for i := 0; i < n.min; i++ {
		if err := e.compile(n.kids[0]); err != nil {
			return err
		}
	}
	if n.max == -1 {
		if err := e.emitStarLoop(n.kids[0], n.greedy); err != nil {
			return err
		}
	} else if n.max > n.min {
		if err := e.emitNestedOptional(n.kids[0], n.max-n.min, n.greedy); err != nil {
			return err
		}
	}
	if n.possessive {
		endPc := e.emit(program.OpAtomicEnd, atomicID, 0)
		e.patchY(atomicStartPc, endPc)
	}
	return nil
}

func (e *emitter) emitStarLoop(child *node, greedy bool) *program.CompileError {
	markSlot := e.allocLoopMark()
	loopHead := e.emit(program.OpLoopMark, markSlot, 0)
	splitPc := e.emit(program.OpSplit, 0, 0)
	bodyStart := e.here()
	if err := e.compile(child); err != nil {
		return err
	}
	checkPc := e.emit(program.OpLoopCheck, markSlot, 0)
	e.emit(program.OpJmp, loopHead, 0)
	exitPc := e.here()
	if greedy {
		e.patch(splitPc, bodyStart, exitPc)
	} else {
		e.patch(splitPc, exitPc, bodyStart)
	}
	e.patchY(checkPc, exitPc)
	return nil
}

func (e *emitter) emitNestedOptional(child *node, depth int, greedy bool) *program.CompileError {
	if depth == 0 {
		return nil
	}
	splitPc := e.emit(program.OpSplit, 0, 0)
	bodyStart := e.here()
	if err := e.compile(child); err != nil {
		return err
	}
	if err := e.emitNestedOptional(child, depth-1, greedy); err != nil {
		return err
	}
	exitPc := e.here()
	if greedy {
		e.patch(splitPc, bodyStart, exitPc)
	} else {
		e.patch(splitPc, exitPc, bodyStart)
	}
	return nil
}
