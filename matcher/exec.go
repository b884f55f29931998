package matcher

import (
	"time"

	"github.com/coregx/uregex/program"
	"github.com/coregx/uregex/ucode"
)

// attempt resets per-search scratch state and runs the program from pc=0
// starting at pos. On success it fills in group 0's bounds from pos and
// m.stopPos and marks m.haveMatch.
func (m *Matcher) attempt(pos int) (bool, error) {
	for i := range m.caps {
		m.caps[i] = -1
	}
	m.steps = 0
	m.depth = 0
	m.hitEnd = false
	m.stackOverflow = false
	m.timedOut = false
	m.stoppedByUser = false

	ok := m.match(0, pos)

	if m.stackOverflow {
		return false, program.NewRuntimeError(program.StackOverflow, "match recursion exceeded the configured limit")
	}
	if m.timedOut {
		return false, program.NewRuntimeError(program.TimeOut, "match attempt exceeded its deadline")
	}
	if m.stoppedByUser {
		return false, program.NewRuntimeError(program.StoppedByCaller, "match attempt stopped by callback")
	}
	if !ok {
		m.haveMatch = false
		return false, nil
	}
	m.caps[0] = int32(pos)
	m.caps[1] = int32(m.stopPos)
	m.haveMatch = true
	m.requireEnd = m.hitEnd && m.stopPos == m.inputEnd()
	return true, nil
}

// checkLimits polls the deadline and callback. It is called periodically
// rather than on every step to keep the hot path cheap.
func (m *Matcher) checkLimits() bool {
	l := m.limits
	if !l.Deadline.IsZero() && !time.Now().Before(l.Deadline) {
		m.timedOut = true
		return false
	}
	if l.Callback != nil && !l.Callback() {
		m.stoppedByUser = true
		return false
	}
	return true
}

// match is the engine's single recursive dispatch point: it executes pc and
// (for opcodes that consume or branch) recurses into whatever comes next,
// returning true the instant some continuation reaches a terminal success
// marker (OpEnd, OpLookEnd, OpAtomicEnd). Depth-first, first success wins —
// exactly the BoundedBacktracker's shape, generalized to this engine's
// richer opcode set.
//
//nolint:gocyclo // complexity is inherent to bytecode dispatch
func (m *Matcher) match(pc int32, pos int) bool {
	if m.stackOverflow || m.timedOut || m.stoppedByUser {
		return false
	}
	m.steps++
	if m.steps%m.limits.callbackInterval() == 0 {
		if !m.checkLimits() {
			return false
		}
	}
	m.depth++
	if m.depth > m.limits.maxStackDepth() {
		m.stackOverflow = true
		m.depth--
		return false
	}
	ok := m.dispatch(pc, pos)
	m.depth--
	return ok
}

func (m *Matcher) dispatch(pc int32, pos int) bool {
	inst := m.pat.Program[pc]
	switch inst.Op {
	case program.OpChar:
		r, next := m.in.Next(pos)
		if r == ucode.Sentinel {
			m.hitEnd = true
			return false
		}
		if r != rune(inst.X) {
			return false
		}
		return m.match(pc+1, next)

	case program.OpSet:
		r, next := m.in.Next(pos)
		if r == ucode.Sentinel {
			m.hitEnd = true
			return false
		}
		if !m.pat.Sets[inst.X].Contains(r) {
			return false
		}
		return m.match(pc+1, next)

	case program.OpAny:
		r, next := m.in.Next(pos)
		if r == ucode.Sentinel {
			m.hitEnd = true
			return false
		}
		if ucode.IsLineTerminator(r, m.unixLines()) {
			return false
		}
		return m.match(pc+1, next)

	case program.OpAnyNL:
		r, next := m.in.Next(pos)
		if r == ucode.Sentinel {
			m.hitEnd = true
			return false
		}
		return m.match(pc+1, next)

	case program.OpLiteralString:
		return m.matchLiteral(pc, pos, m.pat.Literals[inst.X], false)

	case program.OpLiteralStringCI:
		return m.matchLiteral(pc, pos, m.pat.Literals[inst.X], true)

	case program.OpBOL:
		if !m.atLineStart(pos, inst.X != 0) {
			return false
		}
		return m.match(pc+1, pos)

	case program.OpEOL:
		if !m.atLineEnd(pos, inst.X != 0) {
			return false
		}
		return m.match(pc+1, pos)

	case program.OpBOI:
		if pos != m.inputStart() {
			return false
		}
		return m.match(pc+1, pos)

	case program.OpEOI:
		if pos != m.inputEnd() {
			return false
		}
		m.hitEnd = true
		return m.match(pc+1, pos)

	case program.OpEOIOptNL:
		return m.dispatchEOIOptNL(pc, pos)

	case program.OpWordBoundary:
		if !m.isWordBoundary(pos) {
			return false
		}
		return m.match(pc+1, pos)

	case program.OpNotWordBoundary:
		if m.isWordBoundary(pos) {
			return false
		}
		return m.match(pc+1, pos)

	case program.OpPrevMatchEnd:
		want := m.prevMatchEnd
		if want < 0 {
			want = m.regionStart
		}
		if pos != want {
			return false
		}
		return m.match(pc+1, pos)

	case program.OpJmp:
		return m.match(inst.X, pos)

	case program.OpSplit:
		if m.match(inst.X, pos) {
			return true
		}
		return m.match(inst.Y, pos)

	case program.OpSave:
		old := m.caps[inst.X]
		m.caps[inst.X] = int32(pos)
		if m.match(pc+1, pos) {
			return true
		}
		m.caps[inst.X] = old
		return false

	case program.OpBackref:
		return m.matchBackref(pc, pos, int(inst.X), false)

	case program.OpBackrefCI:
		return m.matchBackref(pc, pos, int(inst.X), true)

	case program.OpLoopMark:
		m.marks[inst.X] = int32(pos)
		return m.match(pc+1, pos)

	case program.OpLoopCheck:
		if m.marks[inst.X] == int32(pos) {
			return m.match(inst.Y, pos)
		}
		return m.match(pc+1, pos)

	case program.OpLookStart:
		return m.dispatchLookStart(program.LookKind(inst.X), inst.Y, pos)

	case program.OpLookEnd:
		return m.dispatchLookEnd(inst.X, pos)

	case program.OpAtomicStart:
		bodyStart := pc + 1
		if !m.match(bodyStart, pos) {
			return false
		}
		return m.match(inst.Y+1, m.stopPos)

	case program.OpAtomicEnd:
		m.stopPos = pos
		return true

	case program.OpEnd:
		m.stopPos = pos
		return true

	case program.OpFail:
		return false

	default:
		return false
	}
}

func (m *Matcher) dispatchEOIOptNL(pc int32, pos int) bool {
	end := m.inputEnd()
	if pos == end {
		m.hitEnd = true
		return m.match(pc+1, pos)
	}
	r, next := m.in.Next(pos)
	if r != ucode.Sentinel && next == end && ucode.IsLineTerminator(r, m.unixLines()) {
		m.hitEnd = true
		return m.match(pc+1, pos)
	}
	return false
}

func (m *Matcher) matchLiteral(pc int32, pos int, s string, ci bool) bool {
	cur := pos
	for _, want := range s {
		got, next := m.in.Next(cur)
		if got == ucode.Sentinel {
			m.hitEnd = true
			return false
		}
		if ci {
			if !ucode.RuneEqualFold(got, want) {
				return false
			}
		} else if got != want {
			return false
		}
		cur = next
	}
	return m.match(pc+1, cur)
}

func (m *Matcher) matchBackref(pc int32, pos int, group int, ci bool) bool {
	s, e := m.caps[2*group], m.caps[2*group+1]
	if s < 0 || e < 0 {
		// A group that did not participate matches the empty string.
		return m.match(pc+1, pos)
	}
	text := m.in.Slice(int(s), int(e))
	return m.matchLiteral(pc, pos, text, ci)
}

func (m *Matcher) dispatchLookStart(kind program.LookKind, idx int32, pos int) bool {
	info := m.pat.Looks[idx]
	switch kind {
	case program.LookAhead:
		if !m.match(info.BodyStart, pos) {
			return false
		}
		return m.match(info.EndPC+1, pos)
	case program.LookAheadNeg:
		if m.match(info.BodyStart, pos) {
			return false
		}
		return m.match(info.EndPC+1, pos)
	case program.LookBehind:
		if !m.tryLookBehind(idx, info, pos) {
			return false
		}
		return m.match(info.EndPC+1, pos)
	case program.LookBehindNeg:
		if m.tryLookBehind(idx, info, pos) {
			return false
		}
		return m.match(info.EndPC+1, pos)
	default:
		return false
	}
}

func (m *Matcher) dispatchLookEnd(idx int32, pos int) bool {
	if target := m.lookBehindTarget[idx]; target >= 0 {
		if int32(pos) != target {
			return false
		}
	}
	m.stopPos = pos
	return true
}

// tryLookBehind probes every candidate starting offset in the compiler-proven
// [MinLen, MaxLen] code-point range, requiring the body to match exactly up
// to pos. It is the bounded-length scan the spec's look-behind design calls
// for, since arbitrary-length look-behind is rejected at compile time.
func (m *Matcher) tryLookBehind(idx int32, info program.LookInfo, pos int) bool {
	for n := info.MinLen; n <= info.MaxLen; n++ {
		start := m.backNCodePoints(pos, n)
		if start < 0 {
			continue
		}
		m.lookBehindTarget[idx] = int32(pos)
		ok := m.match(info.BodyStart, start)
		m.lookBehindTarget[idx] = -1
		if ok {
			return true
		}
	}
	return false
}

func (m *Matcher) backNCodePoints(pos, n int) int {
	cur := pos
	for i := 0; i < n; i++ {
		r, prev := m.in.Prev(cur)
		if r == ucode.Sentinel {
			return -1
		}
		cur = prev
	}
	limit := 0
	if !m.transparentBounds {
		limit = m.regionStart
	}
	if cur < limit {
		return -1
	}
	return cur
}
