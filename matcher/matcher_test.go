package matcher

import (
	"testing"
	"time"

	"github.com/coregx/uregex/compiler"
	"github.com/coregx/uregex/program"
)

func compile(t *testing.T, pattern string, flags program.Flag) *program.Pattern {
	t.Helper()
	pat, err := compiler.Compile(pattern, flags, compiler.DefaultConfig())
	if err != nil {
		t.Fatalf("compile(%q) error: %v", pattern, err)
	}
	return pat
}

func TestMatchesAnchorsBothEnds(t *testing.T) {
	m := New(compile(t, `ab+c`, 0), "abbbc")
	ok, err := m.Matches()
	if err != nil || !ok {
		t.Fatalf("Matches() = %v, %v, want true, nil", ok, err)
	}

	m2 := New(compile(t, `ab+c`, 0), "abbbcd")
	ok, err = m2.Matches()
	if err != nil || ok {
		t.Fatalf("Matches() on trailing extra text = %v, %v, want false, nil", ok, err)
	}
}

func TestLookingAtAnchorsStartOnly(t *testing.T) {
	m := New(compile(t, `ab+`, 0), "abbbcd")
	ok, err := m.LookingAt()
	if err != nil || !ok {
		t.Fatalf("LookingAt() = %v, %v, want true, nil", ok, err)
	}
	if m.End() != 4 {
		t.Errorf("End() = %d, want 4", m.End())
	}
}

func TestFindResumesAndCapturesGroups(t *testing.T) {
	m := New(compile(t, `(\d+)`, 0), "a1 b22 c333")
	var groups []string
	for {
		ok, err := m.Find()
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if !ok {
			break
		}
		g, participated, err := m.Group(1)
		if err != nil || !participated {
			t.Fatalf("Group(1) = %q, %v, %v", g, participated, err)
		}
		groups = append(groups, g)
	}
	want := []string{"1", "22", "333"}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("groups[%d] = %q, want %q", i, groups[i], want[i])
		}
	}
}

func TestNonParticipatingGroupReportsFalse(t *testing.T) {
	m := New(compile(t, `(a)|(b)`, 0), "b")
	ok, err := m.Matches()
	if err != nil || !ok {
		t.Fatalf("Matches() = %v, %v", ok, err)
	}
	if _, participated, _ := m.Group(1); participated {
		t.Error("group 1 should not have participated")
	}
	text, participated, _ := m.Group(2)
	if !participated || text != "b" {
		t.Errorf("Group(2) = %q, %v, want \"b\", true", text, participated)
	}
}

func TestRegionBoundsOutOfRange(t *testing.T) {
	m := New(compile(t, `a`, 0), "abc")
	if err := m.Region(-1, 2); err == nil {
		t.Error("expected an error for a negative region start")
	}
	if err := m.Region(0, 10); err == nil {
		t.Error("expected an error for a region end past input length")
	}
	if err := m.Region(2, 1); err == nil {
		t.Error("expected an error when start > end")
	}
}

func TestStackOverflowOnPathologicalBacktracking(t *testing.T) {
	m := New(compile(t, `(a*)*b`, 0), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaac")
	m.SetLimits(Limits{MaxStackDepth: 64})
	_, err := m.Matches()
	if err == nil {
		t.Fatal("expected a stack overflow runtime error")
	}
	rerr, ok := err.(*program.RuntimeError)
	if !ok || rerr.Kind != program.StackOverflow {
		t.Fatalf("err = %v, want a StackOverflow RuntimeError", err)
	}
}

func TestDeadlineProducesTimeOut(t *testing.T) {
	m := New(compile(t, `(a|a)*b`, 0), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaac")
	m.SetLimits(Limits{Deadline: time.Now().Add(-time.Millisecond)})
	_, err := m.Matches()
	if err == nil {
		t.Fatal("expected a time-out runtime error")
	}
	rerr, ok := err.(*program.RuntimeError)
	if !ok || rerr.Kind != program.TimeOut {
		t.Fatalf("err = %v, want a TimeOut RuntimeError", err)
	}
}

func TestCallbackStopsSearch(t *testing.T) {
	m := New(compile(t, `(a|a)*b`, 0), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaac")
	m.SetLimits(Limits{CallbackInterval: 1, Callback: func() bool { return false }})
	_, err := m.Matches()
	if err == nil {
		t.Fatal("expected a stopped-by-caller runtime error")
	}
	rerr, ok := err.(*program.RuntimeError)
	if !ok || rerr.Kind != program.StoppedByCaller {
		t.Fatalf("err = %v, want a StoppedByCaller RuntimeError", err)
	}
}

func TestWordBoundary(t *testing.T) {
	m := New(compile(t, `\bcat\b`, 0), "a cat sat")
	ok, err := m.Find()
	if err != nil || !ok {
		t.Fatalf("Find() = %v, %v", ok, err)
	}
	if m.Start() != 2 || m.End() != 5 {
		t.Errorf("match span = [%d,%d), want [2,5)", m.Start(), m.End())
	}
}

func TestBackreference(t *testing.T) {
	m := New(compile(t, `(\w+) \1`, 0), "hello hello world")
	ok, err := m.Find()
	if err != nil || !ok {
		t.Fatalf("Find() = %v, %v", ok, err)
	}
	if text, _, _ := m.Group(0); text != "hello hello" {
		t.Errorf("Group(0) = %q, want \"hello hello\"", text)
	}
}

func TestAtomicGroupPreventsBacktrackIntoBody(t *testing.T) {
	m := New(compile(t, `(?>a+)a`, 0), "aaaa")
	ok, err := m.Matches()
	if err != nil {
		t.Fatalf("Matches() error: %v", err)
	}
	if ok {
		t.Error("an atomic group must not backtrack its body to let the trailing 'a' match")
	}
}

func TestLookAheadAndNegativeLookAhead(t *testing.T) {
	m := New(compile(t, `foo(?=bar)`, 0), "foobar")
	ok, err := m.Find()
	if err != nil || !ok || m.End() != 3 {
		t.Fatalf("Find() = %v, %v, End=%d, want true, nil, 3", ok, err, m.End())
	}

	m2 := New(compile(t, `foo(?!bar)`, 0), "foobaz")
	ok, err = m2.Find()
	if err != nil || !ok || m2.End() != 3 {
		t.Fatalf("Find() (neg look-ahead) = %v, %v, End=%d, want true, nil, 3", ok, err, m2.End())
	}
}

func TestBoundedLookBehind(t *testing.T) {
	m := New(compile(t, `(?<=foo)bar`, 0), "foobar")
	ok, err := m.Find()
	if err != nil || !ok || m.Start() != 3 {
		t.Fatalf("Find() = %v, %v, Start=%d, want true, nil, 3", ok, err, m.Start())
	}

	m2 := New(compile(t, `(?<!foo)bar`, 0), "xxxbar")
	ok, err = m2.Find()
	if err != nil || !ok || m2.Start() != 3 {
		t.Fatalf("Find() (neg look-behind) = %v, %v, Start=%d, want true, nil, 3", ok, err, m2.Start())
	}
}

func TestResetRebindsInputAndClearsState(t *testing.T) {
	pat := compile(t, `\d+`, 0)
	m := New(pat, "a1")
	if ok, _ := m.Find(); !ok {
		t.Fatal("first Find() should succeed")
	}
	m.Reset("b22")
	ok, err := m.Find()
	if err != nil || !ok {
		t.Fatalf("Find() after Reset = %v, %v", ok, err)
	}
	if text, _, _ := m.Group(0); text != "22" {
		t.Errorf("Group(0) after Reset = %q, want \"22\"", text)
	}
}
