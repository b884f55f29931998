package uregex

import (
	"regexp"
	"testing"
)

func TestMatchesWholeRegion(t *testing.T) {
	pat := MustCompile(`st(abc)*ring`, 0)
	m := pat.Matcher("stabcabcring")
	ok, err := m.Matches()
	if err != nil || !ok {
		t.Fatalf("Matches() = %v, %v", ok, err)
	}
	if m.GroupCount() != 1 {
		t.Fatalf("GroupCount() = %d, want 1", m.GroupCount())
	}
	g, participated, err := m.Group(1)
	if err != nil || !participated || g != "abc" {
		t.Fatalf("Group(1) = %q, %v, %v, want \"abc\"", g, participated, err)
	}
}

func TestLookingAtNestedGroups(t *testing.T) {
	pat := MustCompile(`01(23(45)67)(.*)`, 0)
	m := pat.Matcher("0123456789")
	ok, err := m.LookingAt()
	if err != nil || !ok {
		t.Fatalf("LookingAt() = %v, %v", ok, err)
	}
	wantStarts := []int{0, 2, 4, 8}
	wantEnds := []int{10, 8, 6, 10}
	for g := 0; g <= 3; g++ {
		start, _ := m.StartGroup(g)
		end, _ := m.EndGroup(g)
		if start != wantStarts[g] || end != wantEnds[g] {
			t.Errorf("group %d = [%d,%d), want [%d,%d)", g, start, end, wantStarts[g], wantEnds[g])
		}
	}
	g3, _, err := m.Group(3)
	if err != nil || g3 != "89" {
		t.Fatalf("Group(3) = %q, %v", g3, err)
	}
}

func TestFindIteratesAllMatches(t *testing.T) {
	pat := MustCompile(`\d+`, 0)
	m := pat.Matcher("room 12, floor 3, desk 400")
	var got []string
	for {
		ok, err := m.Find()
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if !ok {
			break
		}
		text, _, _ := m.Group(0)
		got = append(got, text)
	}
	want := []string{"12", "3", "400"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindZeroLengthMakesProgress(t *testing.T) {
	pat := MustCompile(`a*`, 0)
	m := pat.Matcher("baab")
	var spans [][2]int
	for {
		ok, err := m.Find()
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if !ok {
			break
		}
		spans = append(spans, [2]int{m.Start(), m.End()})
	}
	want := [][2]int{{0, 0}, {1, 3}, {3, 3}, {4, 4}}
	if len(spans) != len(want) {
		t.Fatalf("spans = %v, want %v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("spans[%d] = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestRegionAndBounds(t *testing.T) {
	pat := MustCompile(`^b`, 0)
	m := pat.Matcher("abc")
	if err := m.Region(1, 3); err != nil {
		t.Fatalf("Region error: %v", err)
	}
	// anchoring bounds: ^ sees the region start as the input start.
	ok, err := m.LookingAt()
	if err != nil || !ok {
		t.Fatalf("LookingAt with anchoring bounds = %v, %v", ok, err)
	}

	m2 := pat.Matcher("abc")
	if err := m2.Region(1, 3); err != nil {
		t.Fatalf("Region error: %v", err)
	}
	m2.UseAnchoringBounds(false)
	ok, err = m2.LookingAt()
	if err != nil {
		t.Fatalf("LookingAt error: %v", err)
	}
	if ok {
		t.Fatal("^ should not match mid-input once anchoring bounds are off")
	}
}

func TestHitEndAndRequireEnd(t *testing.T) {
	pat := MustCompile(`abc$`, 0)
	m := pat.Matcher("xabc")
	ok, err := m.Find()
	if err != nil || !ok {
		t.Fatalf("Find() = %v, %v", ok, err)
	}
	if !m.HitEnd() {
		t.Error("HitEnd() should be true for a $-anchored match at end of input")
	}
	if !m.RequireEnd() {
		t.Error("RequireEnd() should be true for a $-anchored match")
	}
}

func TestInvalidGroupIndexIsRuntimeError(t *testing.T) {
	pat := MustCompile(`a`, 0)
	m := pat.Matcher("a")
	if ok, err := m.Matches(); err != nil || !ok {
		t.Fatalf("Matches() = %v, %v", ok, err)
	}
	if _, err := m.StartGroup(5); err == nil {
		t.Fatal("expected error for out-of-range group")
	}
}

// TestAnchorsAgainstStdlib grounds ^/$ handling against Go's stdlib regexp
// for the subset of syntax both engines share.
func TestAnchorsAgainstStdlib(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
	}{
		{`^test`, "test hello test"},
		{`^[a-z]+`, "hello world"},
		{`test$`, "hello test"},
	}
	for _, tt := range tests {
		re := regexp.MustCompile(tt.pattern)
		want := re.FindStringIndex(tt.input)

		pat := MustCompile(tt.pattern, 0)
		m := pat.Matcher(tt.input)
		ok, err := m.Find()
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if want == nil {
			if ok {
				t.Errorf("%q: expected no match, got one", tt.pattern)
			}
			continue
		}
		if !ok || m.Start() != want[0] || m.End() != want[1] {
			var got [2]int
			if ok {
				got = [2]int{m.Start(), m.End()}
			}
			t.Errorf("%q on %q: got %v, want %v", tt.pattern, tt.input, got, want)
		}
	}
}
