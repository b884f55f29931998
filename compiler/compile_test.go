package compiler

import (
	"testing"

	"github.com/coregx/uregex/program"
)

func mustCompile(t *testing.T, pattern string, flags program.Flag) *program.Pattern {
	t.Helper()
	pat, err := Compile(pattern, flags, DefaultConfig())
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", pattern, err)
	}
	return pat
}

func TestCompileSimpleLiteral(t *testing.T) {
	pat := mustCompile(t, "abc", 0)
	if pat.GroupCount() != 1 {
		t.Errorf("GroupCount() = %d, want 1", pat.GroupCount())
	}
	if pat.MinMatchLength != 3 {
		t.Errorf("MinMatchLength = %d, want 3", pat.MinMatchLength)
	}
	if pat.StaticType != program.StartString || pat.InitialString != "abc" {
		t.Errorf("StaticType/InitialString = %v/%q, want StartString/\"abc\"", pat.StaticType, pat.InitialString)
	}
}

func TestCompileStartAnchor(t *testing.T) {
	pat := mustCompile(t, `^abc`, 0)
	if pat.StaticType != program.StartAnchor {
		t.Errorf("StaticType = %v, want StartAnchor", pat.StaticType)
	}
}

func TestCompileMultilineStartLine(t *testing.T) {
	pat := mustCompile(t, `^abc`, program.Multiline)
	if pat.StaticType != program.StartLine {
		t.Errorf("StaticType = %v, want StartLine", pat.StaticType)
	}
}

func TestCompileAlternationLiterals(t *testing.T) {
	pat := mustCompile(t, `cat|dog|bird`, 0)
	want := []string{"cat", "dog", "bird"}
	if len(pat.AltLiterals) != len(want) {
		t.Fatalf("AltLiterals = %v, want %v", pat.AltLiterals, want)
	}
	for i, s := range want {
		if pat.AltLiterals[i] != s {
			t.Errorf("AltLiterals[%d] = %q, want %q", i, pat.AltLiterals[i], s)
		}
	}
}

func TestCompileNamedGroups(t *testing.T) {
	pat := mustCompile(t, `(?<user>\w+)@(?<host>\w+)`, 0)
	if pat.GroupCount() != 3 {
		t.Fatalf("GroupCount() = %d, want 3", pat.GroupCount())
	}
	if n, ok := pat.GroupNumberFromName("user"); !ok || n != 1 {
		t.Errorf("GroupNumberFromName(user) = %d, %v, want 1, true", n, ok)
	}
	if n, ok := pat.GroupNumberFromName("host"); !ok || n != 2 {
		t.Errorf("GroupNumberFromName(host) = %d, %v, want 2, true", n, ok)
	}
	names := pat.SubexpNames()
	if names[1] != "user" || names[2] != "host" {
		t.Errorf("SubexpNames() = %v, want [_, user, host]", names)
	}
}

func TestCompileUnboundedLookBehindRejected(t *testing.T) {
	_, err := Compile(`(?<=a*)b`, 0, DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for unbounded look-behind")
	}
	if err.Kind != program.LookBehindLimit {
		t.Errorf("Kind = %v, want LookBehindLimit", err.Kind)
	}
}

func TestCompileBoundedLookBehindAccepted(t *testing.T) {
	mustCompile(t, `(?<=abc)def`, 0)
}

func TestCompileBadIntervalMaxLtMin(t *testing.T) {
	_, err := Compile(`a{5,2}`, 0, DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for {5,2}")
	}
	if err.Kind != program.MaxLtMin {
		t.Errorf("Kind = %v, want MaxLtMin", err.Kind)
	}
}

func TestCompileMismatchedParen(t *testing.T) {
	_, err := Compile(`(abc`, 0, DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for unclosed group")
	}
	if err.Kind != program.MismatchedParen {
		t.Errorf("Kind = %v, want MismatchedParen", err.Kind)
	}
}

func TestCompileDuplicateCaptureGroupName(t *testing.T) {
	_, err := Compile(`(?<x>a)(?<x>b)`, 0, DefaultConfig())
	if err == nil {
		t.Fatal("expected an error for a duplicate capture group name")
	}
	if err.Kind != program.InvalidCaptureGroupName {
		t.Errorf("Kind = %v, want InvalidCaptureGroupName", err.Kind)
	}
}

func TestCompileInvalidConfigRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRecursionDepth = 1
	_, err := Compile(`a`, 0, cfg)
	if err == nil || err.Kind != program.IllegalArgument {
		t.Fatalf("Compile with invalid config = %v, want IllegalArgument", err)
	}
}

func TestCompileRepeatMinMaxLength(t *testing.T) {
	pat := mustCompile(t, `a{2,4}`, 0)
	if pat.MinMatchLength != 2 {
		t.Errorf("MinMatchLength = %d, want 2", pat.MinMatchLength)
	}
}

func TestPatternEqualIsStructural(t *testing.T) {
	a := mustCompile(t, `abc`, 0)
	b := mustCompile(t, `abc`, 0)
	if !a.Equal(b) {
		t.Error("two Patterns compiled from the same source/flags should be Equal")
	}
	c := mustCompile(t, `abc`, program.CaseInsensitive)
	if a.Equal(c) {
		t.Error("Patterns with different flags should not be Equal")
	}
}

func TestDecodeEscapeSimpleAndHex(t *testing.T) {
	r, pos, err := DecodeEscape([]rune("n"), 0)
	if err != nil || r != '\n' || pos != 1 {
		t.Fatalf("DecodeEscape(n) = %q, %d, %v", r, pos, err)
	}
	r, pos, err = DecodeEscape([]rune("x41"), 0)
	if err != nil || r != 'A' || pos != 3 {
		t.Fatalf("DecodeEscape(x41) = %q, %d, %v", r, pos, err)
	}
}

func TestDecodeEscapeTrailingBackslash(t *testing.T) {
	_, _, err := DecodeEscape([]rune{}, 0)
	if err == nil || err.Kind != program.BadEscapeSequence {
		t.Fatalf("DecodeEscape on empty input = %v, want BadEscapeSequence", err)
	}
}
