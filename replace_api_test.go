package uregex

import (
	"strings"
	"testing"
)

func TestMatcherReplaceAll(t *testing.T) {
	pat := MustCompile(`(\w+)@(\w+)`, 0)
	m := pat.Matcher("alice@example, bob@work")
	got, err := m.ReplaceAll(`$2/$1`)
	if err != nil {
		t.Fatalf("ReplaceAll error: %v", err)
	}
	want := "example/alice, work/bob"
	if got != want {
		t.Fatalf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestMatcherReplaceFirst(t *testing.T) {
	pat := MustCompile(`\d+`, 0)
	m := pat.Matcher("a1 b2 c3")
	got, err := m.ReplaceFirst("N")
	if err != nil {
		t.Fatalf("ReplaceFirst error: %v", err)
	}
	if got != "aN b2 c3" {
		t.Fatalf("ReplaceFirst = %q", got)
	}
}

func TestMatcherReplaceAllAnchored(t *testing.T) {
	// Regression-style case: ^ must only match at the true start, not be
	// re-triggered on every Find iteration.
	pat := MustCompile(`^test`, 0)
	m := pat.Matcher("test hello test")
	got, err := m.ReplaceAll("START")
	if err != nil {
		t.Fatalf("ReplaceAll error: %v", err)
	}
	if got != "START hello test" {
		t.Fatalf("ReplaceAll = %q", got)
	}
}

func TestReplacerAppendReplacementAndTail(t *testing.T) {
	pat := MustCompile(`\d+`, 0)
	m := pat.Matcher("x1y22z")
	rp := m.Replacer()
	var b strings.Builder
	for {
		ok, err := m.Find()
		if err != nil {
			t.Fatalf("Find error: %v", err)
		}
		if !ok {
			break
		}
		if err := rp.AppendReplacement(&b, "[$0]"); err != nil {
			t.Fatalf("AppendReplacement error: %v", err)
		}
	}
	rp.AppendTail(&b)
	if got := b.String(); got != "x[1]y[22]z" {
		t.Fatalf("got %q", got)
	}
}

func TestReplaceInvalidCaptureGroupName(t *testing.T) {
	pat := MustCompile(`(a)`, 0)
	m := pat.Matcher("a")
	if _, err := m.ReplaceAll("${nope}"); err == nil {
		t.Fatal("expected error for undefined named group in replacement")
	}
}
