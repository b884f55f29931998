package subst

import (
	"strings"
	"testing"

	"github.com/coregx/uregex/matcher"
)

func TestReplaceAll(t *testing.T) {
	pat := mustCompile(t, `\d+`)
	tmpl, err := Parse(pat, `[$0]`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "room 12, floor 3, desk 400")
	out, err := ReplaceAll(m, tmpl)
	if err != nil {
		t.Fatalf("replaceAll: %v", err)
	}
	want := "room [12], floor [3], desk [400]"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestReplaceFirst(t *testing.T) {
	pat := mustCompile(t, `\d+`)
	tmpl, err := Parse(pat, `N`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "a1 b2 c3")
	out, err := ReplaceFirst(m, tmpl)
	if err != nil {
		t.Fatalf("replaceFirst: %v", err)
	}
	want := "aN b2 c3"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestReplaceFirstNoMatch(t *testing.T) {
	pat := mustCompile(t, `\d+`)
	tmpl, err := Parse(pat, `N`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "no digits here")
	out, err := ReplaceFirst(m, tmpl)
	if err != nil {
		t.Fatalf("replaceFirst: %v", err)
	}
	if out != "no digits here" {
		t.Fatalf("got %q", out)
	}
}

func TestReplaceAllEmptyMatches(t *testing.T) {
	pat := mustCompile(t, `a*`)
	tmpl, err := Parse(pat, `-`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "baab")
	out, err := ReplaceAll(m, tmpl)
	if err != nil {
		t.Fatalf("replaceAll: %v", err)
	}
	// "" before b, "aa" run, "" before final b, "" at end.
	want := "-b--b-"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestAppendReplacementNoMatchFails(t *testing.T) {
	pat := mustCompile(t, `x`)
	tmpl, _ := Parse(pat, `y`)
	m := matcher.New(pat, "abc")
	r := NewReplacer(m)
	var b strings.Builder
	if err := r.AppendReplacement(&b, tmpl); err == nil {
		t.Fatal("expected INVALID_STATE error with no current match")
	}
}
