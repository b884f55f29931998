package subst

import (
	"strings"
	"testing"

	"github.com/coregx/uregex/compiler"
	"github.com/coregx/uregex/matcher"
	"github.com/coregx/uregex/program"
)

func mustCompile(t *testing.T, pattern string) *program.Pattern {
	t.Helper()
	pat, err := compiler.Compile(pattern, 0, compiler.DefaultConfig())
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return pat
}

func TestParseLiteralOnly(t *testing.T) {
	pat := mustCompile(t, `(a)(b)`)
	tmpl, err := Parse(pat, `no groups here`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "ab")
	if ok, _ := m.Matches(); !ok {
		t.Fatal("expected match")
	}
	out, err := tmpl.Expand(m)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "no groups here" {
		t.Fatalf("got %q", out)
	}
}

func TestParseGroupReferences(t *testing.T) {
	pat := mustCompile(t, `(\w+)@(\w+)`)
	tmpl, err := Parse(pat, `user=$1 host=$2 whole=$0`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "alice@example")
	if ok, _ := m.Matches(); !ok {
		t.Fatal("expected match")
	}
	out, err := tmpl.Expand(m)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := "user=alice host=example whole=alice@example"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestParseNamedGroup(t *testing.T) {
	pat := mustCompile(t, `(?<user>\w+)@(?<host>\w+)`)
	tmpl, err := Parse(pat, `${host}/${user}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "bob@work")
	if ok, _ := m.Matches(); !ok {
		t.Fatal("expected match")
	}
	out, err := tmpl.Expand(m)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "work/bob" {
		t.Fatalf("got %q", out)
	}
}

func TestParseUnknownNamedGroupFails(t *testing.T) {
	pat := mustCompile(t, `(a)`)
	_, err := Parse(pat, `${nope}`)
	if err == nil || err.Kind != program.InvalidCaptureGroupName {
		t.Fatalf("expected INVALID_CAPTURE_GROUP_NAME, got %v", err)
	}
}

func TestParseOutOfRangeDigitsBackOff(t *testing.T) {
	// Pattern has only group 1; "$12" should resolve to group 1 followed by
	// the literal digit "2", since group 12 doesn't exist.
	pat := mustCompile(t, `(a)`)
	tmpl, err := Parse(pat, `$12`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "a")
	if ok, _ := m.Matches(); !ok {
		t.Fatal("expected match")
	}
	out, err := tmpl.Expand(m)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "a2" {
		t.Fatalf("got %q, want %q", out, "a2")
	}
}

func TestParseEscapesAndLiteralDollar(t *testing.T) {
	pat := mustCompile(t, `x`)
	tmpl, err := Parse(pat, `\$5\n$`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m := matcher.New(pat, "x")
	if ok, _ := m.Matches(); !ok {
		t.Fatal("expected match")
	}
	out, err := tmpl.Expand(m)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out != "$5\n$" {
		t.Fatalf("got %q", strings.TrimSpace(out))
	}
}
