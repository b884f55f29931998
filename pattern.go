// Package uregex provides a Unicode-aware, ICU-compatible regular
// expression engine for Go.
//
// uregex compiles a pattern once into an immutable Pattern and drives
// matches through a Matcher, mirroring ICU's RegexPattern/RegexMatcher
// split: a Pattern is safe to share and reuse across goroutines, while each
// Matcher holds the mutable search state (capture offsets, region, resource
// limits) for one matching session and must not be driven concurrently with
// itself.
//
// Basic usage:
//
//	pat, err := uregex.Compile(`(\w+)@(\w+)`, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := pat.Matcher("alice@example")
//	if ok, _ := m.Find(); ok {
//	    user, _, _ := m.Group(1)
//	    fmt.Println(user) // "alice"
//	}
//
// Flags: CaseInsensitive, Comments, DotAll, Multiline, UnixLines, Literal,
// and ErrorOnUnknownEscapes combine with bitwise OR, matching ICU's
// UREGEX_* constants in spirit (see the Flag aliases below).
package uregex

import (
	"github.com/coregx/uregex/compiler"
	"github.com/coregx/uregex/program"
	"github.com/coregx/uregex/subst"
)

// Flag re-exports program.Flag so callers never need to import the program
// package directly.
type Flag = program.Flag

const (
	CaseInsensitive       = program.CaseInsensitive
	Comments              = program.Comments
	DotAll                = program.DotAll
	Multiline             = program.Multiline
	UnixLines             = program.UnixLines
	Literal               = program.Literal
	ErrorOnUnknownEscapes = program.ErrorOnUnknownEscapes
)

// CompileError is returned by Compile when the pattern source is invalid.
type CompileError = program.CompileError

// RuntimeError is returned by Matcher operations that fail after
// compilation: exhausted limits, an invalid query against the current
// match state, or an out-of-range argument.
type RuntimeError = program.RuntimeError

// Config bounds the compiler's resource use during Compile. DefaultConfig
// is appropriate for nearly all callers.
type Config = compiler.Config

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config { return compiler.DefaultConfig() }

// Pattern is a compiled regular expression. A Pattern is immutable after
// Compile returns and may be shared by any number of Matchers, including
// across goroutines.
type Pattern struct {
	compiled *program.Pattern
}

// Compile parses pattern under flags into a Pattern, using the default
// compiler configuration.
func Compile(pattern string, flags Flag) (*Pattern, *CompileError) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// CompileWithConfig is Compile with an explicit resource configuration.
func CompileWithConfig(pattern string, flags Flag, cfg Config) (*Pattern, *CompileError) {
	compiled, err := compiler.Compile(pattern, flags, cfg)
	if err != nil {
		return nil, err
	}
	return &Pattern{compiled: compiled}, nil
}

// MustCompile is like Compile but panics if pattern fails to compile. It
// simplifies safe initialization of global pattern variables.
func MustCompile(pattern string, flags Flag) *Pattern {
	pat, err := Compile(pattern, flags)
	if err != nil {
		panic(err)
	}
	return pat
}

// String returns the source text the pattern was compiled from.
func (p *Pattern) String() string { return p.compiled.Source }

// Flags returns the flags the pattern was compiled with.
func (p *Pattern) Flags() Flag { return p.compiled.Flags }

// GroupCount returns the number of capture groups, excluding group 0.
func (p *Pattern) GroupCount() int { return p.compiled.NumCaptures - 1 }

// GroupNumberFromName returns the group number declared for name.
func (p *Pattern) GroupNumberFromName(name string) (int, bool) {
	return p.compiled.GroupNumberFromName(name)
}

// SubexpNames returns each group's declared name, indexed by group number
// ("" for unnamed groups, including group 0).
func (p *Pattern) SubexpNames() []string { return p.compiled.SubexpNames() }

// Equal reports whether p and other were compiled from the same source text
// and flags. Pattern equality is structural, not semantic: two patterns
// that happen to accept the same language but differ in source text are
// not Equal.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.compiled.Equal(other.compiled)
}

// Matcher creates a Matcher bound to input, with the region set to the
// whole input and default anchoring/transparent bounds.
func (p *Pattern) Matcher(input string) *Matcher {
	return newMatcher(p, input)
}

// Matches reports whether the entire string s matches pattern, compiling it
// once for this single use. For repeated matching, compile once with
// Compile and reuse the Pattern.
func Matches(pattern, s string) (bool, *CompileError) {
	pat, err := Compile(pattern, 0)
	if err != nil {
		return false, err
	}
	ok, rerr := pat.Matcher(s).Matches()
	if rerr != nil {
		return false, nil
	}
	return ok, nil
}

// Split splits s around each match of the pattern, like Split on a Pattern
// built from it. limit bounds the number of substrings as Pattern.Split
// documents.
func Split(pattern, s string, limit int) ([]string, *CompileError) {
	pat, err := Compile(pattern, 0)
	if err != nil {
		return nil, err
	}
	return pat.Split(s, limit), nil
}

// parseTemplate is a small indirection so Matcher's ReplaceFirst/ReplaceAll
// can share subst.Parse without every caller importing subst directly.
func (p *Pattern) parseTemplate(repl string) (*subst.Template, *CompileError) {
	return subst.Parse(p.compiled, repl)
}
