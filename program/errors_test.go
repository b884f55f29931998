package program

import "testing"

func TestErrorKindStringCoversKnownKinds(t *testing.T) {
	kinds := []ErrorKind{
		RuleSyntax, BadEscapeSequence, PropertySyntax, Unimplemented, MismatchedParen,
		NumberTooBig, BadInterval, MaxLtMin, InvalidBackRef, InvalidFlag, LookBehindLimit,
		SetContainsString, MissingCloseBracket, InvalidRange, PatternTooBig,
		InvalidCaptureGroupName, InvalidState, StackOverflow, TimeOut, StoppedByCaller,
		IndexOutOfRange, IllegalArgument,
	}
	seen := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		s := k.String()
		if s == "UNKNOWN" {
			t.Errorf("ErrorKind %d stringified to UNKNOWN", k)
		}
		if seen[s] {
			t.Errorf("ErrorKind string %q reused by more than one kind", s)
		}
		seen[s] = true
	}
}

func TestErrorKindStringUnknown(t *testing.T) {
	var k ErrorKind = 999
	if k.String() != "UNKNOWN" {
		t.Errorf("String() = %q, want UNKNOWN", k.String())
	}
}

func TestCompileErrorMessageIncludesPattern(t *testing.T) {
	err := &CompileError{Kind: RuleSyntax, Line: 1, Column: 3, Pattern: "a(b", Message: "missing )"}
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
	for _, want := range []string{"RULE_SYNTAX", "a(b", "missing )"} {
		if !contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestCompileErrorMessageWithoutPattern(t *testing.T) {
	err := &CompileError{Kind: PatternTooBig, Message: "exceeded limit"}
	msg := err.Error()
	if !contains(msg, "PATTERN_TOO_BIG") || !contains(msg, "exceeded limit") {
		t.Errorf("Error() = %q, missing expected fragments", msg)
	}
}

func TestNewRuntimeError(t *testing.T) {
	err := NewRuntimeError(TimeOut, "deadline exceeded")
	if err.Kind != TimeOut {
		t.Errorf("Kind = %v, want TimeOut", err.Kind)
	}
	if !contains(err.Error(), "TIME_OUT") {
		t.Errorf("Error() = %q, want it to mention TIME_OUT", err.Error())
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
