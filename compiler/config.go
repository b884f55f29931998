package compiler

import "fmt"

// Config controls compiler resource limits. It follows the teacher's
// Config/Validate/ConfigError shape (see meta.Config in the reference
// engine): sensible defaults, a Validate method, and a typed error naming
// the offending field.
type Config struct {
	// MaxRecursionDepth bounds the parser's concatenation/alternation/group
	// nesting depth. The parser is host-recursive (see DESIGN.md)
	// with an explicit counter checked against this limit, which is how the
	// spec's "bound compile memory deterministically" goal is realized
	// without hand-rolling an explicit operator stack for a grammar this
	// small. Default: 1000.
	MaxRecursionDepth int

	// MaxPatternLength bounds the source pattern's length in code points.
	// Default: 1 << 16.
	MaxPatternLength int

	// MaxProgramInstructions bounds the emitted bytecode size. Exceeding it
	// raises PATTERN_TOO_BIG, the same way an over-large {n,m} unrolling
	// would. Default: 1 << 20.
	MaxProgramInstructions int

	// MaxRepeatCount bounds the n and m operands of {n,m}. Values beyond
	// this raise NUMBER_TOO_BIG per spec.md §4.3. Default: 1 << 16 (the
	// 24-bit operand the spec mentions is generous; this is the practical
	// cap that keeps unrolled bounded quantifiers from exploding program
	// size).
	MaxRepeatCount int
}

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return Config{
		MaxRecursionDepth:       1000,
		MaxPatternLength:        1 << 16,
		MaxProgramInstructions:  1 << 20,
		MaxRepeatCount:          1 << 16,
	}
}

// Validate checks that every field is within its documented range.
func (c Config) Validate() error {
	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be between 10 and 100,000"}
	}
	if c.MaxPatternLength < 1 {
		return &ConfigError{Field: "MaxPatternLength", Message: "must be positive"}
	}
	if c.MaxProgramInstructions < 1 {
		return &ConfigError{Field: "MaxProgramInstructions", Message: "must be positive"}
	}
	if c.MaxRepeatCount < 1 {
		return &ConfigError{Field: "MaxRepeatCount", Message: "must be positive"}
	}
	return nil
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("regex: invalid compiler config: %s: %s", e.Field, e.Message)
}
