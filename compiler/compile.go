// Package compiler turns pattern source text into a compiled
// *program.Pattern: a recursive-descent parser builds a parse tree, a static
// pass derives the summaries (length bounds, leading anchor, literal prefix,
// initial character set) the matcher uses to skip hopeless start positions,
// and an emitter lowers the tree to bytecode.
package compiler

import "github.com/coregx/uregex/program"

// Compile parses pattern under flags and lowers it to a *program.Pattern.
// cfg bounds compile-time resource use; DefaultConfig is appropriate for
// nearly all callers.
func Compile(pattern string, flags program.Flag, cfg Config) (*program.Pattern, *program.CompileError) {
	if err := cfg.Validate(); err != nil {
		return nil, &program.CompileError{Kind: program.IllegalArgument, Pattern: pattern, Message: err.Error()}
	}

	p := newParser(pattern, flags, cfg)
	root, perr := p.parse()
	if perr != nil {
		return nil, perr
	}

	e := newEmitter(cfg)
	if err := e.compile(root); err != nil {
		err.Pattern = pattern
		return nil, err
	}
	endPC := e.emit(program.OpEnd, 0, 0)
	if err := e.tooBig(); err != nil {
		err.Pattern = pattern
		return nil, err
	}

	minLen, maxLen := minMaxLen(root)
	staticType := leadingAnchorKind(root)
	prefix := literalPrefix(root)
	var initialChars program.CharSet
	var initialString string
	switch {
	case staticType != program.StartUnspec:
		// already anchored; InitialChars/InitialString left empty
	case prefix != "":
		staticType = program.StartString
		initialString = prefix
	default:
		if cs, ok := firstCharSet(root); ok && !cs.Negated {
			staticType = program.StartSet
			initialChars = cs
			if len(cs.Ranges) == 1 && cs.Ranges[0].Lo == cs.Ranges[0].Hi {
				staticType = program.StartChar
			}
		}
	}

	var altLits []string
	switch staticType {
	case program.StartUnspec, program.StartSet, program.StartChar:
		altLits = altLiterals(root)
	}

	numberedNames := make([]string, len(p.numbered))
	copy(numberedNames, p.numbered)
	groupNames := make(map[string]int, len(p.groupNames))
	for k, v := range p.groupNames {
		groupNames[k] = v
	}

	pat := &program.Pattern{
		Source:         pattern,
		Flags:          flags,
		Program:        e.insts,
		EndPC:          endPC,
		Literals:       e.literals,
		Sets:           e.sets,
		Looks:          e.looks,
		NumCaptures:    p.captureCount + 1,
		GroupNames:     groupNames,
		NumberedNames:  numberedNames,
		NumLoopMarks:   e.numLoopMarks,
		MinMatchLength: minLen,
		StaticType:     staticType,
		InitialChars:   initialChars,
		InitialString:  initialString,
		AltLiterals:    altLits,
	}
	_ = maxLen
	return pat, nil
}
