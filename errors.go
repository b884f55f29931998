package uregex

import "github.com/coregx/uregex/program"

func illegalArgumentError(msg string) *RuntimeError {
	return program.NewRuntimeError(program.IllegalArgument, msg)
}
