package matcher

import "time"

// Callback is invoked periodically during a match attempt; returning false
// aborts the search with a STOPPED_BY_CALLER runtime error, the cooperative
// cancellation hook the spec requires for long-running searches.
type Callback func() bool

// Limits bounds one matcher's resource use.
type Limits struct {
	// MaxStackDepth bounds the matcher's recursion depth. Exceeding it
	// raises STACK_OVERFLOW. Zero means DefaultMaxStackDepth.
	MaxStackDepth int

	// Deadline, if non-zero, is the wall-clock time after which the match
	// attempt raises TIME_OUT.
	Deadline time.Time

	// Callback, if non-nil, is polled roughly every CallbackInterval
	// recursive steps.
	Callback Callback

	// CallbackInterval controls how often Callback is polled. Zero means
	// DefaultCallbackInterval.
	CallbackInterval int

	// FindProgress, if non-nil, is invoked with each candidate start
	// position FindFrom rejects while scanning for the next match.
	// Returning false aborts the search with a STOPPED_BY_CALLER runtime
	// error.
	FindProgress func(pos int) bool
}

// DefaultMaxStackDepth is the recursion depth limit used when Limits.MaxStackDepth is zero.
const DefaultMaxStackDepth = 4096

// DefaultCallbackInterval is the step interval used when Limits.CallbackInterval is zero.
const DefaultCallbackInterval = 4096

func (l Limits) maxStackDepth() int {
	if l.MaxStackDepth <= 0 {
		return DefaultMaxStackDepth
	}
	return l.MaxStackDepth
}

func (l Limits) callbackInterval() int {
	if l.CallbackInterval <= 0 {
		return DefaultCallbackInterval
	}
	return l.CallbackInterval
}
