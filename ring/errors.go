package ring

import "errors"

// Control-surface error kinds, per spec §7.
var (
	// ErrInvalidArgument is returned for bad watermarks or an out-of-range
	// AdvanceTail.
	ErrInvalidArgument = errors.New("ring: invalid argument")

	// ErrNotBound is returned by an operation that requires a bound
	// notifier when none is bound. GetStats and AdvanceTail never require
	// one.
	ErrNotBound = errors.New("ring: no notifier bound")

	// ErrResourceUnavailable is the error kind for a failed notifier channel
	// creation or binding. Nothing in this module returns it: BindNotifier
	// cannot fail, and shmseg.NewEventfdNotifier reports creation failures
	// with its own wrapped syscall errors.
	ErrResourceUnavailable = errors.New("ring: resource unavailable")
)

// ErrCorruptRing is returned by the consumer when a decoded record header
// cannot possibly be valid (e.g. 16+len > S). Per spec §7 this indicates
// ring corruption and is fatal for the consumer: callers must surface it
// and stop rather than guess.
var ErrCorruptRing = errors.New("ring: corrupt record header")
