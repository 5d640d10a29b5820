//go:build !linux

package shmseg

import "errors"

var errEventfdUnsupported = errors.New("shmseg: eventfd notifier is Linux-only")

// EventfdNotifier is a stub on non-Linux platforms. Use ring.ChanNotifier
// for same-process use on other platforms.
type EventfdNotifier struct{}

func NewEventfdNotifier() (*EventfdNotifier, error) { return nil, errEventfdUnsupported }

func (e *EventfdNotifier) FD() int { return -1 }

func (e *EventfdNotifier) Signal() {}

func (e *EventfdNotifier) Wait(done <-chan struct{}) error { return errEventfdUnsupported }

func (e *EventfdNotifier) Close() error { return errEventfdUnsupported }
