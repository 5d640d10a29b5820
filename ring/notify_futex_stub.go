//go:build !linux || !(amd64 || arm64)

package ring

import "errors"

// ErrFutexUnsupported is returned by the stub FutexNotifier's Wait and
// Close on platforms without a futex syscall. Use ChanNotifier for same-process use
// or an eventfd/epoll notifier (internal/shmseg) on this platform instead.
var ErrFutexUnsupported = errors.New("ring: futex notifier not supported on this platform")

// FutexNotifier is a stub on non-Linux or non-amd64/arm64 platforms.
type FutexNotifier struct{}

// NewFutexNotifier returns a stub notifier whose Wait and Close fail and
// whose Signal does nothing.
func NewFutexNotifier(cb *ControlBlock) *FutexNotifier { return &FutexNotifier{} }

func (f *FutexNotifier) Signal() {}

func (f *FutexNotifier) Wait(done <-chan struct{}) error { return ErrFutexUnsupported }

func (f *FutexNotifier) Close() error { return ErrFutexUnsupported }
