package ring

import (
	"errors"
	"sync"
)

// ErrNotifierClosed is returned by Wait once Close has been called.
var ErrNotifierClosed = errors.New("ring: notifier closed")

// ChanNotifier is a same-process Notifier backed by a capacity-1 channel:
// any number of Signal calls between two Wait calls coalesce into one
// wakeup, matching the "signal one waiter, coalesceable" contract of spec
// §6. It is the right choice whenever the producer and consumer are
// goroutines in the same process; for a real cross-process deployment see
// the futex or eventfd-backed notifiers.
type ChanNotifier struct {
	sig       chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// NewChanNotifier returns a ready-to-use channel-backed notifier.
func NewChanNotifier() *ChanNotifier {
	return &ChanNotifier{
		sig:    make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// Signal wakes a pending or future Wait. It never blocks.
func (c *ChanNotifier) Signal() {
	select {
	case c.sig <- struct{}{}:
	default:
	}
}

// Wait blocks until Signal has fired since the last Wait, done is closed,
// or Close has been called.
func (c *ChanNotifier) Wait(done <-chan struct{}) error {
	// Checked first so a signal still pending at Close is dropped.
	select {
	case <-c.closed:
		return ErrNotifierClosed
	default:
	}
	select {
	case <-c.sig:
		return nil
	case <-c.closed:
		return ErrNotifierClosed
	case <-done:
		return errors.New("ring: wait cancelled")
	}
}

// Close unblocks every current and future Wait with ErrNotifierClosed.
func (c *ChanNotifier) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}
