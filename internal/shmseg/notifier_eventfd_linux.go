//go:build linux

package shmseg

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EventfdNotifier is a cross-process ring.Notifier built on an eventfd
// registered with an epoll instance, grounded directly on
// original_source/user.c's consumer: "opens /dev/myring, sets watermarks,
// registers eventfd ... mmaps ctrl+data, waits on epoll(eventfd), consumes
// records, advances tail". The producer's kernel counterpart there calls
// eventfd's in-kernel signal path directly; here Signal just writes to the
// eventfd counter, since both ends of this library are plain Go processes.
//
// Unlike FutexNotifier, an EventfdNotifier exposes a real file descriptor,
// which is the point of using it: an external consumer process can fold
// it into its own epoll/select loop alongside other event sources, rather
// than dedicating a goroutine to a blocking futex wait.
type EventfdNotifier struct {
	efd  int
	epfd int
}

// NewEventfdNotifier creates an eventfd and an epoll instance watching it
// for EPOLLIN, mirroring user.c's setup exactly (EFD_NONBLOCK|EFD_CLOEXEC,
// EPOLL_CLOEXEC).
func NewEventfdNotifier() (*EventfdNotifier, error) {
	efd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("shmseg: eventfd: %w", err)
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		unix.Close(efd)
		return nil, fmt.Errorf("shmseg: epoll_create1: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(efd)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, efd, &ev); err != nil {
		unix.Close(epfd)
		unix.Close(efd)
		return nil, fmt.Errorf("shmseg: epoll_ctl: %w", err)
	}
	return &EventfdNotifier{efd: efd, epfd: epfd}, nil
}

// FD returns the eventfd, for a caller that wants to fold it into its own
// epoll/select loop instead of calling Wait.
func (e *EventfdNotifier) FD() int { return e.efd }

// Signal adds 1 to the eventfd counter, waking anyone blocked in
// epoll_wait on it. It never blocks: EFD_NONBLOCK means a saturated
// counter (practically unreachable at uint64 range) would return EAGAIN,
// which Signal treats as already-signaled.
func (e *EventfdNotifier) Signal() {
	var one [8]byte
	one[0] = 1
	unix.Write(e.efd, one[:])
}

// Wait blocks in epoll_wait until the eventfd becomes readable or done is
// closed, then drains the counter exactly as user.c does ("drain
// eventfd").
func (e *EventfdNotifier) Wait(done <-chan struct{}) error {
	events := make([]unix.EpollEvent, 1)
	for {
		select {
		case <-done:
			return fmt.Errorf("shmseg: wait cancelled")
		default:
		}
		n, err := unix.EpollWait(e.epfd, events, 200)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("shmseg: epoll_wait: %w", err)
		}
		if n == 0 {
			continue // timed out; loop back to re-check done
		}
		var buf [8]byte
		if _, err := unix.Read(e.efd, buf[:]); err != nil && err != unix.EAGAIN {
			return fmt.Errorf("shmseg: read eventfd: %w", err)
		}
		return nil
	}
}

// Close closes the epoll instance and the eventfd.
func (e *EventfdNotifier) Close() error {
	var firstErr error
	if err := unix.Close(e.epfd); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := unix.Close(e.efd); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
