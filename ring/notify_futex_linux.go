//go:build linux && (amd64 || arm64)

package ring

import (
	"fmt"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"
)

// Linux futex operation codes, without FUTEX_PRIVATE_FLAG: the two ends of
// one ring are usually separate processes sharing the mapping, and a
// private futex only rendezvouses waiters within a single process.
const (
	futexOpWait = 0 // FUTEX_WAIT
	futexOpWake = 1 // FUTEX_WAKE
)

// pollInterval bounds how long a single futex wait syscall blocks before
// FutexNotifier re-checks done/closed. Futex itself has no way to wait on
// an arbitrary channel, so Wait degrades to this polling cadence whenever
// done is supplied.
const pollInterval = 200 * time.Millisecond

// FutexNotifier is a cross-process Notifier grounded on the teacher's
// shm_futex_linux.go, retargeted from the transport's per-direction
// data/space sequences onto the ring's dedicated wake word
// (ControlBlock.wakeSeq). It works across any two address spaces that
// share the mapping, privileged or not, which is why it is the default for
// internal/shmseg-backed deployments.
type FutexNotifier struct {
	seq    *uint32
	closed atomic.Uint32
}

// NewFutexNotifier binds a FutexNotifier to cb's wake word. Both the
// producer and the consumer must construct one over the same mapped
// ControlBlock for Signal/Wait to rendezvous.
func NewFutexNotifier(cb *ControlBlock) *FutexNotifier {
	return &FutexNotifier{seq: cb.wakeSeqAddr()}
}

// Signal bumps the wake word and wakes every waiter. It never blocks.
func (f *FutexNotifier) Signal() {
	atomic.AddUint32(f.seq, 1)
	futexWake(f.seq, 1<<30) // wake all; there is at most one real waiter in SPSC use
}

// Wait blocks until Signal has bumped the wake word past the value
// observed on entry, done is closed, or Close has been called.
func (f *FutexNotifier) Wait(done <-chan struct{}) error {
	snapshot := atomic.LoadUint32(f.seq)
	for {
		if f.closed.Load() != 0 {
			return ErrNotifierClosed
		}
		select {
		case <-done:
			return fmt.Errorf("ring: wait cancelled")
		default:
		}

		err := futexWaitTimeout(f.seq, snapshot, pollInterval)
		if err != nil && err != errFutexTimeout {
			return err
		}
		if atomic.LoadUint32(f.seq) != snapshot {
			return nil
		}
	}
}

// Close marks the notifier closed and wakes any blocked waiter so it can
// observe ErrNotifierClosed promptly.
func (f *FutexNotifier) Close() error {
	f.closed.Store(1)
	futexWake(f.seq, 1<<30)
	return nil
}

var errFutexTimeout = fmt.Errorf("ring: futex wait timed out")

// futexWaitTimeout waits on addr until its value changes from val or
// timeout elapses.
func futexWaitTimeout(addr *uint32, val uint32, timeout time.Duration) error {
	ts := syscall.NsecToTimespec(timeout.Nanoseconds())
	_, _, errno := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexOpWait,
		uintptr(val),
		uintptr(unsafe.Pointer(&ts)),
		0, 0,
	)
	switch errno {
	case 0, syscall.EAGAIN, syscall.EINTR:
		return nil
	case syscall.ETIMEDOUT:
		return errFutexTimeout
	default:
		return fmt.Errorf("ring: futex wait: %w", errno)
	}
}

// futexWake wakes up to n waiters blocked on addr.
func futexWake(addr *uint32, n int) {
	syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexOpWake,
		uintptr(n),
		0, 0, 0,
	)
}
