package ring

import "testing"

func TestChanNotifierCoalescesSignals(t *testing.T) {
	n := NewChanNotifier()
	n.Signal()
	n.Signal()
	n.Signal()

	done := make(chan struct{})
	if err := n.Wait(done); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	// The three signals should have coalesced into exactly one pending
	// wakeup: a second Wait must block until another Signal arrives.
	select {
	case <-n.sig:
		t.Fatalf("a second pending signal survived three Signal calls, want exactly one")
	default:
	}
}

func TestChanNotifierCloseUnblocksWait(t *testing.T) {
	n := NewChanNotifier()
	n.Close()

	done := make(chan struct{})
	if err := n.Wait(done); err != ErrNotifierClosed {
		t.Fatalf("Wait after Close = %v, want ErrNotifierClosed", err)
	}
}

func TestChanNotifierDoneCancelsWait(t *testing.T) {
	n := NewChanNotifier()
	done := make(chan struct{})
	close(done)

	if err := n.Wait(done); err == nil {
		t.Fatalf("Wait with an already-closed done channel should return an error")
	}
}
