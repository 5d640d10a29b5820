package ring

// Notifier is the abstract notification channel of spec §6: any primitive
// that supports "signal one waiter, coalesceable" suffices. Signal must
// never block the producer. Wait blocks until a signal arrives or done is
// closed; closing the notifier (Close) drops any pending signal and
// unblocks every current and future Wait with an error.
type Notifier interface {
	Signal()
	Wait(done <-chan struct{}) error
	Close() error
}

// watermark tracks the single bit of edge-triggered state from spec §4.6:
// above_hi. It is producer-local — unlike the coalescer it has no
// representation in the shared control block, since only the producer ever
// evaluates it (the consumer only ever reacts to signals, it never computes
// the crossing itself).
type watermark struct {
	aboveHi bool
}

// afterHeadRelease re-evaluates the rising edge after a head release and
// fires notifier.Signal() at most once per crossing. Grounded on
// original_source/myring.c's myring_maybe_notify, generalized from the
// teacher's binary empty/full transition signal to a percentage threshold.
func (w *watermark) afterHeadRelease(cb *ControlBlock, n Notifier) {
	hi, _ := cb.Watermarks()
	pct := pctUsed(cb)
	if !w.aboveHi && pct >= uint64(hi) {
		w.aboveHi = true
		if n != nil {
			n.Signal()
		}
	}
}

// afterTailRelease re-evaluates the falling edge after a tail release.
// No signal is ever emitted here — per spec §4.6, only hi-crossings wake
// the consumer.
func (w *watermark) afterTailRelease(cb *ControlBlock) {
	_, lo := cb.Watermarks()
	pct := pctUsed(cb)
	if w.aboveHi && pct <= uint64(lo) {
		w.aboveHi = false
	}
}

// pctUsed computes 100*(head-tail)/size, the percentage of the ring in use.
func pctUsed(cb *ControlBlock) uint64 {
	size := cb.Size()
	if size == 0 {
		return 0
	}
	return 100 * cb.Used() / size
}

// Poll implements the level-triggered poll semantics of spec §4.6: readable
// iff the ring is currently at or above the hi watermark, independent of
// edge state. Safe to call from any goroutine/process that can read cb.
func Poll(cb *ControlBlock) bool {
	hi, _ := cb.Watermarks()
	return pctUsed(cb) >= uint64(hi)
}
