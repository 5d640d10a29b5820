package ring

// Stats is a snapshot of the counters returned by Producer.GetStats. Fields
// are individually consistent (each is read with a single atomic load) but
// not mutually atomic: a concurrent Push can interleave between any two
// fields, per spec §4.8.
type Stats struct {
	Head    uint64
	Tail    uint64
	Records uint64
	Bytes   uint64
	Drops   uint64
}

// Config is a snapshot of the ring's static and tunable configuration,
// returned by Producer.GetConfig.
type Config struct {
	Size  uint64
	HiPct uint32
	LoPct uint32
}

// SetWatermarks updates the hi/lo percentage thresholds. It fails with
// ErrInvalidArgument if hi > 100 or lo > hi, per spec §4.8; on success the
// new thresholds take effect for the very next head or tail release.
func (p *Producer) SetWatermarks(hi, lo uint32) error {
	if hi > 100 || lo > hi {
		return ErrInvalidArgument
	}
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()
	p.r.cb().setWatermarks(hi, lo)
	return nil
}

// BindNotifier replaces the notifier signaled on a rising hi-watermark
// crossing. Passing nil unbinds it: Push continues to operate, it simply
// stops signaling anyone.
func (p *Producer) BindNotifier(n Notifier) {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()
	p.notifierBox.Store(&notifierBox{n: n})
}

// BoundNotifier returns whatever notifier is currently bound. It returns
// ErrNotBound if none is, which is the one control-surface operation for
// which that error is meaningful — GetStats and AdvanceTail never need a
// notifier at all.
func (p *Producer) BoundNotifier() (Notifier, error) {
	n := p.notifier()
	if n == nil {
		return nil, ErrNotBound
	}
	return n, nil
}

// GetStats returns a snapshot of the producer's counters.
func (p *Producer) GetStats() Stats {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()
	cb := p.r.cb()
	return Stats{
		Head:    cb.Head(),
		Tail:    cb.Tail(),
		Records: p.records.Load(),
		Bytes:   p.bytes.Load(),
		Drops:   p.drops.Load(),
	}
}

// GetConfig returns a snapshot of the ring's size and watermarks.
func (p *Producer) GetConfig() Config {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()
	cb := p.r.cb()
	hi, lo := cb.Watermarks()
	return Config{Size: cb.Size(), HiPct: hi, LoPct: lo}
}

// AdvanceTail is the consumer-initiated control-surface release of spec
// §4.8: it publishes newTail (release) and re-evaluates the watermark
// falling edge, since that edge state lives with the producer. It fails
// with ErrInvalidArgument if newTail would move backwards or run past the
// current head.
func (p *Producer) AdvanceTail(newTail uint64) error {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()
	cb := p.r.cb()
	head := cb.Head()
	tail := cb.Tail()
	if newTail < tail || newTail > head {
		return ErrInvalidArgument
	}
	cb.setTail(newTail)
	p.wm.afterTailRelease(cb)
	return nil
}

// Reset zeros head, tail, the drop coalescer state and the producer's
// counters. Per spec §4.8 this is only valid when no consumer is actively
// draining; callers are responsible for quiescing the consumer first (the
// library cannot detect "actively draining" from inside the ring itself).
func (p *Producer) Reset() {
	p.ctrlMu.Lock()
	defer p.ctrlMu.Unlock()
	p.r.cb().reset()
	p.wm = watermark{}
	p.records.Store(0)
	p.bytes.Store(0)
	p.drops.Store(0)
}

// SetRate sets the producer's advertised packet rate in Hz, used by
// cmd/ringproducer to pace synthetic traffic. It is not part of spec.md's
// original control surface; recovered from original_source's
// MYRING_IOC_SET_RATE (see SPEC_FULL.md §4), including its validation:
// rate must be in (0, 100000], rejecting both 0 and anything over the
// ceiling with ErrInvalidArgument.
func (p *Producer) SetRate(rateHz uint32) error {
	if rateHz == 0 || rateHz > 100000 {
		return ErrInvalidArgument
	}
	p.rateHz.Store(rateHz)
	return nil
}

// Rate returns the producer's advertised packet rate in Hz, or 0 if unset.
func (p *Producer) Rate() uint32 {
	return p.rateHz.Load()
}
