package ring

import "fmt"

// TailAdvancer is the control-surface half of the consumer loop: whatever
// releases a new tail value must also be able to re-evaluate the producer's
// watermark falling edge, and that state lives with the producer (see
// watermark.go), not in the shared ControlBlock. In-process, a *Producer
// satisfies this directly; a consumer living in another address space would
// satisfy it with a stub that forwards AdvanceTail across whatever control
// transport that deployment uses (out of scope here, per spec §1).
type TailAdvancer interface {
	AdvanceTail(newTail uint64) error
}

// Handler is called once per PKT or DROP record decoded by Consumer. For a
// PKT record, payload is the packet payload. For a DROP record, payload is
// the 20-byte encoded DropPayload; decode it with DecodeDropPayload.
type Handler func(hdr RecordHeader, payload []byte) error

// Consumer is the consumer-side handle: a read-only view of the ring plus
// the decode/dispatch loop of spec §4.7. It holds no cursor state of its
// own — head and tail both live in the shared ControlBlock, and Consumer
// only ever reads head and advances tail through a TailAdvancer.
type Consumer struct {
	r *Ring
}

// NewConsumer wraps r for consumer-side use. r is typically produced by
// Attach in a separate process, but may equally be the same *Ring a
// Producer holds for single-process use and tests.
func NewConsumer(r *Ring) *Consumer {
	return &Consumer{r: r}
}

// Ring returns the underlying ring handle.
func (c *Consumer) Ring() *Ring { return c.r }

// DecodeDropPayload parses a DROP record's payload. b must be exactly
// DropPayloadSize bytes, as delivered to a Handler for a RecordTypeDROP
// record.
func DecodeDropPayload(b []byte) (DropPayload, error) {
	if len(b) != DropPayloadSize {
		return DropPayload{}, fmt.Errorf("ring: drop payload has %d bytes, want %d", len(b), DropPayloadSize)
	}
	var arr [DropPayloadSize]byte
	copy(arr[:], b)
	return decodeDropPayload(arr), nil
}

// DrainAvailable runs the inner loop of spec §4.7, step 3: load head
// (acquire), load tail, and while head != tail decode one record, dispatch
// it to handle, and release tail+16+len through adv. It returns once
// head==tail is observed — callers drive the outer wait/drain/repeat cycle
// themselves (see Run) since the wait primitive is a Notifier the consumer
// supplies, not something Consumer owns.
//
// A record whose length would overrun the occupied window indicates a
// corrupt ring and is fatal: DrainAvailable returns ErrCorruptRing rather
// than guess at recovery. Unknown record types are skipped opaquely, per
// spec's forward-compatibility rule, without reaching handle.
func (c *Consumer) DrainAvailable(adv TailAdvancer, handle Handler) error {
	cb := c.r.cb()
	for {
		head := cb.Head()
		tail := cb.Tail()
		if head == tail {
			return nil
		}
		used := head - tail

		var hdrBuf [RecordHeaderSize]byte
		c.r.readAt(tail, hdrBuf[:])
		hdr := decodeRecordHeader(hdrBuf)

		recLen := uint64(RecordHeaderSize) + uint64(hdr.Len)
		if recLen > used {
			return ErrCorruptRing
		}

		var payload []byte
		if hdr.Len > 0 {
			payload = make([]byte, hdr.Len)
			c.r.readAt(tail+RecordHeaderSize, payload)
		}

		switch hdr.Type {
		case RecordTypePKT, RecordTypeDROP:
			if err := handle(hdr, payload); err != nil {
				return err
			}
		default:
			// Opaque to this consumer: skip without dispatch.
		}

		if err := adv.AdvanceTail(tail + recLen); err != nil {
			return fmt.Errorf("ring: advancing tail: %w", err)
		}
	}
}

// Run drives the full consumer loop of spec §4.7: wait on n, drain whatever
// is available, and repeat until done is closed or either step returns an
// error. n is typically whatever Notifier was bound with
// Producer.BindNotifier on the producer side and handed to the consumer out
// of band.
func (c *Consumer) Run(done <-chan struct{}, n Notifier, adv TailAdvancer, handle Handler) error {
	for {
		if err := n.Wait(done); err != nil {
			return err
		}
		if err := c.DrainAvailable(adv, handle); err != nil {
			return err
		}
		select {
		case <-done:
			return nil
		default:
		}
	}
}
