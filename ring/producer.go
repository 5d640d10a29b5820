package ring

import (
	"sync"
	"sync/atomic"
)

// Producer is the producer-side handle: it owns the ring, the watermark
// notifier binding, and the control-surface mutex. Per spec §9 "Global
// mutable state", all ring state is carried in a value owned by this
// handle and passed explicitly — there is no process-wide singleton.
//
// Push is wait-free and never takes ctrlMu; the six control-surface
// operations (see control.go) serialize against each other under ctrlMu but
// never hold it across a data-region write, per spec §4.8/§5.
type Producer struct {
	r  *Ring
	wm watermark

	ctrlMu      sync.Mutex
	notifierBox atomic.Pointer[notifierBox]
	rateHz      atomic.Uint32

	records atomic.Uint64
	bytes   atomic.Uint64
	drops   atomic.Uint64
}

type notifierBox struct{ n Notifier }

// NewProducer wraps r for producer-side use. r must have been created with
// New (not Attach) — a producer always owns its ring from init.
func NewProducer(r *Ring) *Producer {
	return &Producer{r: r}
}

// Ring returns the underlying ring handle.
func (p *Producer) Ring() *Ring { return p.r }

func (p *Producer) notifier() Notifier {
	box := p.notifierBox.Load()
	if box == nil {
		return nil
	}
	return box.n
}

// Push writes one PKT record carrying payload, timestamped nowNs. It never
// blocks: on a full ring it records the loss in the drop coalescer and
// returns nil (reservation failure is not a user-visible error — spec §7).
// Push is the only producer-side operation on the data path; it never
// touches ctrlMu.
func (p *Producer) Push(payload []byte, nowNs uint64) error {
	cb := p.r.cb()
	packetNeed := uint64(RecordHeaderSize) + uint64(len(payload))

	if !cb.Dropping() {
		if res, ok := p.r.tryReserve(packetNeed); ok {
			p.writePacketAt(res.cursor, payload, nowNs)
			res.commit()
			p.records.Add(1)
			p.bytes.Add(packetNeed)
			p.wm.afterHeadRelease(cb, p.notifier())
			return nil
		}
		cb.onReserveFail(nowNs)
		p.drops.Add(1)
		return nil
	}

	// IN-BURST: the drop record and the packet that ends the burst are
	// reserved as a single combined window (spec §4.5 "Critical
	// correctness point") so the drop record cannot itself fail to fit.
	combinedNeed := uint64(RecordHeaderSize+DropPayloadSize) + packetNeed
	res, ok := p.r.tryReserve(combinedNeed)
	if !ok {
		cb.onReserveFail(nowNs)
		p.drops.Add(1)
		return nil
	}

	dropStart, lost := cb.DropAccumulators()
	dropHdr := encodeRecordHeader(RecordHeader{Type: RecordTypeDROP, Len: DropPayloadSize, TsNs: nowNs})
	p.r.writeAt(res.cursor, dropHdr[:])
	dropPayload := encodeDropPayload(DropPayload{Lost: uint32(lost), StartNs: dropStart, EndNs: nowNs})
	p.r.writeAt(res.cursor+RecordHeaderSize, dropPayload[:])

	packetCursor := res.cursor + RecordHeaderSize + DropPayloadSize
	p.writePacketAt(packetCursor, payload, nowNs)

	res.commit()
	cb.clearBurst()
	p.records.Add(2)
	p.bytes.Add(combinedNeed)
	p.wm.afterHeadRelease(cb, p.notifier())
	return nil
}

// writePacketAt writes a PKT header+payload at cursor without committing.
func (p *Producer) writePacketAt(cursor uint64, payload []byte, nowNs uint64) {
	hdr := encodeRecordHeader(RecordHeader{Type: RecordTypePKT, Len: uint32(len(payload)), TsNs: nowNs})
	p.r.writeAt(cursor, hdr[:])
	if len(payload) > 0 {
		p.r.writeAt(cursor+RecordHeaderSize, payload)
	}
}
