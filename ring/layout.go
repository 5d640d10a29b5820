package ring

import "sync/atomic"

// ControlPageSize is the fixed size of the control block page (P in
// spec terms). The data region begins immediately after it.
const ControlPageSize = 4096

// RecordHeaderSize is the on-wire size of a record header.
const RecordHeaderSize = 16

// DropPayloadSize is the on-wire size of a DROP record's payload.
const DropPayloadSize = 20

// Record types, per the wire format.
const (
	RecordTypePKT  uint16 = 1
	RecordTypeDROP uint16 = 0xFFFF
)

// DROPPING is bit 0 of ControlBlock.Flags: set iff the drop coalescer holds
// at least one lost packet not yet reported.
const flagDropping uint32 = 1 << 0

// ControlBlock is the first ControlPageSize bytes of the shared region, bit
// exact with spec §6. Field order and type widths must not change — this
// layout IS the ABI between the producer and consumer address spaces.
// All access goes through the atomic accessors below or through Producer's
// control-surface methods, never through a direct field read/write, because the struct is mapped
// directly onto shared memory that another address space may be touching
// concurrently.
type ControlBlock struct {
	head        uint64 // 0x00 producer writes, release
	tail        uint64 // 0x08 consumer writes, release
	size        uint64 // 0x10 S, power of two, write-once
	hiPct       uint32 // 0x18
	loPct       uint32 // 0x1C
	flags       uint32 // 0x20 bit 0 = DROPPING
	reserved    uint32 // 0x24
	dropStartNs uint64 // 0x28
	lostInDrop  uint64 // 0x30
	wakeSeq     uint32 // 0x38 implementation-private futex wake counter, see notify_futex_linux.go
	// 0x3C..ControlPageSize-1: unused, reserved for future fields.
}

// RecordHeader is the 16-byte on-wire frame header.
type RecordHeader struct {
	Type  uint16
	Flags uint16
	Len   uint32
	TsNs  uint64
}

// DropPayload is the 20-byte on-wire payload of a DROP record.
type DropPayload struct {
	Lost    uint32
	StartNs uint64
	EndNs   uint64
}

// Head returns the producer cursor (acquire).
func (c *ControlBlock) Head() uint64 { return atomic.LoadUint64(&c.head) }

// setHead publishes a new producer cursor (release).
func (c *ControlBlock) setHead(v uint64) { atomic.StoreUint64(&c.head, v) }

// Tail returns the consumer cursor (acquire).
func (c *ControlBlock) Tail() uint64 { return atomic.LoadUint64(&c.tail) }

// setTail publishes a new consumer cursor (release).
func (c *ControlBlock) setTail(v uint64) { atomic.StoreUint64(&c.tail, v) }

// Size returns S, the data region size in bytes. Written once at init.
func (c *ControlBlock) Size() uint64 { return atomic.LoadUint64(&c.size) }

func (c *ControlBlock) setSize(v uint64) { atomic.StoreUint64(&c.size, v) }

// Watermarks returns the current hi/lo percentage thresholds.
func (c *ControlBlock) Watermarks() (hi, lo uint32) {
	return atomic.LoadUint32(&c.hiPct), atomic.LoadUint32(&c.loPct)
}

func (c *ControlBlock) setWatermarks(hi, lo uint32) {
	atomic.StoreUint32(&c.hiPct, hi)
	atomic.StoreUint32(&c.loPct, lo)
}

// Dropping reports whether the coalescer is in the in-burst state.
func (c *ControlBlock) Dropping() bool {
	return atomic.LoadUint32(&c.flags)&flagDropping != 0
}

func (c *ControlBlock) setDropping(v bool) {
	for {
		old := atomic.LoadUint32(&c.flags)
		var next uint32
		if v {
			next = old | flagDropping
		} else {
			next = old &^ flagDropping
		}
		if atomic.CompareAndSwapUint32(&c.flags, old, next) {
			return
		}
	}
}

// DropAccumulators returns the coalescer's drop-start timestamp and the
// count of packets lost in the current burst. Producer-owned; a consumer
// may read these opportunistically for diagnostics but must not rely on
// them for correctness — only the in-band DROP record is authoritative.
func (c *ControlBlock) DropAccumulators() (dropStartNs, lostInDrop uint64) {
	return atomic.LoadUint64(&c.dropStartNs), atomic.LoadUint64(&c.lostInDrop)
}

func (c *ControlBlock) setDropAccumulators(dropStartNs, lostInDrop uint64) {
	atomic.StoreUint64(&c.dropStartNs, dropStartNs)
	atomic.StoreUint64(&c.lostInDrop, lostInDrop)
}

// Used returns head-tail: bytes currently occupied in the ring.
func (c *ControlBlock) Used() uint64 {
	return c.Head() - c.Tail()
}

// mask returns size-1 for fast power-of-two index wrapping.
func (c *ControlBlock) mask() uint64 { return c.Size() - 1 }

// IsPowerOfTwo reports whether n is a power of two.
func IsPowerOfTwo(n uint64) bool {
	return n > 0 && n&(n-1) == 0
}

// reset zeros head, tail, flags and the coalescer accumulators. Stats are
// reset by the caller (Producer.Reset), since Producer owns those counters.
func (c *ControlBlock) reset() {
	c.setHead(0)
	c.setTail(0)
	atomic.StoreUint32(&c.flags, 0)
	c.setDropAccumulators(0, 0)
}

// wakeSeqAddr returns the address of the implementation-private futex wake
// word, for use by the Linux futex Notifier. It is not part of the wire
// ABI's documented fields, only of the reserved padding budget.
func (c *ControlBlock) wakeSeqAddr() *uint32 { return &c.wakeSeq }
