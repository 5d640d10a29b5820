package ring

import (
	"fmt"
	"unsafe"
)

// Ring is a handle onto a shared memory region laid out as a ControlBlock
// page followed by a power-of-two data region. It holds no Go pointers into
// the shared region itself (the region may be backed by memory another
// process owns); addresses into mem are recomputed on demand, matching the
// teacher's ShmRing convention.
type Ring struct {
	mem  []byte // mem[0:ControlPageSize] is the control block, the rest is data
	size uint64 // data region size in bytes, cached for the fast mask path
}

// New initializes a fresh ring over mem: mem must be at least
// ControlPageSize+size bytes, size must be a power of two. The control
// block is zeroed and Size/Watermarks are set to size/hi/lo. New is called
// once, at producer init — see spec.md §3 "Lifecycles".
func New(mem []byte, size uint64, hiPct, loPct uint32) (*Ring, error) {
	if !IsPowerOfTwo(size) {
		return nil, fmt.Errorf("ring: size %d is not a power of two", size)
	}
	if uint64(len(mem)) < ControlPageSize+size {
		return nil, fmt.Errorf("ring: mem too small: have %d, need %d", len(mem), ControlPageSize+size)
	}
	if hiPct > 100 || loPct > hiPct {
		return nil, fmt.Errorf("ring: invalid watermarks hi=%d lo=%d", hiPct, loPct)
	}
	r := &Ring{mem: mem, size: size}
	cb := r.cb()
	cb.reset()
	cb.setSize(size)
	cb.setWatermarks(hiPct, loPct)
	return r, nil
}

// Attach opens an existing ring over mem without touching head/tail — a
// consumer resumes from whatever tail the producer has already published.
// The data region size is read from the control block itself, since the
// layout is the ABI and no separate descriptor is assumed.
func Attach(mem []byte) (*Ring, error) {
	if uint64(len(mem)) < ControlPageSize {
		return nil, fmt.Errorf("ring: mem too small for a control block: have %d, need %d", len(mem), ControlPageSize)
	}
	r := &Ring{mem: mem}
	size := r.cb().Size()
	if !IsPowerOfTwo(size) {
		return nil, fmt.Errorf("ring: corrupt control block: size %d is not a power of two", size)
	}
	if uint64(len(mem)) < ControlPageSize+size {
		return nil, fmt.Errorf("ring: mem too small: have %d, need %d", len(mem), ControlPageSize+size)
	}
	r.size = size
	return r, nil
}

// cb returns a pointer to the ControlBlock at the start of mem.
func (r *Ring) cb() *ControlBlock {
	return (*ControlBlock)(unsafe.Pointer(&r.mem[0]))
}

// dataPtr returns a pointer to the first byte of the data region.
func (r *Ring) dataPtr() unsafe.Pointer {
	return unsafe.Pointer(&r.mem[ControlPageSize])
}

// Size returns S, the data region size in bytes.
func (r *Ring) Size() uint64 { return r.size }

// ControlBlock exposes the raw control block for notifiers and tests.
// Library consumers should prefer Producer/Consumer.
func (r *Ring) ControlBlock() *ControlBlock { return r.cb() }

// AdvanceTail releases newTail directly against the mapped control block,
// satisfying Consumer's TailAdvancer without any producer-side mediation.
// It validates the new value exactly as Producer.AdvanceTail does, but it
// cannot re-evaluate the watermark falling edge: that state lives with
// whichever *Producer bound a notifier, and a Ring opened with Attach in
// a separate process has no path back to it short of the control-surface
// transport spec.md §1 leaves out of scope. Releases made only through
// this method never clear the producer's above-hi state, so once the hi
// watermark has been crossed the bound notifier is not signaled again
// until Producer.AdvanceTail or Producer.Reset runs.
func (r *Ring) AdvanceTail(newTail uint64) error {
	cb := r.cb()
	head := cb.Head()
	tail := cb.Tail()
	if newTail < tail || newTail > head {
		return ErrInvalidArgument
	}
	cb.setTail(newTail)
	return nil
}
