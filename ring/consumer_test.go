package ring

import "testing"

func TestDrainAvailableSkipsUnknownRecordTypesOpaquely(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Hand-write an unknown-type record directly, bypassing Producer
	// (which only ever emits PKT/DROP), to exercise the consumer's
	// forward-compatibility rule.
	unknownHdr := encodeRecordHeader(RecordHeader{Type: 0x1234, Len: 4, TsNs: 1})
	r.writeAt(0, unknownHdr[:])
	r.writeAt(RecordHeaderSize, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	r.cb().setHead(RecordHeaderSize + 4)

	c := NewConsumer(r)
	called := false
	if err := c.DrainAvailable(r, func(hdr RecordHeader, data []byte) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("DrainAvailable: %v", err)
	}
	if called {
		t.Fatalf("handler was called for an unknown record type, want it skipped")
	}
	if got := r.cb().Tail(); got != RecordHeaderSize+4 {
		t.Fatalf("Tail() = %d, want %d (unknown record still consumes its bytes)", got, RecordHeaderSize+4)
	}
}

func TestDrainAvailableDetectsCorruptHeader(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// A record claiming a length that overruns the occupied window is
	// corrupt: head-tail is smaller than 16+len says it should be.
	badHdr := encodeRecordHeader(RecordHeader{Type: RecordTypePKT, Len: 1000, TsNs: 1})
	r.writeAt(0, badHdr[:])
	r.cb().setHead(RecordHeaderSize) // only 16 bytes actually occupied

	c := NewConsumer(r)
	err = c.DrainAvailable(r, func(hdr RecordHeader, data []byte) error { return nil })
	if err != ErrCorruptRing {
		t.Fatalf("DrainAvailable on a corrupt header = %v, want ErrCorruptRing", err)
	}
}

func TestDrainAvailableReturnsNilWhenEmpty(t *testing.T) {
	mem := testMem(64)
	r, err := New(mem, 64, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c := NewConsumer(r)
	if err := c.DrainAvailable(r, func(hdr RecordHeader, data []byte) error {
		t.Fatalf("handler should not be called on an empty ring")
		return nil
	}); err != nil {
		t.Fatalf("DrainAvailable on an empty ring: %v", err)
	}
}
