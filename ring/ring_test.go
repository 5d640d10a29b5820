package ring

import "testing"

func testMem(size uint64) []byte {
	return make([]byte, ControlPageSize+size)
}

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := New(testMem(100), 100, 80, 50); err == nil {
		t.Fatalf("expected an error for a non-power-of-two size")
	}
}

func TestNewRejectsShortMem(t *testing.T) {
	mem := make([]byte, ControlPageSize+16)
	if _, err := New(mem, 32, 80, 50); err == nil {
		t.Fatalf("expected an error when mem is too small for the requested size")
	}
}

func TestNewRejectsBadWatermarks(t *testing.T) {
	if _, err := New(testMem(64), 64, 101, 50); err == nil {
		t.Fatalf("expected an error for hi_pct > 100")
	}
	if _, err := New(testMem(64), 64, 50, 80); err == nil {
		t.Fatalf("expected an error for lo_pct > hi_pct")
	}
}

func TestAttachReadsSizeFromControlBlock(t *testing.T) {
	mem := testMem(1024)
	if _, err := New(mem, 1024, 80, 50); err != nil {
		t.Fatalf("New: %v", err)
	}

	attached, err := Attach(mem)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if attached.Size() != 1024 {
		t.Fatalf("Size() = %d, want 1024", attached.Size())
	}
}

func TestAttachPreservesExistingTail(t *testing.T) {
	mem := testMem(256)
	r, err := New(mem, 256, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := NewProducer(r)
	if err := p.Push([]byte("hello"), 1); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := p.AdvanceTail(21); err != nil { // 16-byte header + 5-byte payload
		t.Fatalf("AdvanceTail: %v", err)
	}

	attached, err := Attach(mem)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if got := attached.ControlBlock().Tail(); got != 21 {
		t.Fatalf("Tail() after Attach = %d, want 21 (Attach must not reset it)", got)
	}
}
