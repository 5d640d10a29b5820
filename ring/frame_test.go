package ring

import "testing"

func TestRecordHeaderRoundTrip(t *testing.T) {
	h := RecordHeader{Type: RecordTypePKT, Flags: 0, Len: 42, TsNs: 123456789}
	got := decodeRecordHeader(encodeRecordHeader(h))
	if got != h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestDropPayloadRoundTrip(t *testing.T) {
	d := DropPayload{Lost: 7, StartNs: 100, EndNs: 200}
	got := decodeDropPayload(encodeDropPayload(d))
	if got != d {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestWriteAtReadAtWraps(t *testing.T) {
	mem := testMem(16)
	r, err := New(mem, 16, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Write 10 bytes starting 6 bytes from the end of the ring, forcing a wrap.
	payload := []byte("0123456789")
	r.writeAt(10, payload)

	got := make([]byte, 10)
	r.readAt(10, got)
	if string(got) != string(payload) {
		t.Fatalf("readAt after wrap = %q, want %q", got, payload)
	}
}

func TestWriteAtReadAtExactFill(t *testing.T) {
	mem := testMem(8)
	r, err := New(mem, 8, 80, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := []byte("abcdefgh")
	r.writeAt(0, payload)
	got := make([]byte, 8)
	r.readAt(0, got)
	if string(got) != string(payload) {
		t.Fatalf("readAt = %q, want %q", got, payload)
	}
}
