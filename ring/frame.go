package ring

import (
	"encoding/binary"
	"unsafe"
)

// writeAt writes src into the data region starting at the unbounded cursor
// pos, splitting across the end-of-region wrap if necessary. It does not
// touch head/tail; the caller commits the cursor separately. Grounded on
// the teacher's wrap-handling in ShmRing.WriteBlocking.
func (r *Ring) writeAt(pos uint64, src []byte) {
	if len(src) == 0 {
		return
	}
	mask := r.size - 1
	off := pos & mask
	first := r.size - off
	if first > uint64(len(src)) {
		first = uint64(len(src))
	}
	dst := unsafe.Slice((*byte)(r.dataPtr()), r.size)
	copy(dst[off:off+first], src[:first])
	if uint64(len(src)) > first {
		copy(dst[0:uint64(len(src))-first], src[first:])
	}
}

// readAt reads len(dst) bytes from the data region starting at the
// unbounded cursor pos, splitting across the end-of-region wrap if
// necessary. It does not touch head/tail.
func (r *Ring) readAt(pos uint64, dst []byte) {
	if len(dst) == 0 {
		return
	}
	mask := r.size - 1
	off := pos & mask
	first := r.size - off
	if first > uint64(len(dst)) {
		first = uint64(len(dst))
	}
	src := unsafe.Slice((*byte)(r.dataPtr()), r.size)
	copy(dst[:first], src[off:off+first])
	if uint64(len(dst)) > first {
		copy(dst[first:], src[0:uint64(len(dst))-first])
	}
}

// encodeRecordHeader writes h in the on-wire little-endian layout.
func encodeRecordHeader(h RecordHeader) [RecordHeaderSize]byte {
	var b [RecordHeaderSize]byte
	binary.LittleEndian.PutUint16(b[0:2], h.Type)
	binary.LittleEndian.PutUint16(b[2:4], h.Flags)
	binary.LittleEndian.PutUint32(b[4:8], h.Len)
	binary.LittleEndian.PutUint64(b[8:16], h.TsNs)
	return b
}

// decodeRecordHeader parses a 16-byte on-wire record header. b must be
// exactly RecordHeaderSize bytes (copy-into-aligned-local performed by the
// caller via readAt, never a pointer cast into the mapped region).
func decodeRecordHeader(b [RecordHeaderSize]byte) RecordHeader {
	return RecordHeader{
		Type:  binary.LittleEndian.Uint16(b[0:2]),
		Flags: binary.LittleEndian.Uint16(b[2:4]),
		Len:   binary.LittleEndian.Uint32(b[4:8]),
		TsNs:  binary.LittleEndian.Uint64(b[8:16]),
	}
}

// encodeDropPayload writes d in the on-wire little-endian layout.
func encodeDropPayload(d DropPayload) [DropPayloadSize]byte {
	var b [DropPayloadSize]byte
	binary.LittleEndian.PutUint32(b[0:4], d.Lost)
	binary.LittleEndian.PutUint64(b[4:12], d.StartNs)
	binary.LittleEndian.PutUint64(b[12:20], d.EndNs)
	return b
}

// decodeDropPayload parses a 20-byte on-wire DROP payload.
func decodeDropPayload(b [DropPayloadSize]byte) DropPayload {
	return DropPayload{
		Lost:    binary.LittleEndian.Uint32(b[0:4]),
		StartNs: binary.LittleEndian.Uint64(b[4:12]),
		EndNs:   binary.LittleEndian.Uint64(b[12:20]),
	}
}
