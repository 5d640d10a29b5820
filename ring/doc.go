// Package ring implements a single-producer/single-consumer shared-memory
// ring buffer transport: a fixed control page followed by a power-of-two
// data region, variable-length framed records, a drop-coalescing overflow
// indicator, and watermark-driven edge-triggered notification.
//
// The package operates on a caller-supplied byte slice (typically backed by
// an mmap'd shared-memory segment spanning a privilege boundary) and never
// allocates or maps memory itself — that is the job of the mmap primitive
// the caller provides. See internal/shmseg for this repository's stand-in
// for that primitive.
package ring
