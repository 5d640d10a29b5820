// Package shmseg is this repository's stand-in for the "external
// collaborator" spec.md §1/§6 assumes: whatever supplies a byte slice
// backed by memory visible across the producer/consumer privilege
// boundary. It creates and opens named shared-memory-backed files and maps
// them, handing the ring package a plain []byte to lay a ControlBlock and
// data region over.
//
// Adapted from the teacher's shm_segment.go/shm_mmap_unix.go, collapsed
// from a dual-ring (A/B, client<->server) segment with its own magic/
// version header down to a single region matching ring's ABI exactly: the
// ring.ControlBlock IS the segment header here, so shmseg carries none of
// its own.
package shmseg

import (
	"fmt"
	"os"
	"path/filepath"
)

// Segment is a mapped shared-memory-backed file.
type Segment struct {
	File *os.File
	Mem  []byte
	Path string
}

// CreateSegment creates a new segment of totalSize bytes under name,
// failing if one already exists. The caller passes ring.ControlPageSize+S
// as totalSize.
func CreateSegment(name string, totalSize uint64) (*Segment, error) {
	path := segmentPath(name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("shmseg: create %s: %w", path, err)
	}
	cleanup := func() {
		file.Close()
		os.Remove(path)
	}

	if err := file.Truncate(int64(totalSize)); err != nil {
		cleanup()
		return nil, fmt.Errorf("shmseg: resize %s to %d: %w", path, totalSize, err)
	}

	mem, err := mmapFile(file, int(totalSize))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("shmseg: mmap %s: %w", path, err)
	}

	return &Segment{File: file, Mem: mem, Path: path}, nil
}

// OpenSegment opens an existing segment under name and maps it at its
// current file size.
func OpenSegment(name string) (*Segment, error) {
	path := segmentPath(name)

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shmseg: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shmseg: stat %s: %w", path, err)
	}

	mem, err := mmapFile(file, int(info.Size()))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("shmseg: mmap %s: %w", path, err)
	}

	return &Segment{File: file, Mem: mem, Path: path}, nil
}

// Close unmaps the segment and closes its backing file. It does not remove
// the file; call RemoveSegment for that.
func (s *Segment) Close() error {
	var firstErr error
	if s.Mem != nil {
		if err := munmapFile(s.Mem); err != nil && firstErr == nil {
			firstErr = err
		}
		s.Mem = nil
	}
	if s.File != nil {
		if err := s.File.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.File = nil
	}
	return firstErr
}

// segmentPath prefers /dev/shm, the tmpfs-backed shared memory directory
// on Linux, falling back to os.TempDir() when it is unavailable (e.g. on a
// platform without /dev/shm at all, or a container that hasn't mounted
// it).
func segmentPath(name string) string {
	if isDevShmAvailable() {
		return filepath.Join("/dev/shm", "shmring_"+name)
	}
	return filepath.Join(os.TempDir(), "shmring_"+name)
}

func isDevShmAvailable() bool {
	info, err := os.Stat("/dev/shm")
	if err != nil {
		return false
	}
	return info.IsDir()
}

// RemoveSegment removes the backing file for name from wherever
// segmentPath would have placed it, checking both candidate locations
// since an existing segment may have been created before /dev/shm became
// available or vice versa.
func RemoveSegment(name string) error {
	paths := []string{
		filepath.Join("/dev/shm", "shmring_"+name),
		filepath.Join(os.TempDir(), "shmring_"+name),
	}
	var lastErr error
	for _, p := range paths {
		if err := os.Remove(p); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return os.ErrNotExist
}

// SegmentExists reports whether a segment backing file for name exists in
// either candidate location.
func SegmentExists(name string) bool {
	paths := []string{
		filepath.Join("/dev/shm", "shmring_"+name),
		filepath.Join(os.TempDir(), "shmring_"+name),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
