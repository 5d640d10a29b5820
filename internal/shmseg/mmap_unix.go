//go:build unix

package shmseg

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps size bytes of file's backing store read/write, shared
// across processes. Grounded on the teacher's shm_mmap_unix.go but
// retargeted from hand-rolled syscall.Mmap to golang.org/x/sys/unix.Mmap,
// matching the mmap convention
// other_examples/neehar-mavuduru-logger-double-buffer__shardv2_default.go
// uses for its own ring's backing store.
func mmapFile(file *os.File, size int) ([]byte, error) {
	data, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shmseg: mmap: %w", err)
	}
	return data, nil
}

// munmapFile unmaps a region previously returned by mmapFile.
func munmapFile(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("shmseg: munmap: %w", err)
	}
	return nil
}
