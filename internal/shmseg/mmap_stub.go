//go:build !unix

package shmseg

import (
	"errors"
	"os"
)

var errMmapUnsupported = errors.New("shmseg: mmap is not supported on this platform")

func mmapFile(file *os.File, size int) ([]byte, error) {
	return nil, errMmapUnsupported
}

func munmapFile(mem []byte) error {
	return errMmapUnsupported
}
