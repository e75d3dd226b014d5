//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}

func advise(data []byte, a Access) error {
	hint := unix.MADV_SEQUENTIAL
	if a == Random {
		hint = unix.MADV_RANDOM
	}
	// Hints are advisory; some kernels reject them with EINVAL.
	if err := unix.Madvise(data, hint); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
