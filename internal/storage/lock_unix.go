//go:build unix

package storage

import (
	"os"
	"syscall"
)

func flockExclusive(f *os.File, block bool) error {
	how := syscall.LOCK_EX
	if !block {
		how |= syscall.LOCK_NB
	}
	return syscall.Flock(int(f.Fd()), how)
}

func flockRelease(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
