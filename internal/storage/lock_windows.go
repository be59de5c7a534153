//go:build windows

package storage

import "os"

// Windows has no flock. The in-process mutex in FileLock still
// serializes writers within one invocation, which is the common case
// for a short-lived CLI.

func flockExclusive(f *os.File, block bool) error {
	return nil
}

func flockRelease(f *os.File) {}
