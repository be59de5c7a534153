package storage

import (
	"os"
	"sync"
)

// FileLock serializes access to one record across goroutines and, on
// platforms that support flock, across processes.
type FileLock struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewFileLock creates a lock for the record at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock blocks until the lock is held.
func (l *FileLock) Lock() error {
	l.mu.Lock()

	var err error
	l.file, err = os.OpenFile(l.path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	if err := flockExclusive(l.file, true); err != nil {
		l.file.Close()
		l.file = nil
		l.mu.Unlock()
		return err
	}
	return nil
}

// TryLock acquires the lock without blocking and reports success.
func (l *FileLock) TryLock() bool {
	if !l.mu.TryLock() {
		return false
	}

	var err error
	l.file, err = os.OpenFile(l.path+".lock", os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		l.mu.Unlock()
		return false
	}

	if err := flockExclusive(l.file, false); err != nil {
		l.file.Close()
		l.file = nil
		l.mu.Unlock()
		return false
	}
	return true
}

// Unlock releases the lock and removes the lock file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	flockRelease(l.file)
	l.file.Close()
	os.Remove(l.path + ".lock")

	l.file = nil
	l.mu.Unlock()
	return nil
}
