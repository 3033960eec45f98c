package config

import (
	"fmt"
	"os"
)

// lockSuffix is appended to a data file's path to name its lock file.
const lockSuffix = ".lock"

// FileLock provides file-based locking for cross-process synchronization.
// It uses a separate lock file rather than locking the data file directly.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock guarding path. The lock file sits next
// to it.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path: path + lockSuffix,
	}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	return l.path
}

// WithLock runs fn while holding the lock for path: exclusive for writers,
// shared for readers.
func WithLock(path string, exclusive bool, fn func() error) error {
	lock := NewFileLock(path)
	acquire := lock.RLock
	if exclusive {
		acquire = lock.Lock
	}
	if err := acquire(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer lock.Unlock()
	return fn()
}
