package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// FileLock provides cross-platform file locking using flock.
type FileLock struct {
	lock *flock.Flock
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at path + ".lock".
func NewFileLock(path string) *FileLock {
	return &FileLock{
		lock: flock.New(path + ".lock"),
	}
}

// Lock acquires the file lock with context support.
// It will retry with a 100ms interval until the context is cancelled or the lock is acquired.
func (l *FileLock) Lock(ctx context.Context) error {
	locked, err := l.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock: timeout")
	}
	return nil
}

// Unlock releases the file lock.
func (l *FileLock) Unlock() error {
	return l.lock.Unlock()
}

// writeFileLocked replaces path with data while holding path's lock, so two
// concurrent runs writing the same file never interleave.
func writeFileLocked(ctx context.Context, path string, data []byte) error {
	lock := NewFileLock(path)
	if err := lock.Lock(ctx); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tempPath, err)
	}

	// Atomic rename (os.Rename is atomic on POSIX systems)
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
