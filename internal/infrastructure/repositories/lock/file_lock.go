package lock

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// FileLock is an advisory lock on a file shared by every grocer process.
type FileLock struct {
	flock *flock.Flock
}

var _ repositories.LockRepository = (*FileLock)(nil)

// NewFileLock creates a lock backed by path. The file is created on first use.
func NewFileLock(path string) *FileLock {
	return &FileLock{flock: flock.New(path)}
}

// NewLockRepository adapts NewFileLock to the registry factory signature.
func NewLockRepository(path string) repositories.LockRepository {
	return NewFileLock(path)
}

func (l *FileLock) TryLock() (bool, error) {
	ok, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to lock %s: %w", l.flock.Path(), err)
	}
	return ok, nil
}

func (l *FileLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.flock.Path(), err)
	}
	return nil
}
