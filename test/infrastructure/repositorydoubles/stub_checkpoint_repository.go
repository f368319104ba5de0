//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// StubCheckpointRepository implements repositories.CheckpointRepository in memory.
type StubCheckpointRepository struct {
	Rev     string
	Found   bool
	ReadErr error

	WriteErr error
	Written  []string
}

var _ repositories.CheckpointRepository = (*StubCheckpointRepository)(nil)

func (s *StubCheckpointRepository) Read(_ context.Context) (string, bool, error) {
	return s.Rev, s.Found, s.ReadErr
}

func (s *StubCheckpointRepository) Write(_ context.Context, rev string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Written = append(s.Written, rev)
	s.Rev = rev
	s.Found = true
	return nil
}

// StubLockRepository implements repositories.LockRepository.
type StubLockRepository struct {
	Busy        bool
	LockErr     error
	Locked      bool
	UnlockCalls int
}

var _ repositories.LockRepository = (*StubLockRepository)(nil)

func (s *StubLockRepository) TryLock() (bool, error) {
	if s.LockErr != nil || s.Busy {
		return false, s.LockErr
	}
	s.Locked = true
	return true, nil
}

func (s *StubLockRepository) Unlock() error {
	s.UnlockCalls++
	s.Locked = false
	return nil
}
