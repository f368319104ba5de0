//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// StubTasteCommand is a stub implementation of commands.Taste.
type StubTasteCommand struct {
	ExecuteCallCount int
	ExecuteResult    *entities.Changeset
	ExecuteErr       error
	LastOpts         commands.TasteOptions
}

var _ commands.Taste = (*StubTasteCommand)(nil)

func (s *StubTasteCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.TasteOptions,
) (*entities.Changeset, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.ExecuteResult, s.ExecuteErr
}
