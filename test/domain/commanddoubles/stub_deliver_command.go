//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// StubDeliverCommand is a stub implementation of commands.Deliver.
type StubDeliverCommand struct {
	ExecuteCallCount int
	ExecuteResult    *commands.DeliverResult
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.DeliverOptions
}

var _ commands.Deliver = (*StubDeliverCommand)(nil)

func (s *StubDeliverCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.DeliverOptions,
) (*commands.DeliverResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteResult, s.ExecuteErr
}
