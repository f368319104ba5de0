package repositories

import "context"

// CheckpointRepository persists the last successfully delivered revision.
type CheckpointRepository interface {
	// Read returns the stored revision; found is false when nothing was stored yet.
	Read(ctx context.Context) (rev string, found bool, err error)

	// Write replaces the stored revision as a whole.
	Write(ctx context.Context, rev string) error
}
