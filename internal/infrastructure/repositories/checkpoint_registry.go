package repositories

import (
	"context"
	"fmt"
	"strings"

	domainRepos "github.com/rios0rios0/grocer/internal/domain/repositories"
)

const fileScheme = "file"

// CheckpointFactory creates a checkpoint store for a configured location.
type CheckpointFactory func(ctx context.Context, location string) (domainRepos.CheckpointRepository, error)

// CheckpointRegistry picks a checkpoint store by the scheme of its location.
// Locations without a scheme are plain file paths.
type CheckpointRegistry struct {
	factories map[string]CheckpointFactory
}

// NewCheckpointRegistry creates an empty checkpoint registry.
func NewCheckpointRegistry() *CheckpointRegistry {
	return &CheckpointRegistry{
		factories: make(map[string]CheckpointFactory),
	}
}

// Register adds a store factory for the given scheme ("file", "s3").
func (r *CheckpointRegistry) Register(scheme string, factory CheckpointFactory) {
	r.factories[scheme] = factory
}

// Get returns the store for location.
func (r *CheckpointRegistry) Get(ctx context.Context, location string) (domainRepos.CheckpointRepository, error) {
	scheme := fileScheme
	if before, _, found := strings.Cut(location, "://"); found {
		scheme = before
	}
	factory, ok := r.factories[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported checkpoint location: %q", location)
	}
	return factory(ctx, location)
}
