package repositories

import (
	"fmt"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/grocer/internal/domain/repositories"
)

const (
	UploaderKnife  = "knife"
	UploaderDryRun = "dryrun"
)

// UploaderFactory creates an uploader for the given settings, talking to the
// server described by knifeConfig.
type UploaderFactory func(settings *entities.Settings, knifeConfig string) domainRepos.UploaderRepository

// UploaderRegistry manages all registered uploader implementations.
type UploaderRegistry struct {
	factories map[string]UploaderFactory
}

// NewUploaderRegistry creates an empty uploader registry.
func NewUploaderRegistry() *UploaderRegistry {
	return &UploaderRegistry{
		factories: make(map[string]UploaderFactory),
	}
}

// Register adds an uploader factory under the given name.
func (r *UploaderRegistry) Register(name string, factory UploaderFactory) {
	r.factories[name] = factory
}

// Get returns an uploader instance for the given name.
func (r *UploaderRegistry) Get(
	name string, settings *entities.Settings, knifeConfig string,
) (domainRepos.UploaderRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown uploader: %q", name)
	}
	return factory(settings, knifeConfig), nil
}
