package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/grocer/internal/domain/repositories"
)

// VCSFactory creates a VCS backend for the checkout at path, using bin as the
// client binary when it is not empty.
type VCSFactory func(path, bin string) domainRepos.VCSRepository

// VCSRegistry manages all registered version-control backends.
type VCSRegistry struct {
	factories map[string]VCSFactory
}

// NewVCSRegistry creates an empty VCS registry.
func NewVCSRegistry() *VCSRegistry {
	return &VCSRegistry{
		factories: make(map[string]VCSFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "git").
func (r *VCSRegistry) Register(name string, factory VCSFactory) {
	r.factories[name] = factory
}

// Get returns a backend instance for the given name.
func (r *VCSRegistry) Get(name, path, bin string) (domainRepos.VCSRepository, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown repository type: %q", name)
	}
	return factory(path, bin), nil
}

// Names returns the registered backend names, sorted.
func (r *VCSRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
