package entities

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Locations are the repository-relative directories holding each entity kind.
type Locations struct {
	CookbookDirs []string `yaml:"cookbook_dirs" hcl:"cookbook_dirs,optional"`
	RoleDir      string   `yaml:"role_dir"      hcl:"role_dir,optional"`
	DatabagDir   string   `yaml:"databag_dir"   hcl:"databag_dir,optional"`
	// Exclude holds doublestar globs; matching paths never reach a classifier.
	Exclude []string `yaml:"exclude" hcl:"exclude,optional"`
}

// ValidateExcludes checks every exclude pattern is a well-formed glob.
func (l Locations) ValidateExcludes() error {
	for _, pattern := range l.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// FilterExcluded drops the changes whose path matches an exclude pattern.
func (l Locations) FilterExcluded(changes []PathChange) []PathChange {
	if len(l.Exclude) == 0 {
		return changes
	}
	kept := make([]PathChange, 0, len(changes))
	for _, change := range changes {
		if !l.excluded(change.Path) {
			kept = append(kept, change)
		}
	}
	return kept
}

func (l Locations) excluded(p string) bool {
	for _, pattern := range l.Exclude {
		if matched, _ := doublestar.Match(pattern, p); matched {
			return true
		}
	}
	return false
}
