//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/grocer/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	repoType   string
	repoPath   string
	repoURL    string
	checkpoint string
	locations  entities.Locations
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		repoType:    entities.VCSGit,
		repoPath:    "/srv/chef-repo",
		checkpoint:  "/srv/grocer_revision",
		locations:   defaultLocations(),
	}
}

func defaultLocations() entities.Locations {
	return entities.Locations{
		CookbookDirs: []string{"cookbooks"},
		RoleDir:      "roles",
		DatabagDir:   "databags",
	}
}

// WithRepoType sets the VCS type.
func (b *SettingsBuilder) WithRepoType(repoType string) *SettingsBuilder {
	b.repoType = repoType
	return b
}

// WithRepoPath sets the checkout path.
func (b *SettingsBuilder) WithRepoPath(path string) *SettingsBuilder {
	b.repoPath = path
	return b
}

// WithRepoURL sets the URL used to create a missing checkout.
func (b *SettingsBuilder) WithRepoURL(url string) *SettingsBuilder {
	b.repoURL = url
	return b
}

// WithCheckpoint sets the checkpoint location.
func (b *SettingsBuilder) WithCheckpoint(location string) *SettingsBuilder {
	b.checkpoint = location
	return b
}

// WithLocations sets the entity directories.
func (b *SettingsBuilder) WithLocations(locations entities.Locations) *SettingsBuilder {
	b.locations = locations
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Repository: entities.RepositoryConfig{Type: b.repoType, Path: b.repoPath, URL: b.repoURL},
		Locations:  b.locations,
		Checkpoint: b.checkpoint,
		Lockfile:   "/tmp/grocer-test.lock",
		Knife:      &entities.KnifeConfig{Bin: "knife", Config: "/etc/chef/knife.rb"},
		Taste: &entities.TasteConfig{
			KnifeConfig: "/etc/chef/knife-taste.rb",
			RefFile:     "/tmp/grocer-taste.ref",
		},
		Watch: &entities.WatchConfig{Interval: "5m"},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.repoType = entities.VCSGit
	b.repoPath = "/srv/chef-repo"
	b.repoURL = ""
	b.checkpoint = "/srv/grocer_revision"
	b.locations = defaultLocations()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	locations := b.locations
	locations.CookbookDirs = append([]string(nil), b.locations.CookbookDirs...)
	locations.Exclude = append([]string(nil), b.locations.Exclude...)
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		repoType:    b.repoType,
		repoPath:    b.repoPath,
		repoURL:     b.repoURL,
		checkpoint:  b.checkpoint,
		locations:   locations,
	}
}
