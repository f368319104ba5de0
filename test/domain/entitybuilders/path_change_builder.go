//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/grocer/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PathChangeBuilder helps create test path changes with a fluent interface.
type PathChangeBuilder struct {
	*testkit.BaseBuilder
	path   string
	status entities.ChangeStatus
}

// NewPathChangeBuilder creates a new path change builder with sensible defaults.
func NewPathChangeBuilder() *PathChangeBuilder {
	return &PathChangeBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "cookbooks/test/recipes/default.rb",
		status:      entities.StatusModified,
	}
}

// WithPath sets the repository-relative path.
func (b *PathChangeBuilder) WithPath(path string) *PathChangeBuilder {
	b.path = path
	return b
}

// Added marks the change as an addition.
func (b *PathChangeBuilder) Added() *PathChangeBuilder {
	b.status = entities.StatusAdded
	return b
}

// Modified marks the change as a modification.
func (b *PathChangeBuilder) Modified() *PathChangeBuilder {
	b.status = entities.StatusModified
	return b
}

// Deleted marks the change as a deletion.
func (b *PathChangeBuilder) Deleted() *PathChangeBuilder {
	b.status = entities.StatusDeleted
	return b
}

// Build creates the path change (satisfies testkit.Builder interface).
func (b *PathChangeBuilder) Build() interface{} {
	return b.BuildPathChange()
}

// BuildPathChange creates the path change with a concrete return type.
func (b *PathChangeBuilder) BuildPathChange() entities.PathChange {
	return entities.PathChange{Path: b.path, Status: b.status}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PathChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "cookbooks/test/recipes/default.rb"
	b.status = entities.StatusModified
	return b
}

// Clone creates a deep copy of the PathChangeBuilder.
func (b *PathChangeBuilder) Clone() testkit.Builder {
	return &PathChangeBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		status:      b.status,
	}
}

// Modified is a shorthand for a modified path change.
func Modified(path string) entities.PathChange {
	return NewPathChangeBuilder().WithPath(path).Modified().BuildPathChange()
}

// Added is a shorthand for an added path change.
func Added(path string) entities.PathChange {
	return NewPathChangeBuilder().WithPath(path).Added().BuildPathChange()
}

// Deleted is a shorthand for a deleted path change.
func Deleted(path string) entities.PathChange {
	return NewPathChangeBuilder().WithPath(path).Deleted().BuildPathChange()
}
