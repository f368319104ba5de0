package repositories

import (
	"context"

	"github.com/rios0rios0/grocer/internal/domain/entities"
)

// VCSRepository abstracts a local checkout of a version-control system (Git, Subversion).
// Implementations differ entirely in command shape and diff grammar, but all of them
// emit paths relative to the repository root.
type VCSRepository interface {
	// Name returns the backend identifier (e.g. "git", "svn").
	Name() string

	// Exists reports whether the checkout is present and usable.
	Exists(ctx context.Context) bool

	// HeadRevision returns the revision currently checked out.
	HeadRevision(ctx context.Context) (string, error)

	// Changes returns the path changes between fromRef and toRef. An empty toRef means
	// the working tree. Both refs are validated first; an unknown ref yields an
	// *entities.ReferenceError and unparseable diff output an *entities.ParseError.
	Changes(ctx context.Context, fromRef, toRef string) ([]entities.PathChange, error)

	// AllFiles lists every tracked file with StatusAdded.
	AllFiles(ctx context.Context) ([]entities.PathChange, error)

	// Update discards local modifications and brings the checkout up to date.
	Update(ctx context.Context) error

	// Checkout creates the checkout from the given URL.
	Checkout(ctx context.Context, url string) error
}
