//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// ChangesCall records a single invocation of Changes.
type ChangesCall struct {
	FromRef string
	ToRef   string
}

// StubVCSRepository implements repositories.VCSRepository with canned answers.
type StubVCSRepository struct {
	// --- identity ---
	BackendName string

	// --- Exists / HeadRevision ---
	Present bool
	Head    string
	HeadErr error

	// --- Changes ---
	ChangesResult []entities.PathChange
	ChangesErr    error
	ChangesCalls  []ChangesCall

	// --- AllFiles ---
	AllFilesResult []entities.PathChange
	AllFilesErr    error
	AllFilesCalls  int

	// --- Update / Checkout ---
	UpdateErr    error
	UpdateCalls  int
	CheckoutErr  error
	CheckoutURLs []string
}

var _ repositories.VCSRepository = (*StubVCSRepository)(nil)

func (s *StubVCSRepository) Name() string {
	if s.BackendName == "" {
		return "stub"
	}
	return s.BackendName
}

func (s *StubVCSRepository) Exists(_ context.Context) bool { return s.Present }

func (s *StubVCSRepository) HeadRevision(_ context.Context) (string, error) {
	return s.Head, s.HeadErr
}

func (s *StubVCSRepository) Changes(_ context.Context, fromRef, toRef string) ([]entities.PathChange, error) {
	s.ChangesCalls = append(s.ChangesCalls, ChangesCall{FromRef: fromRef, ToRef: toRef})
	return s.ChangesResult, s.ChangesErr
}

func (s *StubVCSRepository) AllFiles(_ context.Context) ([]entities.PathChange, error) {
	s.AllFilesCalls++
	return s.AllFilesResult, s.AllFilesErr
}

func (s *StubVCSRepository) Update(_ context.Context) error {
	s.UpdateCalls++
	return s.UpdateErr
}

func (s *StubVCSRepository) Checkout(_ context.Context, url string) error {
	s.CheckoutURLs = append(s.CheckoutURLs, url)
	if s.CheckoutErr == nil {
		s.Present = true
	}
	return s.CheckoutErr
}
