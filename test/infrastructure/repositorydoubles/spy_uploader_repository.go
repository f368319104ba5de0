//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// UploaderCall records a single uploader invocation.
type UploaderCall struct {
	Method string
	Bag    string
	Names  []string
}

// SpyUploaderRepository implements repositories.UploaderRepository as a spy
// recording every call in order.
type SpyUploaderRepository struct {
	Calls []UploaderCall

	// FailOn makes the named method return the given error.
	FailOn map[string]error
}

var _ repositories.UploaderRepository = (*SpyUploaderRepository)(nil)

// Methods returns the recorded method names in call order.
func (s *SpyUploaderRepository) Methods() []string {
	methods := make([]string, 0, len(s.Calls))
	for _, c := range s.Calls {
		methods = append(methods, c.Method)
	}
	return methods
}

func (s *SpyUploaderRepository) record(method, bag string, names []string) error {
	s.Calls = append(s.Calls, UploaderCall{Method: method, Bag: bag, Names: names})
	return s.FailOn[method]
}

func (s *SpyUploaderRepository) UploadCookbooks(_ context.Context, names []string) error {
	return s.record("UploadCookbooks", "", names)
}

func (s *SpyUploaderRepository) DeleteCookbooks(_ context.Context, names []string) error {
	return s.record("DeleteCookbooks", "", names)
}

func (s *SpyUploaderRepository) UploadRoles(_ context.Context, names []string) error {
	return s.record("UploadRoles", "", names)
}

func (s *SpyUploaderRepository) DeleteRoles(_ context.Context, names []string) error {
	return s.record("DeleteRoles", "", names)
}

func (s *SpyUploaderRepository) EnsureDatabagExists(_ context.Context, bag string) error {
	return s.record("EnsureDatabagExists", bag, nil)
}

func (s *SpyUploaderRepository) UploadDatabagItems(_ context.Context, bag string, items []string) error {
	return s.record("UploadDatabagItems", bag, items)
}

func (s *SpyUploaderRepository) DeleteDatabagItems(_ context.Context, bag string, items []string) error {
	return s.record("DeleteDatabagItems", bag, items)
}

func (s *SpyUploaderRepository) DeleteDatabagIfEmpty(_ context.Context, bag string) error {
	return s.record("DeleteDatabagIfEmpty", bag, nil)
}
