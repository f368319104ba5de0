package repositories

import "context"

// UploaderRepository executes uploads and deletes against the configuration server.
// It is a dumb executor: callers decide what to send and in which order, and never
// call it with an empty list.
type UploaderRepository interface {
	UploadCookbooks(ctx context.Context, names []string) error
	DeleteCookbooks(ctx context.Context, names []string) error

	UploadRoles(ctx context.Context, names []string) error
	DeleteRoles(ctx context.Context, names []string) error

	// EnsureDatabagExists creates the bag when the server does not know it yet.
	EnsureDatabagExists(ctx context.Context, bag string) error
	UploadDatabagItems(ctx context.Context, bag string, items []string) error
	DeleteDatabagItems(ctx context.Context, bag string, items []string) error
	// DeleteDatabagIfEmpty removes the bag once it holds no items.
	DeleteDatabagIfEmpty(ctx context.Context, bag string) error
}
