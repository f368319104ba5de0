//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/grocer/internal/domain/commands"
	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/grocer/test/infrastructure/repositorydoubles"
)

var testLocations = entities.Locations{ //nolint:gochecknoglobals // shared test fixture
	CookbookDirs: []string{"cookbooks/a", "cookbooks/b"},
	RoleDir:      "roles",
	DatabagDir:   "databags",
}

func newChangeset(files ...entities.PathChange) *entities.Changeset {
	log, _ := logrustest.NewNullLogger()
	return entities.NewChangeset(files, testLocations, log)
}

func TestDeltaCommandApply(t *testing.T) {
	t.Parallel()

	t.Run("should delete before uploading for every kind in order", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		spy := &doubles.SpyUploaderRepository{}
		changeset := newChangeset(
			entitybuilders.Modified("databags/users/alice.json"),
			entitybuilders.Modified("roles/web.rb"),
			entitybuilders.Deleted("roles/old.rb"),
			entitybuilders.Deleted("cookbooks/a/cb/metadata.rb"),
			entitybuilders.Deleted("cookbooks/a/cb/recipes/x.rb"),
			entitybuilders.Modified("cookbooks/b/cb/metadata.rb"),
			entitybuilders.Modified("cookbooks/b/cb/recipes/x.rb"),
			entitybuilders.Deleted("databags/apps/web.json"),
		)

		// when
		err := commands.NewDeltaCommand(log).Apply(context.Background(), changeset, spy)

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.UploaderCall{
			{Method: "DeleteCookbooks", Names: []string{"cb"}},
			{Method: "UploadCookbooks", Names: []string{"cb"}},
			{Method: "DeleteRoles", Names: []string{"old"}},
			{Method: "UploadRoles", Names: []string{"web"}},
			{Method: "DeleteDatabagItems", Bag: "apps", Names: []string{"web"}},
			{Method: "DeleteDatabagIfEmpty", Bag: "apps"},
			{Method: "EnsureDatabagExists", Bag: "users"},
			{Method: "UploadDatabagItems", Bag: "users", Names: []string{"alice"}},
		}, spy.Calls)
	})

	t.Run("should never call an uploader operation with an empty list", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		spy := &doubles.SpyUploaderRepository{}
		changeset := newChangeset(
			entitybuilders.Modified("cookbooks/a/apt/recipes/default.rb"),
		)

		// when
		err := commands.NewDeltaCommand(log).Apply(context.Background(), changeset, spy)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"UploadCookbooks"}, spy.Methods())
	})

	t.Run("should issue nothing for an empty changeset", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		spy := &doubles.SpyUploaderRepository{}

		// when
		err := commands.NewDeltaCommand(log).Apply(context.Background(), newChangeset(), spy)

		// then
		require.NoError(t, err)
		assert.Empty(t, spy.Calls)
	})

	t.Run("should group databag operations by bag", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		spy := &doubles.SpyUploaderRepository{}
		changeset := newChangeset(
			entitybuilders.Modified("databags/users/alice.json"),
			entitybuilders.Deleted("databags/users/carol.json"),
			entitybuilders.Modified("databags/apps/web.json"),
			entitybuilders.Modified("databags/users/bob.json"),
			entitybuilders.Deleted("databags/users/dave.json"),
		)

		// when
		err := commands.NewDeltaCommand(log).Apply(context.Background(), changeset, spy)

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.UploaderCall{
			{Method: "DeleteDatabagItems", Bag: "users", Names: []string{"carol", "dave"}},
			{Method: "DeleteDatabagIfEmpty", Bag: "users"},
			{Method: "EnsureDatabagExists", Bag: "users"},
			{Method: "UploadDatabagItems", Bag: "users", Names: []string{"alice", "bob"}},
			{Method: "EnsureDatabagExists", Bag: "apps"},
			{Method: "UploadDatabagItems", Bag: "apps", Names: []string{"web"}},
		}, spy.Calls)
	})

	t.Run("should log each batch before issuing it", func(t *testing.T) {
		t.Parallel()
		// given
		log, hook := logrustest.NewNullLogger()
		spy := &doubles.SpyUploaderRepository{}
		changeset := newChangeset(entitybuilders.Deleted("roles/old.rb"))

		// when
		err := commands.NewDeltaCommand(log).Apply(context.Background(), changeset, spy)

		// then
		require.NoError(t, err)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, "Deleting roles: old", hook.LastEntry().Message)
	})

	t.Run("should stop at the first uploader error and return it unchanged", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		boom := errors.New("knife exploded")
		spy := &doubles.SpyUploaderRepository{FailOn: map[string]error{"UploadCookbooks": boom}}
		changeset := newChangeset(
			entitybuilders.Modified("cookbooks/a/apt/recipes/default.rb"),
			entitybuilders.Modified("roles/web.rb"),
		)

		// when
		err := commands.NewDeltaCommand(log).Apply(context.Background(), changeset, spy)

		// then
		assert.Same(t, boom, err)
		assert.Equal(t, []string{"UploadCookbooks"}, spy.Methods())
	})
}
