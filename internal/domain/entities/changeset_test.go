//go:build unit

package entities_test

import (
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/test/domain/entitybuilders"
)

func TestChangeset(t *testing.T) {
	t.Parallel()

	locations := entities.Locations{
		CookbookDirs: []string{"cookbooks"},
		RoleDir:      "roles",
		DatabagDir:   "databags",
	}

	t.Run("should classify each kind independently", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		files := []entities.PathChange{
			entitybuilders.Modified("cookbooks/apt/recipes/default.rb"),
			entitybuilders.Deleted("roles/web.rb"),
			entitybuilders.Modified("databags/users/alice.json"),
			entitybuilders.Modified("README.md"),
		}

		// when
		changeset := entities.NewChangeset(files, locations, log)

		// then
		assert.Equal(t, []string{"apt"}, entities.Names(changeset.Cookbooks()))
		assert.Equal(t, []entities.Entity{entities.NewRole("web", entities.StatusDeleted)}, changeset.Roles())
		assert.Equal(t,
			[]entities.Entity{entities.NewDatabagItem("users", "alice", entities.StatusModified)},
			changeset.Databags(),
		)
		assert.False(t, changeset.IsEmpty())
	})

	t.Run("should return the cached classification on repeated calls", func(t *testing.T) {
		t.Parallel()
		// given
		log, hook := logrustest.NewNullLogger()
		files := []entities.PathChange{entitybuilders.Modified("roles/web.rb")}
		changeset := entities.NewChangeset(files, locations, log)

		// when
		first := changeset.Roles()
		entriesAfterFirst := len(hook.AllEntries())
		second := changeset.Roles()

		// then
		assert.Equal(t, first, second)
		assert.Len(t, hook.AllEntries(), entriesAfterFirst)
	})

	t.Run("should be empty when nothing classifies", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		files := []entities.PathChange{entitybuilders.Modified("docs/index.md")}

		// when
		changeset := entities.NewChangeset(files, locations, log)

		// then
		assert.True(t, changeset.IsEmpty())
		assert.Equal(t, files, changeset.Files())
	})

	t.Run("should drop excluded paths before classification", func(t *testing.T) {
		t.Parallel()
		// given
		log, _ := logrustest.NewNullLogger()
		excluding := locations
		excluding.Exclude = []string{"cookbooks/*/test/**", "roles/legacy_*.rb"}
		files := []entities.PathChange{
			entitybuilders.Modified("cookbooks/apt/test/integration/default_test.rb"),
			entitybuilders.Modified("roles/legacy_web.rb"),
			entitybuilders.Modified("roles/web.rb"),
		}

		// when
		changeset := entities.NewChangeset(files, excluding, log)

		// then
		assert.Empty(t, changeset.Cookbooks())
		require.Len(t, changeset.Roles(), 1)
		assert.Equal(t, "web", changeset.Roles()[0].Name)
		assert.Len(t, changeset.Files(), 1)
	})
}

func TestEntityHelpers(t *testing.T) {
	t.Parallel()

	t.Run("should partition by status preserving order", func(t *testing.T) {
		t.Parallel()
		// given
		list := []entities.Entity{
			entities.NewRole("a", entities.StatusDeleted),
			entities.NewRole("b", entities.StatusAdded),
			entities.NewRole("c", entities.StatusDeleted),
		}

		// when
		deleted, modified := entities.PartitionByStatus(list)

		// then
		assert.Equal(t, []string{"a", "c"}, entities.Names(deleted))
		assert.Equal(t, []string{"b"}, entities.Names(modified))
	})

	t.Run("should collapse duplicate names", func(t *testing.T) {
		t.Parallel()
		// given
		list := []entities.Entity{
			entities.NewCookbook("cookbooks/a", "cb", entities.StatusModified),
			entities.NewCookbook("cookbooks/b", "cb", entities.StatusModified),
			entities.NewCookbook("cookbooks/a", "apt", entities.StatusModified),
		}

		// when
		names := entities.Names(list)

		// then
		assert.Equal(t, []string{"cb", "apt"}, names)
	})

	t.Run("should group databag items by bag in first-occurrence order", func(t *testing.T) {
		t.Parallel()
		// given
		list := []entities.Entity{
			entities.NewDatabagItem("users", "alice", entities.StatusModified),
			entities.NewDatabagItem("apps", "web", entities.StatusModified),
			entities.NewDatabagItem("users", "bob", entities.StatusModified),
			entities.NewDatabagItem("users", "alice", entities.StatusModified),
		}

		// when
		groups := entities.GroupByBag(list)

		// then
		assert.Equal(t, []entities.DatabagGroup{
			{Bag: "users", Items: []string{"alice", "bob"}},
			{Bag: "apps", Items: []string{"web"}},
		}, groups)
	})
}
