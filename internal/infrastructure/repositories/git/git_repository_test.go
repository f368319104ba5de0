//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/git"
	doubles "github.com/rios0rios0/grocer/test/infrastructure/repositorydoubles"
)

// initRepo creates a repository with one commit holding files and returns
// its path and head hash.
func initRepo(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		writeFile(t, dir, name, content)
		_, err = wt.Add(name)
		require.NoError(t, err)
	}
	hash, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "chef", Email: "chef@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, hash.String()
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

func newRepo(path string, runner *doubles.SpyRunner) *git.Repository {
	log, _ := logrustest.NewNullLogger()
	return git.NewRepository(path, "git", runner, log)
}

func TestGitRepository(t *testing.T) {
	t.Parallel()

	t.Run("should report head and existence of a checkout", func(t *testing.T) {
		t.Parallel()
		// given
		dir, head := initRepo(t, map[string]string{"roles/web.rb": "name 'web'"})
		repo := newRepo(dir, &doubles.SpyRunner{})

		// when
		rev, err := repo.HeadRevision(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, head, rev)
		assert.True(t, repo.Exists(context.Background()))
		assert.Equal(t, entities.VCSGit, repo.Name())
	})

	t.Run("should not find a checkout in an empty directory", func(t *testing.T) {
		t.Parallel()
		// given
		repo := newRepo(t.TempDir(), &doubles.SpyRunner{})

		// when
		exists := repo.Exists(context.Background())

		// then
		assert.False(t, exists)
	})

	t.Run("should list every indexed file as added", func(t *testing.T) {
		t.Parallel()
		// given
		dir, _ := initRepo(t, map[string]string{
			"roles/web.rb":              "name 'web'",
			"cookbooks/apt/metadata.rb": "name 'apt'",
		})
		repo := newRepo(dir, &doubles.SpyRunner{})

		// when
		files, err := repo.AllFiles(context.Background())

		// then
		require.NoError(t, err)
		assert.ElementsMatch(t, []entities.PathChange{
			{Path: "roles/web.rb", Status: entities.StatusAdded},
			{Path: "cookbooks/apt/metadata.rb", Status: entities.StatusAdded},
		}, files)
	})

	t.Run("should diff against the working tree and add untracked files", func(t *testing.T) {
		t.Parallel()
		// given
		dir, head := initRepo(t, map[string]string{"roles/web.rb": "name 'web'"})
		writeFile(t, dir, "roles/db.rb", "name 'db'")
		runner := &doubles.SpyRunner{Outputs: map[string]string{"git diff": "M\troles/web.rb\n"}}
		repo := newRepo(dir, runner)

		// when
		changes, err := repo.Changes(context.Background(), head, "")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"git diff --name-status -M --no-color --no-ext-diff " + head}, runner.Lines())
		assert.Equal(t, []entities.PathChange{
			{Path: "roles/web.rb", Status: entities.StatusModified},
			{Path: "roles/db.rb", Status: entities.StatusAdded},
		}, changes)
	})

	t.Run("should keep non-ASCII paths git prints quoted", func(t *testing.T) {
		t.Parallel()
		// given
		dir, head := initRepo(t, map[string]string{"cookbooks/cb/recipes/café.rb": "log 'x'"})
		runner := &doubles.SpyRunner{Outputs: map[string]string{
			"git diff": "M\t\"cookbooks/cb/recipes/caf\\303\\251.rb\"\n",
		}}
		repo := newRepo(dir, runner)

		// when
		changes, err := repo.Changes(context.Background(), head, head)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.PathChange{
			{Path: "cookbooks/cb/recipes/café.rb", Status: entities.StatusModified},
		}, changes)
	})

	t.Run("should report an unknown revision as a reference error", func(t *testing.T) {
		t.Parallel()
		// given
		dir, _ := initRepo(t, map[string]string{"roles/web.rb": "name 'web'"})
		runner := &doubles.SpyRunner{}
		repo := newRepo(dir, runner)

		// when
		_, err := repo.Changes(context.Background(), "0123456789abcdef0123456789abcdef01234567", "")

		// then
		var refErr *entities.ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Empty(t, runner.Calls)
	})
}
