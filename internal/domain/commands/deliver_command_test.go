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
	domainRepos "github.com/rios0rios0/grocer/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/grocer/internal/infrastructure/repositories"
	"github.com/rios0rios0/grocer/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/grocer/test/infrastructure/repositorydoubles"
)

// fixture wires a command against in-memory doubles.
type fixture struct {
	vcs        *doubles.StubVCSRepository
	checkpoint *doubles.StubCheckpointRepository
	lock       *doubles.StubLockRepository
	uploader   *doubles.SpyUploaderRepository
	dryRun     *doubles.SpyUploaderRepository
	knifeCfgs  []string

	vcsRegistry        *infraRepos.VCSRegistry
	checkpointRegistry *infraRepos.CheckpointRegistry
	uploaderRegistry   *infraRepos.UploaderRegistry
}

func newFixture() *fixture {
	f := &fixture{
		vcs:        &doubles.StubVCSRepository{Present: true, Head: "head-rev"},
		checkpoint: &doubles.StubCheckpointRepository{},
		lock:       &doubles.StubLockRepository{},
		uploader:   &doubles.SpyUploaderRepository{},
		dryRun:     &doubles.SpyUploaderRepository{},
	}

	f.vcsRegistry = infraRepos.NewVCSRegistry()
	f.vcsRegistry.Register(entities.VCSGit, func(_, _ string) domainRepos.VCSRepository { return f.vcs })

	f.checkpointRegistry = infraRepos.NewCheckpointRegistry()
	f.checkpointRegistry.Register("file", func(_ context.Context, _ string) (domainRepos.CheckpointRepository, error) {
		return f.checkpoint, nil
	})

	f.uploaderRegistry = infraRepos.NewUploaderRegistry()
	f.uploaderRegistry.Register(infraRepos.UploaderKnife,
		func(_ *entities.Settings, knifeConfig string) domainRepos.UploaderRepository {
			f.knifeCfgs = append(f.knifeCfgs, knifeConfig)
			return f.uploader
		})
	f.uploaderRegistry.Register(infraRepos.UploaderDryRun,
		func(_ *entities.Settings, _ string) domainRepos.UploaderRepository {
			return f.dryRun
		})
	return f
}

func (f *fixture) deliverCommand() *commands.DeliverCommand {
	log, _ := logrustest.NewNullLogger()
	return commands.NewDeliverCommand(
		f.vcsRegistry,
		f.checkpointRegistry,
		f.uploaderRegistry,
		func(_ string) domainRepos.LockRepository { return f.lock },
		commands.NewChangesetLoader(log),
		commands.NewDeltaCommand(log),
		log,
	)
}

func deliverSettings() *entities.Settings {
	return entitybuilders.NewSettingsBuilder().WithLocations(testLocations).BuildSettings()
}

func TestDeliverCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should apply the delta since the checkpoint and advance it", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.checkpoint.Rev, f.checkpoint.Found = "old-rev", true
		f.vcs.ChangesResult = []entities.PathChange{entitybuilders.Modified("roles/web.rb")}

		// when
		result, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.ChangesCall{{FromRef: "old-rev", ToRef: "head-rev"}}, f.vcs.ChangesCalls)
		assert.Equal(t, 1, f.vcs.UpdateCalls)
		assert.Equal(t, []string{"UploadRoles"}, f.uploader.Methods())
		assert.Equal(t, []string{"/etc/chef/knife.rb"}, f.knifeCfgs)
		assert.Equal(t, []string{"head-rev"}, f.checkpoint.Written)
		assert.Equal(t, "old-rev", result.FromRef)
		assert.Equal(t, "head-rev", result.ToRef)
		assert.False(t, f.lock.Locked)
		assert.Equal(t, 1, f.lock.UnlockCalls)
	})

	t.Run("should do nothing when the head equals the checkpoint", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.checkpoint.Rev, f.checkpoint.Found = "head-rev", true

		// when
		result, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.NoError(t, err)
		assert.Nil(t, result.Changeset)
		assert.Empty(t, f.vcs.ChangesCalls)
		assert.Empty(t, f.uploader.Calls)
		assert.Empty(t, f.checkpoint.Written)
	})

	t.Run("should do a full sync without a checkpoint", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.vcs.AllFilesResult = []entities.PathChange{
			entitybuilders.Added("cookbooks/a/apt/recipes/default.rb"),
			entitybuilders.Added("roles/web.rb"),
		}

		// when
		result, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, result.FromRef)
		assert.Equal(t, 1, f.vcs.AllFilesCalls)
		assert.Empty(t, f.vcs.ChangesCalls)
		assert.Equal(t, []string{"UploadCookbooks", "UploadRoles"}, f.uploader.Methods())
		assert.Equal(t, []string{"head-rev"}, f.checkpoint.Written)
	})

	t.Run("should fall back to a full sync when the checkpoint revision is gone", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.checkpoint.Rev, f.checkpoint.Found = "rewritten-rev", true
		f.vcs.ChangesErr = &entities.ReferenceError{Ref: "rewritten-rev"}
		f.vcs.AllFilesResult = []entities.PathChange{entitybuilders.Added("roles/web.rb")}

		// when
		result, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, result.FromRef)
		assert.Equal(t, 1, f.vcs.AllFilesCalls)
		assert.Equal(t, []string{"head-rev"}, f.checkpoint.Written)
	})

	t.Run("should not advance the checkpoint when the upload fails", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		boom := errors.New("knife exploded")
		f.uploader.FailOn = map[string]error{"UploadRoles": boom}
		f.vcs.AllFilesResult = []entities.PathChange{entitybuilders.Added("roles/web.rb")}

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.ErrorIs(t, err, boom)
		assert.Empty(t, f.checkpoint.Written)
		assert.Equal(t, 1, f.lock.UnlockCalls)
	})

	t.Run("should surface parse errors untouched", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.checkpoint.Rev, f.checkpoint.Found = "old-rev", true
		f.vcs.ChangesErr = &entities.ParseError{Backend: "git", Line: "X\tfoo", Output: "X\tfoo\n"}

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		var parseErr *entities.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "X\tfoo", parseErr.Line)
		assert.Empty(t, f.uploader.Calls)
		assert.Empty(t, f.checkpoint.Written)
	})

	t.Run("should use the dry-run uploader and keep the checkpoint", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.vcs.AllFilesResult = []entities.PathChange{entitybuilders.Added("roles/web.rb")}

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(),
			commands.DeliverOptions{DryRun: true})

		// then
		require.NoError(t, err)
		assert.Empty(t, f.uploader.Calls)
		assert.Equal(t, []string{"UploadRoles"}, f.dryRun.Methods())
		assert.Empty(t, f.checkpoint.Written)
	})

	t.Run("should leave the checkout untouched in dry-run mode", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.checkpoint.Rev, f.checkpoint.Found = "old-rev", true
		f.vcs.ChangesResult = []entities.PathChange{entitybuilders.Modified("roles/web.rb")}

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(),
			commands.DeliverOptions{DryRun: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, f.vcs.UpdateCalls)
		assert.Equal(t, []doubles.ChangesCall{{FromRef: "old-rev", ToRef: "head-rev"}}, f.vcs.ChangesCalls)
		assert.Equal(t, []string{"UploadRoles"}, f.dryRun.Methods())
	})

	t.Run("should not clone a missing repository in dry-run mode", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.vcs.Present = false
		settings := entitybuilders.NewSettingsBuilder().
			WithLocations(testLocations).
			WithRepoURL("https://git.example.com/chef.git").
			BuildSettings()

		// when
		result, err := f.deliverCommand().Execute(context.Background(), settings,
			commands.DeliverOptions{DryRun: true})

		// then
		require.NoError(t, err)
		assert.Nil(t, result.Changeset)
		assert.Empty(t, f.vcs.CheckoutURLs)
		assert.Empty(t, f.dryRun.Calls)
		assert.Empty(t, f.checkpoint.Written)
	})

	t.Run("should ignore the checkpoint on a forced full sync", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.checkpoint.Rev, f.checkpoint.Found = "head-rev", true
		f.vcs.AllFilesResult = []entities.PathChange{entitybuilders.Added("roles/web.rb")}

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(),
			commands.DeliverOptions{ForceFull: true, SkipUpdate: true})

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, f.vcs.UpdateCalls)
		assert.Equal(t, []string{"UploadRoles"}, f.uploader.Methods())
	})

	t.Run("should check out a missing repository from its URL", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.vcs.Present = false
		settings := entitybuilders.NewSettingsBuilder().
			WithLocations(testLocations).
			WithRepoURL("https://git.example.com/chef.git").
			BuildSettings()

		// when
		_, err := f.deliverCommand().Execute(context.Background(), settings, commands.DeliverOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"https://git.example.com/chef.git"}, f.vcs.CheckoutURLs)
		assert.Equal(t, 0, f.vcs.UpdateCalls)
	})

	t.Run("should fail on a missing repository without URL", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.vcs.Present = false

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryMissing)
	})

	t.Run("should refuse to run while another delivery holds the lock", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		f.lock.Busy = true

		// when
		_, err := f.deliverCommand().Execute(context.Background(), deliverSettings(), commands.DeliverOptions{})

		// then
		require.ErrorIs(t, err, commands.ErrAlreadyRunning)
		assert.Equal(t, 0, f.vcs.UpdateCalls)
		assert.Equal(t, 0, f.lock.UnlockCalls)
	})

	t.Run("should fail for an unknown repository type", func(t *testing.T) {
		t.Parallel()
		// given
		f := newFixture()
		settings := entitybuilders.NewSettingsBuilder().WithRepoType(entities.VCSSvn).BuildSettings()

		// when
		_, err := f.deliverCommand().Execute(context.Background(), settings, commands.DeliverOptions{})

		// then
		require.Error(t, err)
		assert.Equal(t, 1, f.lock.UnlockCalls)
	})
}
