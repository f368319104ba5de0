package repositories

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	domainRepos "github.com/rios0rios0/grocer/internal/domain/repositories"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/checkpoint"
	gitRepo "github.com/rios0rios0/grocer/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/knife"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/lock"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/shell"
	svnRepo "github.com/rios0rios0/grocer/internal/infrastructure/repositories/svn"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register VCS registry with all backend factories
	if err := container.Provide(func(log logger.FieldLogger) *VCSRegistry {
		reg := NewVCSRegistry()
		reg.Register(entities.VCSGit, func(path, bin string) domainRepos.VCSRepository {
			return gitRepo.NewVCSRepository(path, bin, log)
		})
		reg.Register(entities.VCSSvn, func(path, bin string) domainRepos.VCSRepository {
			return svnRepo.NewVCSRepository(path, bin, log)
		})
		return reg
	}); err != nil {
		return err
	}

	// Register uploader registry with the knife and dry-run uploaders
	if err := container.Provide(func(log logger.FieldLogger) *UploaderRegistry {
		reg := NewUploaderRegistry()
		reg.Register(UploaderKnife, func(settings *entities.Settings, knifeConfig string) domainRepos.UploaderRepository {
			return knife.NewRepository(knife.Options{
				Bin:        settings.Knife.Bin,
				Config:     knifeConfig,
				RepoPath:   settings.Repository.Path,
				RoleDir:    settings.Locations.RoleDir,
				DatabagDir: settings.Locations.DatabagDir,
			}, shell.NewExecRunner(log), log)
		})
		reg.Register(UploaderDryRun, func(_ *entities.Settings, _ string) domainRepos.UploaderRepository {
			return knife.NewDryRunRepository(log)
		})
		return reg
	}); err != nil {
		return err
	}

	// Register checkpoint registry with the file and S3 stores
	if err := container.Provide(func() *CheckpointRegistry {
		reg := NewCheckpointRegistry()
		reg.Register(fileScheme, func(_ context.Context, location string) (domainRepos.CheckpointRepository, error) {
			return checkpoint.NewFileRepository(strings.TrimPrefix(location, fileScheme+"://")), nil
		})
		reg.Register("s3", func(ctx context.Context, location string) (domainRepos.CheckpointRepository, error) {
			return checkpoint.NewS3RepositoryFromURL(ctx, location)
		})
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() LockFactory {
		return lock.NewLockRepository
	}); err != nil {
		return err
	}

	return nil
}
