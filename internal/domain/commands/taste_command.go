package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	infraRepos "github.com/rios0rios0/grocer/internal/infrastructure/repositories"
)

// Taste is the interface for the taste command (test-server mode).
type Taste interface {
	Execute(ctx context.Context, settings *entities.Settings, opts TasteOptions) (*entities.Changeset, error)
}

// TasteOptions holds runtime options for the taste mode.
type TasteOptions struct {
	DryRun bool
	Force  bool // upload everything instead of the delta since the last taste
}

// TasteCommand uploads local, possibly uncommitted, changes to a test server.
// The delta runs from the revision recorded in the ref file to the working
// tree, and the ref file is advanced to HEAD afterwards.
type TasteCommand struct {
	vcsRegistry        *infraRepos.VCSRegistry
	checkpointRegistry *infraRepos.CheckpointRegistry
	uploaderRegistry   *infraRepos.UploaderRegistry
	loader             *ChangesetLoader
	delta              Delta
	log                logger.FieldLogger
}

// NewTasteCommand creates a new TasteCommand.
func NewTasteCommand(
	vcsRegistry *infraRepos.VCSRegistry,
	checkpointRegistry *infraRepos.CheckpointRegistry,
	uploaderRegistry *infraRepos.UploaderRegistry,
	loader *ChangesetLoader,
	delta Delta,
	log logger.FieldLogger,
) *TasteCommand {
	return &TasteCommand{
		vcsRegistry:        vcsRegistry,
		checkpointRegistry: checkpointRegistry,
		uploaderRegistry:   uploaderRegistry,
		loader:             loader,
		delta:              delta,
		log:                log,
	}
}

// Execute uploads the working tree changes and returns what was applied.
func (it *TasteCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts TasteOptions,
) (*entities.Changeset, error) {
	repo, err := it.vcsRegistry.Get(settings.Repository.Type, settings.Repository.Path, settings.Repository.Bin)
	if err != nil {
		return nil, err
	}
	if !repo.Exists(ctx) {
		return nil, fmt.Errorf("%w: %s", entities.ErrRepositoryMissing, settings.Repository.Path)
	}

	head, err := repo.HeadRevision(ctx)
	if err != nil {
		return nil, err
	}

	refFile, err := it.checkpointRegistry.Get(ctx, settings.Taste.RefFile)
	if err != nil {
		return nil, err
	}

	fromRef := ""
	if !opts.Force {
		rev, found, readErr := refFile.Read(ctx)
		if readErr != nil {
			return nil, readErr
		}
		if found {
			fromRef = rev
			it.log.Infof("Last tasted revision: %s", rev)
		} else {
			it.log.Info("No previous taste recorded, uploading everything")
		}
	}

	changeset, err := it.loader.Load(ctx, repo, settings.Locations, fromRef, "")
	var refErr *entities.ReferenceError
	if errors.As(err, &refErr) {
		it.log.Warnf("Tasted revision %s is gone (%v), uploading everything", fromRef, err)
		changeset, err = it.loader.Load(ctx, repo, settings.Locations, "", "")
	}
	if err != nil {
		return nil, err
	}

	if changeset.IsEmpty() {
		it.log.Info("Nothing to upload")
	}

	uploaderName := infraRepos.UploaderKnife
	if opts.DryRun {
		uploaderName = infraRepos.UploaderDryRun
	}
	uploader, err := it.uploaderRegistry.Get(uploaderName, settings, settings.Taste.KnifeConfig)
	if err != nil {
		return nil, err
	}
	if err = it.delta.Apply(ctx, changeset, uploader); err != nil {
		return nil, fmt.Errorf("taste upload failed: %w", err)
	}

	if opts.DryRun {
		return changeset, nil
	}
	if err = refFile.Write(ctx, head); err != nil {
		return nil, err
	}
	return changeset, nil
}
