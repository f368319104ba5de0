package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/grocer/internal/infrastructure/repositories"
)

// ErrAlreadyRunning is returned when another delivery holds the lock file.
var ErrAlreadyRunning = errors.New("another delivery is already running")

// Deliver is the interface for the deliver command (daemon mode).
type Deliver interface {
	Execute(ctx context.Context, settings *entities.Settings, opts DeliverOptions) (*DeliverResult, error)
}

// DeliverOptions holds runtime options for a single delivery.
type DeliverOptions struct {
	DryRun     bool
	ForceFull  bool // ignore the checkpoint and upload everything
	SkipUpdate bool // deliver the checkout as it is, without pulling
}

// DeliverResult summarises a delivery run.
type DeliverResult struct {
	FromRef   string // empty for a full sync
	ToRef     string
	Changeset *entities.Changeset // nil when nothing had to be done
}

// DeliverCommand keeps the configuration server in sync with the checkout:
// update the checkout, diff it against the checkpoint, apply the delta and
// advance the checkpoint.
type DeliverCommand struct {
	vcsRegistry        *infraRepos.VCSRegistry
	checkpointRegistry *infraRepos.CheckpointRegistry
	uploaderRegistry   *infraRepos.UploaderRegistry
	newLock            infraRepos.LockFactory
	loader             *ChangesetLoader
	delta              Delta
	log                logger.FieldLogger
}

// NewDeliverCommand creates a new DeliverCommand.
func NewDeliverCommand(
	vcsRegistry *infraRepos.VCSRegistry,
	checkpointRegistry *infraRepos.CheckpointRegistry,
	uploaderRegistry *infraRepos.UploaderRegistry,
	newLock infraRepos.LockFactory,
	loader *ChangesetLoader,
	delta Delta,
	log logger.FieldLogger,
) *DeliverCommand {
	return &DeliverCommand{
		vcsRegistry:        vcsRegistry,
		checkpointRegistry: checkpointRegistry,
		uploaderRegistry:   uploaderRegistry,
		newLock:            newLock,
		loader:             loader,
		delta:              delta,
		log:                log,
	}
}

// Execute runs one delivery under the lock file.
func (it *DeliverCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts DeliverOptions,
) (*DeliverResult, error) {
	lock := it.newLock(settings.Lockfile)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			it.log.Warnf("Failed to release lock: %v", unlockErr)
		}
	}()

	repo, err := it.vcsRegistry.Get(settings.Repository.Type, settings.Repository.Path, settings.Repository.Bin)
	if err != nil {
		return nil, err
	}
	ready, err := it.prepare(ctx, repo, settings, opts)
	if err != nil {
		return nil, err
	}
	if !ready {
		it.log.Warn("[DRYRUN] No checkout to deliver from, nothing else to do")
		return &DeliverResult{}, nil
	}

	head, err := repo.HeadRevision(ctx)
	if err != nil {
		return nil, err
	}

	checkpoint, err := it.checkpointRegistry.Get(ctx, settings.Checkpoint)
	if err != nil {
		return nil, err
	}
	fromRef, err := it.startingPoint(ctx, checkpoint, opts)
	if err != nil {
		return nil, err
	}

	result := &DeliverResult{FromRef: fromRef, ToRef: head}
	if fromRef == head {
		it.log.Info("Repo has not changed, nothing to do")
		return result, nil
	}

	changeset, err := it.loader.Load(ctx, repo, settings.Locations, fromRef, head)
	var refErr *entities.ReferenceError
	if errors.As(err, &refErr) {
		it.log.Warnf("Checkpoint %s is unusable (%v), falling back to a full sync", fromRef, err)
		result.FromRef = ""
		changeset, err = it.loader.Load(ctx, repo, settings.Locations, "", head)
	}
	if err != nil {
		return nil, err
	}
	result.Changeset = changeset

	uploaderName := infraRepos.UploaderKnife
	if opts.DryRun {
		uploaderName = infraRepos.UploaderDryRun
	}
	uploader, err := it.uploaderRegistry.Get(uploaderName, settings, settings.Knife.Config)
	if err != nil {
		return nil, err
	}

	if err = it.delta.Apply(ctx, changeset, uploader); err != nil {
		return nil, fmt.Errorf("delivery of %s failed: %w", head, err)
	}

	if opts.DryRun {
		it.log.Infof("[DRYRUN] Would write checkpoint %s", head)
		return result, nil
	}
	if err = checkpoint.Write(ctx, head); err != nil {
		return nil, err
	}
	it.log.Infof("Delivered up to %s", head)
	return result, nil
}

// prepare makes sure the checkout exists and is current. In dry-run mode the
// checkout is left untouched; ready is false when there is none to read.
func (it *DeliverCommand) prepare(
	ctx context.Context,
	repo repositories.VCSRepository,
	settings *entities.Settings,
	opts DeliverOptions,
) (bool, error) {
	if !repo.Exists(ctx) {
		if settings.Repository.URL == "" {
			return false, fmt.Errorf("%w: %s", entities.ErrRepositoryMissing, settings.Repository.Path)
		}
		if opts.DryRun {
			it.log.Infof("[DRYRUN] Would clone %s into %s", settings.Repository.URL, settings.Repository.Path)
			return false, nil
		}
		it.log.Infof("Checking out %s into %s", settings.Repository.URL, settings.Repository.Path)
		return true, repo.Checkout(ctx, settings.Repository.URL)
	}
	switch {
	case opts.SkipUpdate:
	case opts.DryRun:
		it.log.Infof("[DRYRUN] Would update %s checkout at %s", repo.Name(), settings.Repository.Path)
	default:
		it.log.Infof("Updating %s checkout at %s", repo.Name(), settings.Repository.Path)
		if err := repo.Update(ctx); err != nil {
			return false, err
		}
	}
	return true, nil
}

// startingPoint returns the checkpoint revision, or empty for a full sync.
func (it *DeliverCommand) startingPoint(
	ctx context.Context,
	checkpoint repositories.CheckpointRepository,
	opts DeliverOptions,
) (string, error) {
	if opts.ForceFull {
		it.log.Info("Full sync requested")
		return "", nil
	}
	rev, found, err := checkpoint.Read(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		it.log.Info("No checkpoint found, doing a full sync")
		return "", nil
	}
	it.log.Infof("Last delivered revision: %s", rev)
	return rev, nil
}
