package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	infraRepos "github.com/rios0rios0/grocer/internal/infrastructure/repositories"
)

// Plan is the interface for the plan command.
type Plan interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PlanOptions) (*PlanResult, error)
}

// PlanOptions selects the revision range to classify.
type PlanOptions struct {
	FromRef string // defaults to the checkpoint
	ToRef   string // empty means the working tree
	Full    bool   // classify every tracked file
}

// PlanResult is the classified changeset of a revision range.
type PlanResult struct {
	FromRef   string
	ToRef     string
	Changeset *entities.Changeset
}

// PlanCommand classifies a revision range without touching the server.
type PlanCommand struct {
	vcsRegistry        *infraRepos.VCSRegistry
	checkpointRegistry *infraRepos.CheckpointRegistry
	loader             *ChangesetLoader
	log                logger.FieldLogger
}

// NewPlanCommand creates a new PlanCommand.
func NewPlanCommand(
	vcsRegistry *infraRepos.VCSRegistry,
	checkpointRegistry *infraRepos.CheckpointRegistry,
	loader *ChangesetLoader,
	log logger.FieldLogger,
) *PlanCommand {
	return &PlanCommand{
		vcsRegistry:        vcsRegistry,
		checkpointRegistry: checkpointRegistry,
		loader:             loader,
		log:                log,
	}
}

// Execute loads and classifies the requested range.
func (it *PlanCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PlanOptions,
) (*PlanResult, error) {
	repo, err := it.vcsRegistry.Get(settings.Repository.Type, settings.Repository.Path, settings.Repository.Bin)
	if err != nil {
		return nil, err
	}
	if !repo.Exists(ctx) {
		return nil, fmt.Errorf("%w: %s", entities.ErrRepositoryMissing, settings.Repository.Path)
	}

	fromRef := opts.FromRef
	if fromRef == "" && !opts.Full {
		checkpoint, cpErr := it.checkpointRegistry.Get(ctx, settings.Checkpoint)
		if cpErr != nil {
			return nil, cpErr
		}
		rev, found, readErr := checkpoint.Read(ctx)
		if readErr != nil {
			return nil, readErr
		}
		if found {
			fromRef = rev
		} else {
			it.log.Info("No checkpoint found, planning a full sync")
		}
	}
	if opts.Full {
		fromRef = ""
	}

	changeset, err := it.loader.Load(ctx, repo, settings.Locations, fromRef, opts.ToRef)
	if err != nil {
		return nil, err
	}
	return &PlanResult{FromRef: fromRef, ToRef: opts.ToRef, Changeset: changeset}, nil
}
