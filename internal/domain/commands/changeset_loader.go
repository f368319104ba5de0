package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// ChangesetLoader builds changesets from a VCS backend.
type ChangesetLoader struct {
	log logger.FieldLogger
}

// NewChangesetLoader creates a new ChangesetLoader.
func NewChangesetLoader(log logger.FieldLogger) *ChangesetLoader {
	return &ChangesetLoader{log: log}
}

// Load diffs fromRef against toRef (empty toRef is the working tree). An empty
// fromRef lists every tracked file instead, which is a full sync.
func (it *ChangesetLoader) Load(
	ctx context.Context,
	repo repositories.VCSRepository,
	locations entities.Locations,
	fromRef, toRef string,
) (*entities.Changeset, error) {
	var (
		files []entities.PathChange
		err   error
	)
	if fromRef == "" {
		it.log.Info("Loading all files for a full sync")
		files, err = repo.AllFiles(ctx)
	} else {
		files, err = repo.Changes(ctx, fromRef, toRef)
	}
	if err != nil {
		return nil, err
	}

	it.log.Debugf("%d path changes in %s checkout", len(files), repo.Name())
	return entities.NewChangeset(files, locations, it.log), nil
}
