package commands

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// Delta is the interface for the delta executor.
type Delta interface {
	Apply(ctx context.Context, changeset *entities.Changeset, uploader repositories.UploaderRepository) error
}

// DeltaCommand turns a changeset into an ordered sequence of uploader calls:
// cookbooks, then roles, then databags; within each kind deletes run before
// uploads. The first uploader error aborts the run and is returned as is.
type DeltaCommand struct {
	log logger.FieldLogger
}

// NewDeltaCommand creates a new DeltaCommand.
func NewDeltaCommand(log logger.FieldLogger) *DeltaCommand {
	return &DeltaCommand{log: log}
}

// Apply issues the deletes and uploads for every entity in changeset.
func (it *DeltaCommand) Apply(
	ctx context.Context,
	changeset *entities.Changeset,
	uploader repositories.UploaderRepository,
) error {
	if err := it.applyCookbooks(ctx, changeset.Cookbooks(), uploader); err != nil {
		return err
	}
	if err := it.applyRoles(ctx, changeset.Roles(), uploader); err != nil {
		return err
	}
	return it.applyDatabags(ctx, changeset.Databags(), uploader)
}

func (it *DeltaCommand) applyCookbooks(
	ctx context.Context, cookbooks []entities.Entity, uploader repositories.UploaderRepository,
) error {
	deleted, modified := entities.PartitionByStatus(cookbooks)
	if names := entities.Names(deleted); len(names) > 0 {
		it.log.Infof("Deleting cookbooks: %s", strings.Join(names, ", "))
		if err := uploader.DeleteCookbooks(ctx, names); err != nil {
			return err
		}
	}
	if names := entities.Names(modified); len(names) > 0 {
		it.log.Infof("Uploading cookbooks: %s", strings.Join(names, ", "))
		if err := uploader.UploadCookbooks(ctx, names); err != nil {
			return err
		}
	}
	return nil
}

func (it *DeltaCommand) applyRoles(
	ctx context.Context, roles []entities.Entity, uploader repositories.UploaderRepository,
) error {
	deleted, modified := entities.PartitionByStatus(roles)
	if names := entities.Names(deleted); len(names) > 0 {
		it.log.Infof("Deleting roles: %s", strings.Join(names, ", "))
		if err := uploader.DeleteRoles(ctx, names); err != nil {
			return err
		}
	}
	if names := entities.Names(modified); len(names) > 0 {
		it.log.Infof("Uploading roles: %s", strings.Join(names, ", "))
		if err := uploader.UploadRoles(ctx, names); err != nil {
			return err
		}
	}
	return nil
}

func (it *DeltaCommand) applyDatabags(
	ctx context.Context, items []entities.Entity, uploader repositories.UploaderRepository,
) error {
	deleted, modified := entities.PartitionByStatus(items)
	for _, group := range entities.GroupByBag(deleted) {
		it.log.Infof("Deleting data bag items %s: %s", group.Bag, strings.Join(group.Items, ", "))
		if err := uploader.DeleteDatabagItems(ctx, group.Bag, group.Items); err != nil {
			return err
		}
		if err := uploader.DeleteDatabagIfEmpty(ctx, group.Bag); err != nil {
			return err
		}
	}
	for _, group := range entities.GroupByBag(modified) {
		it.log.Infof("Uploading data bag items %s: %s", group.Bag, strings.Join(group.Items, ", "))
		if err := uploader.EnsureDatabagExists(ctx, group.Bag); err != nil {
			return err
		}
		if err := uploader.UploadDatabagItems(ctx, group.Bag, group.Items); err != nil {
			return err
		}
	}
	return nil
}
