package knife

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// DryRunRepository logs every uploader call instead of executing it.
type DryRunRepository struct {
	log logger.FieldLogger
}

var _ repositories.UploaderRepository = (*DryRunRepository)(nil)

// NewDryRunRepository creates an uploader that only reports what it would do.
func NewDryRunRepository(log logger.FieldLogger) *DryRunRepository {
	return &DryRunRepository{log: log}
}

func (r *DryRunRepository) UploadCookbooks(_ context.Context, names []string) error {
	r.log.Infof("[DRYRUN] Would upload cookbooks: %s", strings.Join(names, ", "))
	return nil
}

func (r *DryRunRepository) DeleteCookbooks(_ context.Context, names []string) error {
	r.log.Infof("[DRYRUN] Would delete cookbooks: %s", strings.Join(names, ", "))
	return nil
}

func (r *DryRunRepository) UploadRoles(_ context.Context, names []string) error {
	r.log.Infof("[DRYRUN] Would upload roles: %s", strings.Join(names, ", "))
	return nil
}

func (r *DryRunRepository) DeleteRoles(_ context.Context, names []string) error {
	r.log.Infof("[DRYRUN] Would delete roles: %s", strings.Join(names, ", "))
	return nil
}

func (r *DryRunRepository) EnsureDatabagExists(_ context.Context, bag string) error {
	r.log.Infof("[DRYRUN] Would create data bag %s if missing", bag)
	return nil
}

func (r *DryRunRepository) UploadDatabagItems(_ context.Context, bag string, items []string) error {
	r.log.Infof("[DRYRUN] Would upload data bag items %s: %s", bag, strings.Join(items, ", "))
	return nil
}

func (r *DryRunRepository) DeleteDatabagItems(_ context.Context, bag string, items []string) error {
	r.log.Infof("[DRYRUN] Would delete data bag items %s: %s", bag, strings.Join(items, ", "))
	return nil
}

func (r *DryRunRepository) DeleteDatabagIfEmpty(_ context.Context, bag string) error {
	r.log.Infof("[DRYRUN] Would delete data bag %s if empty", bag)
	return nil
}
