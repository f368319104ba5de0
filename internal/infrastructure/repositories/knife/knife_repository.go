package knife

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/shell"
)

// Options locates the knife binary, its configuration and the repository
// directories item files are read from.
type Options struct {
	Bin        string
	Config     string
	RepoPath   string
	RoleDir    string
	DatabagDir string
}

// Repository implements repositories.UploaderRepository by shelling out to knife.
type Repository struct {
	opts   Options
	runner shell.Runner
	log    logger.FieldLogger
}

var _ repositories.UploaderRepository = (*Repository)(nil)

// NewRepository creates a knife-backed uploader.
func NewRepository(opts Options, runner shell.Runner, log logger.FieldLogger) *Repository {
	if opts.Bin == "" {
		opts.Bin = "knife"
	}
	return &Repository{opts: opts, runner: runner, log: log}
}

func (r *Repository) UploadCookbooks(ctx context.Context, names []string) error {
	args := append([]string{"cookbook", "upload"}, names...)
	return r.exec(ctx, args...)
}

// DeleteCookbooks purges every version of each cookbook, one knife call per name.
func (r *Repository) DeleteCookbooks(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := r.exec(ctx, "cookbook", "delete", name, "--purge", "--yes"); err != nil {
			return err
		}
	}
	return nil
}

// UploadRoles uploads <role_dir>/<name>.rb for every role in a single call.
func (r *Repository) UploadRoles(ctx context.Context, names []string) error {
	args := []string{"role", "from", "file"}
	for _, name := range names {
		args = append(args, filepath.Join(r.opts.RepoPath, r.opts.RoleDir, name+".rb"))
	}
	return r.exec(ctx, args...)
}

func (r *Repository) DeleteRoles(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := r.exec(ctx, "role", "delete", name, "--yes"); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDatabagExists creates the bag unless `data bag list` already reports it.
func (r *Repository) EnsureDatabagExists(ctx context.Context, bag string) error {
	var bags []string
	if err := r.query(ctx, &bags, "data", "bag", "list"); err != nil {
		return err
	}
	if slices.Contains(bags, bag) {
		return nil
	}
	r.log.Infof("Creating data bag %s", bag)
	return r.exec(ctx, "data", "bag", "create", bag)
}

func (r *Repository) UploadDatabagItems(ctx context.Context, bag string, items []string) error {
	args := []string{"data", "bag", "from", "file", bag}
	for _, item := range items {
		args = append(args, filepath.Join(r.opts.RepoPath, r.opts.DatabagDir, bag, item+".json"))
	}
	return r.exec(ctx, args...)
}

func (r *Repository) DeleteDatabagItems(ctx context.Context, bag string, items []string) error {
	for _, item := range items {
		if err := r.exec(ctx, "data", "bag", "delete", bag, item, "--yes"); err != nil {
			return err
		}
	}
	return nil
}

// DeleteDatabagIfEmpty removes the bag when `data bag show` lists no items.
func (r *Repository) DeleteDatabagIfEmpty(ctx context.Context, bag string) error {
	var items []string
	if err := r.query(ctx, &items, "data", "bag", "show", bag); err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	r.log.Infof("Data bag %s is empty, deleting it", bag)
	return r.exec(ctx, "data", "bag", "delete", bag, "--yes")
}

func (r *Repository) exec(ctx context.Context, args ...string) error {
	args = append(args, "-c", r.opts.Config)
	if _, err := r.runner.Run(ctx, r.opts.RepoPath, r.opts.Bin, args...); err != nil {
		return fmt.Errorf("knife %s %s failed: %w", args[0], args[1], err)
	}
	return nil
}

func (r *Repository) query(ctx context.Context, out any, args ...string) error {
	args = append(args, "--format", "json", "-c", r.opts.Config)
	output, err := r.runner.Run(ctx, r.opts.RepoPath, r.opts.Bin, args...)
	if err != nil {
		return fmt.Errorf("knife %s %s failed: %w", args[0], args[1], err)
	}
	if err = json.Unmarshal([]byte(output), out); err != nil {
		return fmt.Errorf("unexpected knife output: %w", err)
	}
	return nil
}
