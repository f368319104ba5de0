package svn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/domain/repositories"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/shell"
)

const defaultBin = "svn"

// Error codes svn reports for a revision that does not exist (E160006) or a
// path missing at that revision (E195012). Anything else is an I/O failure.
var missingRevisionCodes = []string{"E160006", "E195012"} //nolint:gochecknoglobals // constant table

// Repository implements repositories.VCSRepository for Subversion working copies
// by shelling out to the svn client.
type Repository struct {
	path   string
	bin    string
	runner shell.Runner
	log    logger.FieldLogger
}

var _ repositories.VCSRepository = (*Repository)(nil)

// NewRepository creates a Subversion backend for the working copy at path.
func NewRepository(path, bin string, runner shell.Runner, log logger.FieldLogger) *Repository {
	if bin == "" {
		bin = defaultBin
	}
	return &Repository{path: path, bin: bin, runner: runner, log: log}
}

// NewVCSRepository adapts NewRepository to the registry factory signature.
func NewVCSRepository(path, bin string, log logger.FieldLogger) repositories.VCSRepository {
	return NewRepository(path, bin, shell.NewExecRunner(log), log)
}

func (r *Repository) Name() string { return entities.VCSSvn }

// Exists reports whether path holds a working copy.
func (r *Repository) Exists(_ context.Context) bool {
	info, err := os.Stat(filepath.Join(r.path, ".svn"))
	return err == nil && info.IsDir()
}

// HeadRevision returns the last changed revision of the working copy.
func (r *Repository) HeadRevision(ctx context.Context) (string, error) {
	output, err := r.runner.Run(ctx, "", r.bin, "info", r.path)
	if err != nil {
		return "", fmt.Errorf("svn info failed: %w", err)
	}
	rev, ok := parseLastChangedRev(output)
	if !ok {
		return "", errors.New("svn info: no \"Last Changed Rev\" in output")
	}
	return rev, nil
}

// Changes diffs fromRef against toRef, or against the working copy when toRef
// is empty.
func (r *Repository) Changes(ctx context.Context, fromRef, toRef string) ([]entities.PathChange, error) {
	if err := r.resolve(ctx, fromRef); err != nil {
		return nil, err
	}

	revRange := fromRef
	if toRef != "" {
		if err := r.resolve(ctx, toRef); err != nil {
			return nil, err
		}
		revRange = fromRef + ":" + toRef
		r.log.Debugf("Diff between %s and %s", fromRef, toRef)
	} else {
		r.log.Debugf("Diff between %s and working copy", fromRef)
	}

	output, err := r.runner.Run(ctx, "", r.bin, "diff", "-r", revRange, "--summarize", r.path)
	if err != nil {
		return nil, fmt.Errorf("svn diff failed: %w", err)
	}
	return ParseSummary(output, r.path)
}

// AllFiles lists every versioned file of the working copy.
func (r *Repository) AllFiles(ctx context.Context) ([]entities.PathChange, error) {
	output, err := r.runner.Run(ctx, "", r.bin, "ls", "--depth", "infinity", r.path)
	if err != nil {
		return nil, fmt.Errorf("svn ls failed: %w", err)
	}
	return parseListing(output, r.path), nil
}

// Update runs cleanup, revert and update, in that order.
func (r *Repository) Update(ctx context.Context) error {
	steps := [][]string{
		{"cleanup", r.path},
		{"revert", "-R", r.path},
		{"update", r.path},
	}
	for _, args := range steps {
		if _, err := r.runner.Run(ctx, "", r.bin, args...); err != nil {
			return fmt.Errorf("svn %s failed: %w", args[0], err)
		}
	}
	return nil
}

// Checkout creates the working copy without externals.
func (r *Repository) Checkout(ctx context.Context, url string) error {
	if _, err := r.runner.Run(ctx, "", r.bin, "co", "--ignore-externals", url, r.path); err != nil {
		return fmt.Errorf("svn checkout %s failed: %w", url, err)
	}
	return nil
}

func (r *Repository) resolve(ctx context.Context, rev string) error {
	_, err := r.runner.Run(ctx, "", r.bin, "info", "-r", rev, r.path)
	switch {
	case err == nil:
		return nil
	case isMissingRevision(err):
		return &entities.ReferenceError{Ref: rev, Err: err}
	default:
		return fmt.Errorf("svn info -r %s failed: %w", rev, err)
	}
}

func isMissingRevision(err error) bool {
	msg := err.Error()
	for _, code := range missingRevisionCodes {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}
