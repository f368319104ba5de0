package git

import (
	"context"
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/grocer/internal/domain/entities"
	"github.com/rios0rios0/grocer/internal/domain/repositories"
	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/shell"
)

const defaultBin = "git"

// Repository implements repositories.VCSRepository for Git checkouts. Object
// access goes through go-git; the diff itself is produced by the git binary so
// that rename detection matches what developers see locally.
type Repository struct {
	path   string
	bin    string
	runner shell.Runner
	log    logger.FieldLogger
}

var _ repositories.VCSRepository = (*Repository)(nil)

// NewRepository creates a Git backend for the checkout at path. An empty bin
// uses "git" from PATH.
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

func (r *Repository) Name() string { return entities.VCSGit }

// Exists reports whether the path is a Git repository with at least one commit.
func (r *Repository) Exists(_ context.Context) bool {
	repo, err := gogit.PlainOpen(r.path)
	if err != nil {
		return false
	}
	_, err = repo.Head()
	return err == nil
}

// HeadRevision returns the commit hash HEAD points to.
func (r *Repository) HeadRevision(_ context.Context) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// Changes diffs fromRef against toRef, or against the working tree (including
// untracked files) when toRef is empty.
func (r *Repository) Changes(ctx context.Context, fromRef, toRef string) ([]entities.PathChange, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	if err = resolve(repo, fromRef); err != nil {
		return nil, err
	}

	args := []string{"diff", "--name-status", "-M", "--no-color", "--no-ext-diff", fromRef}
	if toRef != "" {
		if err = resolve(repo, toRef); err != nil {
			return nil, err
		}
		args = append(args, toRef)
		r.log.Debugf("Diff between %s and %s", fromRef, toRef)
	} else {
		r.log.Debugf("Diff between %s and working dir", fromRef)
	}

	output, err := r.runner.Run(ctx, r.path, r.bin, args...)
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	changes, err := ParseNameStatus(output, r.path)
	if err != nil {
		return nil, err
	}

	if toRef == "" {
		untracked, untrackedErr := untrackedFiles(repo)
		if untrackedErr != nil {
			return nil, untrackedErr
		}
		changes = append(changes, untracked...)
	}
	return changes, nil
}

// AllFiles lists every path in the index.
func (r *Repository) AllFiles(_ context.Context) ([]entities.PathChange, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read git index: %w", err)
	}

	files := make([]entities.PathChange, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		files = append(files, entities.PathChange{Path: entry.Name, Status: entities.StatusAdded})
	}
	return files, nil
}

// Update hard-resets the worktree and pulls from origin.
func (r *Repository) Update(ctx context.Context) error {
	repo, err := r.open()
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if err = wt.Reset(&gogit.ResetOptions{Mode: gogit.HardReset}); err != nil {
		return fmt.Errorf("git reset failed: %w", err)
	}
	err = wt.PullContext(ctx, &gogit.PullOptions{RemoteName: gogit.DefaultRemoteName})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("git pull failed: %w", err)
	}
	return nil
}

// Checkout clones url into the repository path.
func (r *Repository) Checkout(ctx context.Context, url string) error {
	if _, err := gogit.PlainCloneContext(ctx, r.path, false, &gogit.CloneOptions{URL: url}); err != nil {
		return fmt.Errorf("git clone %s failed: %w", url, err)
	}
	return nil
}

func (r *Repository) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpen(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository %s: %w", r.path, err)
	}
	return repo, nil
}

func resolve(repo *gogit.Repository, ref string) error {
	if _, err := repo.ResolveRevision(plumbing.Revision(ref)); err != nil {
		return &entities.ReferenceError{Ref: ref, Err: err}
	}
	return nil
}

func untrackedFiles(repo *gogit.Repository) ([]entities.PathChange, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}

	paths := make([]string, 0)
	for p, s := range status {
		if s.Worktree == gogit.Untracked {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	files := make([]entities.PathChange, 0, len(paths))
	for _, p := range paths {
		files = append(files, entities.PathChange{Path: p, Status: entities.StatusAdded})
	}
	return files, nil
}
