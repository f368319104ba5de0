package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/grocer/internal/domain/repositories"
)

// FileRepository stores the checkpoint revision in a local file.
type FileRepository struct {
	path string
}

var _ repositories.CheckpointRepository = (*FileRepository)(nil)

// NewFileRepository creates a checkpoint store backed by the file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Read returns the stored revision. A missing or blank file means no checkpoint.
func (r *FileRepository) Read(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read checkpoint %s: %w", r.path, err)
	}
	rev := strings.TrimSpace(string(data))
	return rev, rev != "", nil
}

// Write replaces the checkpoint through a temp file and a rename, so readers
// never observe a partial revision.
func (r *FileRepository) Write(_ context.Context, rev string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(r.path), ".grocer-checkpoint-*")
	if err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err = tmpFile.WriteString(rev + "\n"); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err = os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}
