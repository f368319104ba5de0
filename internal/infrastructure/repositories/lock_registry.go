package repositories

import (
	domainRepos "github.com/rios0rios0/grocer/internal/domain/repositories"
)

// LockFactory creates a run lock backed by the file at path.
type LockFactory func(path string) domainRepos.LockRepository
