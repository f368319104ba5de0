package entities

// ChangeStatus is the path-level state of a file between two revisions.
type ChangeStatus int

const (
	StatusAdded ChangeStatus = iota
	StatusModified
	StatusDeleted
)

func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// PathChange is a single file-level change relative to the repository root.
// Renames and type changes never appear here directly: the diff parsers
// expand them into a Deleted and a Modified record.
type PathChange struct {
	Path   string
	Status ChangeStatus
}

// IsDeleted reports whether the change removes the path.
func (c PathChange) IsDeleted() bool {
	return c.Status == StatusDeleted
}

// entityStatus collapses Added into Modified. Entities only distinguish
// between "gone" and "needs upload".
func entityStatus(status ChangeStatus) ChangeStatus {
	if status == StatusDeleted {
		return StatusDeleted
	}
	return StatusModified
}
