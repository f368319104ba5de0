package git

import (
	"strconv"
	"strings"

	"github.com/rios0rios0/grocer/internal/domain/entities"
)

const backendName = "git"

// ParseNameStatus converts `git diff --name-status` output into path changes.
// Fields may be separated by tabs (as git prints them) or by whitespace.
// Renames expand into Deleted(old) + Modified(new), copies into Modified(new),
// type changes into Deleted(path) + Modified(path). Paths git C-quotes
// (non-ASCII bytes, quotes, backslashes, control characters) are unquoted.
// Any unknown line aborts the whole parse with an *entities.ParseError.
func ParseNameStatus(output, prefix string) ([]entities.PathChange, error) {
	changes := make([]entities.PathChange, 0)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		parsed, ok := parseLine(line)
		if !ok {
			return nil, &entities.ParseError{Backend: backendName, Line: line, Output: output}
		}
		for _, change := range parsed {
			change.Path = stripPrefix(change.Path, prefix)
			changes = append(changes, change)
		}
	}
	return changes, nil
}

func parseLine(line string) ([]entities.PathChange, bool) {
	fields := splitFields(line)
	if len(fields) < 2 {
		return nil, false
	}
	code, paths := fields[0], fields[1:]
	if code == "" {
		return nil, false
	}
	for i, p := range paths {
		unquoted, ok := unquotePath(p)
		if !ok {
			return nil, false
		}
		paths[i] = unquoted
	}

	letter, score := code[0], code[1:]
	if score != "" && !isDigits(score) {
		return nil, false
	}

	switch letter {
	case 'A':
		if score != "" || len(paths) != 1 {
			return nil, false
		}
		return []entities.PathChange{modified(paths[0])}, true
	case 'M':
		if len(paths) != 1 {
			return nil, false
		}
		return []entities.PathChange{modified(paths[0])}, true
	case 'D':
		if score != "" || len(paths) != 1 {
			return nil, false
		}
		return []entities.PathChange{deleted(paths[0])}, true
	case 'T':
		if score != "" || len(paths) != 1 {
			return nil, false
		}
		// Forces the path to be re-created even though it still exists.
		return []entities.PathChange{deleted(paths[0]), modified(paths[0])}, true
	case 'C':
		if len(paths) != 2 {
			return nil, false
		}
		return []entities.PathChange{modified(paths[1])}, true
	case 'R':
		if len(paths) != 2 {
			return nil, false
		}
		return []entities.PathChange{deleted(paths[0]), modified(paths[1])}, true
	default:
		return nil, false
	}
}

func splitFields(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	return strings.Fields(line)
}

// unquotePath undoes git's C-style quoting. Git only emits escapes (\t, \n,
// \", \\, octal bytes) that are valid in a Go string literal.
func unquotePath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	if !strings.HasPrefix(p, `"`) {
		return p, true
	}
	unquoted, err := strconv.Unquote(p)
	if err != nil || unquoted == "" {
		return "", false
	}
	return unquoted, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripPrefix(p, prefix string) string {
	if prefix == "" {
		return p
	}
	return strings.TrimPrefix(p, strings.TrimRight(prefix, "/")+"/")
}

func modified(p string) entities.PathChange {
	return entities.PathChange{Path: p, Status: entities.StatusModified}
}

func deleted(p string) entities.PathChange {
	return entities.PathChange{Path: p, Status: entities.StatusDeleted}
}
