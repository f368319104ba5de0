package svn

import (
	"regexp"
	"strings"

	"github.com/rios0rios0/grocer/internal/domain/entities"
)

const backendName = "svn"

// summaryLine matches `svn diff --summarize` lines: an item status column,
// an optional property status column, then the path.
var summaryLine = regexp.MustCompile(`^([ADM ])([M ])?\s+(\S.*?)\s*$`)

var lastChangedRev = regexp.MustCompile(`(?m)^Last Changed Rev: (\d+)\s*$`)

// ParseSummary converts `svn diff --summarize` output into path changes,
// stripping the working-copy prefix from every path. Lines outside the
// grammar abort the parse with an *entities.ParseError.
func ParseSummary(output, prefix string) ([]entities.PathChange, error) {
	changes := make([]entities.PathChange, 0)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := summaryLine.FindStringSubmatch(line)
		if m == nil || (m[1] == " " && m[2] != "M") {
			return nil, &entities.ParseError{Backend: backendName, Line: line, Output: output}
		}

		status := entities.StatusModified
		if m[1] == "D" {
			status = entities.StatusDeleted
		}
		changes = append(changes, entities.PathChange{Path: stripPrefix(m[3], prefix), Status: status})
	}
	return changes, nil
}

// parseLastChangedRev extracts the last changed revision from `svn info`.
func parseLastChangedRev(output string) (string, bool) {
	m := lastChangedRev.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseListing converts `svn ls --depth infinity` output into Added changes,
// skipping directory entries.
func parseListing(output, prefix string) []entities.PathChange {
	files := make([]entities.PathChange, 0)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, "/") {
			continue
		}
		files = append(files, entities.PathChange{Path: stripPrefix(line, prefix), Status: entities.StatusAdded})
	}
	return files
}

func stripPrefix(p, prefix string) string {
	if prefix == "" {
		return p
	}
	return strings.TrimPrefix(p, strings.TrimRight(prefix, "/")+"/")
}
