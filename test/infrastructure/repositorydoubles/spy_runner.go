//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/grocer/internal/infrastructure/repositories/shell"
)

// RunCall records a single command execution.
type RunCall struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the command as a single space-separated string.
func (c RunCall) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// SpyRunner implements shell.Runner. Outputs and Errors are keyed by a prefix
// of the command line; the longest matching prefix wins.
type SpyRunner struct {
	Outputs map[string]string
	Errors  map[string]error
	Calls   []RunCall
}

var _ shell.Runner = (*SpyRunner)(nil)

// Lines returns every executed command line in order.
func (s *SpyRunner) Lines() []string {
	lines := make([]string, 0, len(s.Calls))
	for _, c := range s.Calls {
		lines = append(lines, c.Line())
	}
	return lines
}

func (s *SpyRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	call := RunCall{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	s.Calls = append(s.Calls, call)
	line := call.Line()
	return lookup(s.Outputs, line), lookup(s.Errors, line)
}

func lookup[T any](m map[string]T, line string) T {
	var best T
	bestLen := -1
	for prefix, v := range m {
		if strings.HasPrefix(line, prefix) && len(prefix) > bestLen {
			best, bestLen = v, len(prefix)
		}
	}
	return best
}
