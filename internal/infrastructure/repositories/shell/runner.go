package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// Runner executes external commands and returns their standard output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner implements Runner with os/exec, logging every command and its
// output at debug level.
type ExecRunner struct {
	log logger.FieldLogger
}

// NewExecRunner creates a runner that logs through log.
func NewExecRunner(log logger.FieldLogger) *ExecRunner {
	return &ExecRunner{log: log}
}

// Run executes name with args in dir. On a non-zero exit the error carries
// the trimmed standard error.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	r.log.Debugf("Running: %s %s", name, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r.logLines("STDOUT", stdout.String())
	r.logLines("STDERR", stderr.String())

	if err != nil {
		return stdout.String(), fmt.Errorf("%s %s failed: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func (r *ExecRunner) logLines(stream, output string) {
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line != "" {
			r.log.Debugf("%s: %s", stream, strings.TrimSpace(line))
		}
	}
}
