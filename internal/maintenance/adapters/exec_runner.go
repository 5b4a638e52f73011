package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

// exitCodeNotFound mirrors the code a POSIX shell reports for a missing command
const exitCodeNotFound = 127

// ExecRunner runs invocations as child processes of the helper
type ExecRunner struct {
	// Dir is the working directory of every child; empty means the current directory
	Dir string
}

// NewExecRunner creates a runner rooted at dir
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// Run executes the invocation and waits for it, capturing stdout and stderr
func (r *ExecRunner) Run(ctx context.Context, inv domain.Invocation) (*domain.Outcome, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, inv.Name(), inv.Args()...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := &domain.Outcome{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err == nil {
		outcome.Status = domain.StatusSuccess
		return outcome, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		outcome.Status = domain.StatusFailed
		outcome.ExitCode = exitErr.ExitCode()
		return outcome, nil
	}

	if isNotFound(err) {
		outcome.Status = domain.StatusNotFound
		outcome.ExitCode = exitCodeNotFound
		return outcome, nil
	}

	return nil, fmt.Errorf("failed to start %s: %w", inv.Name(), err)
}

// isNotFound reports whether err means the executable itself is missing.
// A missing working directory is a host error, not a missing tool.
func isNotFound(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, exec.ErrNotFound)
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Op != "chdir" && errors.Is(pathErr.Err, fs.ErrNotExist)
	}
	return false
}
