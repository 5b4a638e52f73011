package service

import (
	"context"
	"fmt"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
	"github.com/libpci-rs/helper/internal/maintenance/ports"
)

// CommandRunner applies the fail-fast policy to single invocations
type CommandRunner struct {
	runner   ports.Runner
	reporter ports.Reporter
	optional func(name string) bool
	warned   map[string]bool
}

// NewCommandRunner creates a command runner. Executables for which optional
// reports true produce a warning instead of an error when they are missing;
// a nil optional treats every executable as required.
func NewCommandRunner(runner ports.Runner, reporter ports.Reporter, optional func(name string) bool) *CommandRunner {
	if optional == nil {
		optional = func(string) bool { return false }
	}
	return &CommandRunner{
		runner:   runner,
		reporter: reporter,
		optional: optional,
		warned:   make(map[string]bool),
	}
}

// Run executes inv and waits for it.
//
// A zero exit returns a successful outcome and nil. A non-zero exit returns a
// *domain.CommandError carrying the captured output. A missing required
// executable returns a tool_not_found error; a missing optional one is warned
// about once and reported as a StatusNotFound outcome with a nil error, so the
// caller can skip work that depends on it.
func (c *CommandRunner) Run(ctx context.Context, inv domain.Invocation) (*domain.Outcome, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	c.reporter.Command(inv)

	outcome, err := c.runner.Run(ctx, inv)
	if err != nil {
		return nil, err
	}

	switch outcome.Status {
	case domain.StatusSuccess:
		return outcome, nil
	case domain.StatusNotFound:
		if !c.optional(inv.Name()) {
			return nil, domain.ErrToolNotFound(inv.Name())
		}
		if !c.warned[inv.Name()] {
			c.warned[inv.Name()] = true
			c.reporter.Warn(fmt.Sprintf("optional tool %s is not installed, skipping it", inv.Name()))
		}
		return outcome, nil
	default:
		return nil, domain.NewCommandError(inv, outcome)
	}
}
