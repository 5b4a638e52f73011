package service

import (
	"context"
	"errors"
	"strings"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

var errMockHost = errors.New("mock: permission denied")

// mockRunner implements ports.Runner and records every invocation.
type mockRunner struct {
	// runFunc decides the outcome; nil means every invocation succeeds
	runFunc func(inv domain.Invocation) (*domain.Outcome, error)
	calls   []domain.Invocation
}

func (m *mockRunner) Run(_ context.Context, inv domain.Invocation) (*domain.Outcome, error) {
	m.calls = append(m.calls, inv)
	if m.runFunc != nil {
		return m.runFunc(inv)
	}
	return &domain.Outcome{Status: domain.StatusSuccess}, nil
}

func (m *mockRunner) commandLines() []string {
	lines := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		lines = append(lines, c.String())
	}
	return lines
}

func (m *mockRunner) ranTool(name string) bool {
	for _, c := range m.calls {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func (m *mockRunner) ranWithArg(arg string) bool {
	for _, c := range m.calls {
		for _, a := range c.Args() {
			if a == arg {
				return true
			}
		}
	}
	return false
}

// failWhen returns a runFunc that exits with code for invocations whose command line contains substr.
func failWhen(substr string, code int) func(inv domain.Invocation) (*domain.Outcome, error) {
	return func(inv domain.Invocation) (*domain.Outcome, error) {
		if strings.Contains(inv.String(), substr) {
			return &domain.Outcome{
				Status:   domain.StatusFailed,
				ExitCode: code,
				Stderr:   []byte("warning: unused variable"),
			}, nil
		}
		return &domain.Outcome{Status: domain.StatusSuccess}, nil
	}
}

// missing returns a runFunc that reports name as not installed.
func missing(name string) func(inv domain.Invocation) (*domain.Outcome, error) {
	return func(inv domain.Invocation) (*domain.Outcome, error) {
		if inv.Name() == name {
			return &domain.Outcome{Status: domain.StatusNotFound, ExitCode: 127}, nil
		}
		return &domain.Outcome{Status: domain.StatusSuccess}, nil
	}
}

// mockReporter implements ports.Reporter.
type mockReporter struct {
	steps    []string
	commands []domain.Invocation
	warnings []string
}

func (m *mockReporter) Step(message string)           { m.steps = append(m.steps, message) }
func (m *mockReporter) Command(inv domain.Invocation) { m.commands = append(m.commands, inv) }
func (m *mockReporter) Warn(message string)           { m.warnings = append(m.warnings, message) }

// mockFinder implements ports.SourceFinder with a fixed file list.
type mockFinder struct {
	files []string
	err   error
	calls int
}

func (m *mockFinder) Find(_ string, _ []string) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]string{}, m.files...), nil
}
