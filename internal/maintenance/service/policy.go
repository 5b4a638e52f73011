package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/libpci-rs/helper/internal/config"
	"github.com/libpci-rs/helper/internal/maintenance/domain"
	"github.com/libpci-rs/helper/internal/maintenance/ports"
)

// Policy decides which tools run for an action, in which order and with which arguments
type Policy struct {
	dir      string
	cfg      *config.Config
	commands *CommandRunner
	finder   ports.SourceFinder
	reporter ports.Reporter
}

// NewPolicy creates a policy for the project in dir
func NewPolicy(
	dir string,
	cfg *config.Config,
	runner ports.Runner,
	finder ports.SourceFinder,
	reporter ports.Reporter,
) *Policy {
	return &Policy{
		dir:      dir,
		cfg:      cfg,
		commands: NewCommandRunner(runner, reporter, cfg.IsOptional),
		finder:   finder,
		reporter: reporter,
	}
}

// Apply runs every step of the action in order and stops at the first failure
func (p *Policy) Apply(ctx context.Context, action domain.Action, rc domain.RunConfig) error {
	switch action {
	case domain.ActionFormat:
		return p.Format(ctx, rc)
	case domain.ActionLint:
		return p.Lint(ctx, rc)
	default:
		return domain.ErrUnknownAction(string(action))
	}
}

// Format runs rustfmt over the crate, then clang-format over every matched C/C++ source
func (p *Policy) Format(ctx context.Context, rc domain.RunConfig) error {
	p.reporter.Step("Running rustfmt...")
	if _, err := p.commands.Run(ctx, p.rustfmt(rc)); err != nil {
		return err
	}

	p.reporter.Step("Running clang-format...")
	sources, err := p.sources()
	if err != nil {
		return err
	}
	for _, source := range sources {
		if _, err := p.commands.Run(ctx, p.clangFormat(rc, source)); err != nil {
			return err
		}
	}
	return nil
}

// Lint runs clippy, then cppcheck, then the platform-specific analysis unless rc.Agnostic is set
func (p *Policy) Lint(ctx context.Context, rc domain.RunConfig) error {
	p.reporter.Step("Running clippy...")
	if _, err := p.commands.Run(ctx, p.clippy()); err != nil {
		return err
	}

	p.reporter.Step("Running cppcheck...")
	if _, err := p.commands.Run(ctx, p.cppcheck()); err != nil {
		return err
	}

	if rc.Agnostic {
		return nil
	}
	return p.deepLint(ctx, rc)
}

// deepLint generates the interop header, runs clang-tidy over every source and
// always releases the header again, whatever the outcome. A header that was
// already present before the step is restored instead of removed.
func (p *Policy) deepLint(ctx context.Context, rc domain.RunConfig) (err error) {
	header := p.headerPath()
	previous, err := snapshotHeader(header)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := previous.release(header); relErr != nil {
			err = errors.Join(err, domain.ErrHeaderCleanup(p.cfg.Deep.Header, relErr))
		}
	}()

	p.reporter.Step("Generating interop header...")
	outcome, err := p.commands.Run(ctx, p.cxxbridge())
	if err != nil {
		return err
	}
	if !outcome.Succeeded() {
		p.reporter.Warn("interop header was not generated, skipping clang-tidy")
		return nil
	}

	p.reporter.Step("Running clang-tidy...")
	sources, err := p.sources()
	if err != nil {
		return err
	}
	for _, source := range sources {
		if _, err := p.commands.Run(ctx, p.clangTidy(rc, source)); err != nil {
			return err
		}
	}
	return nil
}

// headerPath resolves the configured header the same way the generator does,
// relative to the project directory unless it is absolute.
func (p *Policy) headerPath() string {
	if filepath.IsAbs(p.cfg.Deep.Header) {
		return p.cfg.Deep.Header
	}
	return filepath.Join(p.dir, p.cfg.Deep.Header)
}

// headerSnapshot records a header that existed before generation
type headerSnapshot struct {
	existed bool
	data    []byte
	mode    fs.FileMode
}

func snapshotHeader(path string) (*headerSnapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &headerSnapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inspect interop header: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read interop header: %w", err)
	}
	return &headerSnapshot{existed: true, data: data, mode: info.Mode().Perm()}, nil
}

// release removes a generated header or puts the previous one back
func (s *headerSnapshot) release(path string) error {
	if s.existed {
		if err := os.WriteFile(path, s.data, s.mode); err != nil {
			return err
		}
		return os.Chmod(path, s.mode)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (p *Policy) sources() ([]string, error) {
	return p.finder.Find(p.cfg.Sources.Root, p.cfg.Sources.Patterns)
}

func (p *Policy) rustfmt(rc domain.RunConfig) domain.Invocation {
	inv := domain.NewInvocation(p.cfg.Rust.Cargo, "fmt", "--all")
	if rc.DryRun {
		inv = inv.With("--check")
	}
	return inv
}

func (p *Policy) clangFormat(rc domain.RunConfig, source string) domain.Invocation {
	style := "--style=" + p.cfg.Format.Style
	if rc.DryRun {
		return domain.NewInvocation(p.cfg.Format.ClangFormat, "--dry-run", "--Werror", style, source)
	}
	return domain.NewInvocation(p.cfg.Format.ClangFormat, "-i", style, source)
}

func (p *Policy) clippy() domain.Invocation {
	return domain.NewInvocation(p.cfg.Rust.Cargo, "clippy", "--all-targets", "--", "-D", "warnings")
}

func (p *Policy) cppcheck() domain.Invocation {
	return domain.NewInvocation(p.cfg.Lint.Cppcheck,
		"--project="+p.cfg.Lint.CppcheckProject,
		"--error-exitcode=1",
		"--quiet",
	)
}

func (p *Policy) cxxbridge() domain.Invocation {
	return domain.NewInvocation(p.cfg.Deep.Cxxbridge, p.cfg.Deep.Bridge, "--header", "--output", p.cfg.Deep.Header)
}

func (p *Policy) clangTidy(rc domain.RunConfig, source string) domain.Invocation {
	inv := domain.NewInvocation(p.cfg.Deep.ClangTidy, "--quiet", fmt.Sprintf("--config-file=%s", p.cfg.Deep.ClangTidyConfig))
	if !rc.DryRun {
		inv = inv.With("--fix")
	}
	inv = inv.With(source, "--")
	return inv.With(p.cfg.Deep.CompileArgs...)
}
