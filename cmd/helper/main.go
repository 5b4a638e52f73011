package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/libpci-rs/helper/internal/config"
	"github.com/libpci-rs/helper/internal/maintenance/adapters"
	"github.com/libpci-rs/helper/internal/maintenance/domain"
	"github.com/libpci-rs/helper/internal/maintenance/ports"
	"github.com/libpci-rs/helper/internal/maintenance/service"
	"github.com/libpci-rs/helper/internal/ui"
)

// app holds what the root command needs from the outside world
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	newRunner func(dir string) ports.Runner
}

func defaultApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newRunner: func(dir string) ports.Runner {
			return adapters.NewExecRunner(dir)
		},
	}
}

type options struct {
	dryRun     bool
	agnostic   bool
	verbose    bool
	dir        string
	configFile string
}

func newRootCmd(a *app) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "helper <" + strings.Join(domain.Actions(), "|") + ">",
		Short: "Lint and format the Rust and C/C++ sources of libpci-rs",
		Long: `helper runs the maintenance tools of the crate in a fixed order and stops at the first failure:

  format  cargo fmt, then clang-format over the backend sources
  lint    cargo clippy, cppcheck, then cxxbridge + clang-tidy (skipped with --agnostic)`,
		ValidArgs:     domain.Actions(),
		Args:          cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid from here on; tool failures need no usage text
			cmd.SilenceUsage = true
			return a.run(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "report required changes without modifying files")
	cmd.Flags().BoolVarP(&opts.agnostic, "agnostic", "a", false, "skip platform-specific analysis")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print every command before running it")
	cmd.Flags().StringVarP(&opts.dir, "dir", "C", ".", "project root to run in")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default <dir>/"+config.FileName+".{toml,yaml,yml,json})")

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return cmd
}

func (a *app) run(ctx context.Context, verb string, opts options) error {
	action, err := domain.ParseAction(verb)
	if err != nil {
		return err
	}

	reporter := ui.NewReporter(a.stdout, a.stderr, opts.verbose)

	cfg, err := config.Load(opts.dir, opts.configFile)
	if err != nil {
		return domain.ErrConfigInvalid(filepath.Join(opts.dir, config.FileName), err)
	}
	if cfg.File != "" {
		reporter.Step("Using config " + cfg.File)
	}

	rc := domain.RunConfig{
		DryRun:   opts.dryRun,
		Agnostic: opts.agnostic,
	}
	policy := service.NewPolicy(
		opts.dir,
		cfg,
		a.newRunner(opts.dir),
		adapters.NewGlobFinder(opts.dir),
		reporter,
	)
	if err := policy.Apply(ctx, action, rc); err != nil {
		return err
	}

	reporter.Done(action, rc)
	return nil
}

// execute runs the command line and returns the process exit code
func (a *app) execute(ctx context.Context, args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if !cmd.SilenceUsage {
		err = &usageError{err: err}
	}

	ui.NewReporter(a.stdout, a.stderr, false).Failure(err)
	return exitCode(err)
}

func main() {
	os.Exit(defaultApp().execute(context.Background(), os.Args[1:]))
}
