package adapters

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

// withTools puts scripts named after the map keys on PATH for the test.
func withTools(t *testing.T, tools map[string]string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}
	binDir := t.TempDir()
	for name, script := range tools {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0755); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExecRunnerSuccessCapturesOutput(t *testing.T) {
	withTools(t, map[string]string{
		"greet": "#!/bin/sh\necho \"hello $1\"\necho warned >&2\n",
	})

	outcome, err := NewExecRunner("").Run(context.Background(), domain.NewInvocation("greet", "world"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if outcome.Status != domain.StatusSuccess || outcome.ExitCode != 0 {
		t.Errorf("Expected success with code 0, got %v/%d", outcome.Status, outcome.ExitCode)
	}
	if got := string(outcome.Stdout); got != "hello world\n" {
		t.Errorf("Expected stdout %q, got %q", "hello world\n", got)
	}
	if got := string(outcome.Stderr); got != "warned\n" {
		t.Errorf("Expected stderr %q, got %q", "warned\n", got)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	withTools(t, map[string]string{
		"lint": "#!/bin/sh\necho 'error: unused import' >&2\nexit 3\n",
	})

	outcome, err := NewExecRunner("").Run(context.Background(), domain.NewInvocation("lint"))
	if err != nil {
		t.Fatalf("A non-zero exit is an outcome, not an error: %v", err)
	}
	if outcome.Status != domain.StatusFailed {
		t.Errorf("Expected failed status, got %v", outcome.Status)
	}
	if outcome.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", outcome.ExitCode)
	}
	if !strings.Contains(string(outcome.Stderr), "unused import") {
		t.Errorf("Expected stderr to be captured, got %q", outcome.Stderr)
	}
}

func TestExecRunnerExecutableNotFound(t *testing.T) {
	withTools(t, nil)

	outcome, err := NewExecRunner("").Run(context.Background(), domain.NewInvocation("definitely-not-a-real-tool-7f3a"))
	if err != nil {
		t.Fatalf("Expected not-found outcome, got error %v", err)
	}
	if outcome.Status != domain.StatusNotFound {
		t.Errorf("Expected not-found status, got %v", outcome.Status)
	}
	if outcome.ExitCode != exitCodeNotFound {
		t.Errorf("Expected exit code %d, got %d", exitCodeNotFound, outcome.ExitCode)
	}
}

func TestExecRunnerPassesArgumentsWithoutShell(t *testing.T) {
	dir := t.TempDir()
	withTools(t, map[string]string{
		"args": "#!/bin/sh\nfor a in \"$@\"; do echo \"[$a]\"; done\n",
	})

	hostile := "; touch pwned; $(touch pwned2)"
	outcome, err := NewExecRunner(dir).Run(context.Background(), domain.NewInvocation("args", "two words", hostile))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "[two words]\n[" + hostile + "]\n"
	if got := string(outcome.Stdout); got != want {
		t.Errorf("Expected arguments verbatim %q, got %q", want, got)
	}
	for _, name := range []string{"pwned", "pwned2"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("Argument was interpreted by a shell: %s exists", name)
		}
	}
}

func TestExecRunnerUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	withTools(t, map[string]string{
		"where": "#!/bin/sh\npwd -P\n",
	})

	outcome, err := NewExecRunner(dir).Run(context.Background(), domain.NewInvocation("where"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(outcome.Stdout)); got != want {
		t.Errorf("Expected child to run in %s, got %s", want, got)
	}
}

func TestExecRunnerEmptyInvocation(t *testing.T) {
	_, err := NewExecRunner("").Run(context.Background(), domain.Invocation{})
	if got := domain.GetErrorCode(err); got != domain.ErrCodeEmptyInvocation {
		t.Errorf("Expected %s, got %q", domain.ErrCodeEmptyInvocation, got)
	}
}

func TestExecRunnerPermissionDeniedIsHostError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are POSIX only")
	}
	dir := t.TempDir()
	tool := filepath.Join(dir, "noexec")
	if err := os.WriteFile(tool, []byte("#!/bin/sh\nexit 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewExecRunner("").Run(context.Background(), domain.NewInvocation(tool))
	if err == nil {
		t.Fatal("Expected a host error for a non-executable file")
	}
}

func TestExecRunnerMissingWorkingDirectoryIsHostError(t *testing.T) {
	withTools(t, map[string]string{
		"ok": "#!/bin/sh\nexit 0\n",
	})
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	outcome, err := NewExecRunner(dir).Run(context.Background(), domain.NewInvocation("ok"))
	if err == nil {
		t.Fatalf("Expected a host error for a missing working directory, got outcome %+v", outcome)
	}
	if outcome != nil {
		t.Errorf("Expected no outcome with a host error, got %+v", outcome)
	}
}

func TestExecRunnerMissingExecutablePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths only")
	}
	missing := filepath.Join(t.TempDir(), "bin", "cargo")

	outcome, err := NewExecRunner("").Run(context.Background(), domain.NewInvocation(missing))
	if err != nil {
		t.Fatalf("Expected not-found outcome, got error %v", err)
	}
	if outcome.Status != domain.StatusNotFound {
		t.Errorf("Expected not-found status, got %v", outcome.Status)
	}
}
