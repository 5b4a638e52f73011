package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

// Reporter prints run progress to out and problems to errOut
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	outStyles styles
	errStyles styles
}

// NewReporter creates a reporter. In verbose mode every invocation is echoed before it starts.
func NewReporter(out, errOut io.Writer, verbose bool) *Reporter {
	return &Reporter{
		out:       out,
		errOut:    errOut,
		verbose:   verbose,
		outStyles: newStyles(out),
		errStyles: newStyles(errOut),
	}
}

// Step announces the next tool
func (r *Reporter) Step(message string) {
	fmt.Fprintln(r.out, r.outStyles.info.Render("[!]"), message)
}

// Command echoes an invocation in verbose mode
func (r *Reporter) Command(inv domain.Invocation) {
	if !r.verbose {
		return
	}
	fmt.Fprintln(r.out, r.outStyles.dim.Render("+ "+inv.String()))
}

// Warn reports a non-fatal problem
func (r *Reporter) Warn(message string) {
	fmt.Fprintln(r.errOut, r.errStyles.warn.Render("[?] WARNING:"), message)
}

// Done reports a completed action
func (r *Reporter) Done(action domain.Action, rc domain.RunConfig) {
	msg := fmt.Sprintf("%s finished", action)
	if rc.DryRun {
		msg += " (dry run, no files changed)"
	}
	fmt.Fprintln(r.out, r.outStyles.success.Render("[✓]"), msg)
}

// Failure prints err and, for a failed child, the output it captured
func (r *Reporter) Failure(err error) {
	fmt.Fprintln(r.errOut, r.errStyles.err.Render("[x] ERROR:"), err)

	var cmdErr *domain.CommandError
	if !errors.As(err, &cmdErr) {
		return
	}
	r.captured("stdout", cmdErr.Stdout)
	r.captured("stderr", cmdErr.Stderr)
}

func (r *Reporter) captured(stream string, data []byte) {
	data = bytes.TrimRight(data, "\n")
	if len(data) == 0 {
		return
	}
	fmt.Fprintln(r.errOut, r.errStyles.bold.Render("--- "+stream+" ---"))
	fmt.Fprintln(r.errOut, string(data))
}
