package domain

import (
	"github.com/kballard/go-shellquote"
)

// Invocation is a single external-process request: executable followed by its arguments.
// Arguments are passed to the child as discrete tokens and are never joined for a shell.
type Invocation []string

// NewInvocation builds an invocation from an executable name and arguments
func NewInvocation(name string, args ...string) Invocation {
	inv := make(Invocation, 0, len(args)+1)
	inv = append(inv, name)
	return append(inv, args...)
}

// Validate checks that the invocation names an executable
func (i Invocation) Validate() error {
	if len(i) == 0 || i[0] == "" {
		return ErrEmptyInvocation()
	}
	return nil
}

// Name returns the executable name
func (i Invocation) Name() string {
	if len(i) == 0 {
		return ""
	}
	return i[0]
}

// Args returns the arguments after the executable name
func (i Invocation) Args() []string {
	if len(i) < 2 {
		return nil
	}
	return i[1:]
}

// With returns a copy of the invocation with extra arguments appended
func (i Invocation) With(args ...string) Invocation {
	out := make(Invocation, 0, len(i)+len(args))
	out = append(out, i...)
	return append(out, args...)
}

// String renders the command line for display only, quoting tokens as a POSIX shell would
func (i Invocation) String() string {
	return shellquote.Join(i...)
}

// Status classifies how an invocation ended
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Outcome is the captured result of a finished invocation
type Outcome struct {
	Status   Status
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Succeeded reports whether the child exited with status zero
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Status == StatusSuccess
}
