package main

import (
	"errors"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

// Exit codes returned by the helper.
const (
	ExitSuccess      = 0
	ExitToolFailure  = 1
	ExitUsage        = 2
	ExitConfigError  = 3
	ExitToolNotFound = 127
)

// usageError marks command-line errors detected before any tool runs
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *usageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	var cmdErr *domain.CommandError
	if errors.As(err, &cmdErr) {
		return ExitToolFailure
	}

	switch domain.GetErrorCode(err) {
	case domain.ErrCodeToolNotFound:
		return ExitToolNotFound
	case domain.ErrCodeConfigInvalid:
		return ExitConfigError
	default:
		return ExitToolFailure
	}
}
