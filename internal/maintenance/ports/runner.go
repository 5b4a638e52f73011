package ports

import (
	"context"

	"github.com/libpci-rs/helper/internal/maintenance/domain"
)

// Runner executes one external process and waits for it to finish
type Runner interface {
	// Run executes the invocation without a shell and captures its output.
	// A non-zero exit or a missing executable is reported through the Outcome;
	// the error is reserved for host failures such as permission denied.
	Run(ctx context.Context, inv domain.Invocation) (*domain.Outcome, error)
}
