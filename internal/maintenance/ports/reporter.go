package ports

import "github.com/libpci-rs/helper/internal/maintenance/domain"

// Reporter receives progress and warnings during a run
type Reporter interface {
	// Step announces the next tool step
	Step(message string)

	// Command is called before each invocation is started
	Command(inv domain.Invocation)

	// Warn reports a non-fatal problem
	Warn(message string)
}
