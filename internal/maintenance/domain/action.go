package domain

import "sort"

// Action is a maintenance verb accepted on the command line
type Action string

const (
	ActionLint   Action = "lint"
	ActionFormat Action = "format"
)

var validActions = map[Action]bool{
	ActionLint:   true,
	ActionFormat: true,
}

// ParseAction converts a command-line verb into an Action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !validActions[a] {
		return "", ErrUnknownAction(s)
	}
	return a, nil
}

// Actions returns the accepted verbs in a stable order
func Actions() []string {
	names := make([]string, 0, len(validActions))
	for a := range validActions {
		names = append(names, string(a))
	}
	sort.Strings(names)
	return names
}

// RunConfig carries the mode flags threaded through every tool step
type RunConfig struct {
	// DryRun reports required changes without writing them
	DryRun bool

	// Agnostic skips platform-specific analysis
	Agnostic bool
}
