package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the user answers no at the final
	// confirmation prompt.
	ErrDeclined = errors.New("tui: generation declined")
)
