package tui

import (
	"time"

	"github.com/mmcdole/scrub/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ClockEventMsg carries a clock notification into the event loop
type ClockEventMsg struct {
	Event domain.ClockEvent
}

// ClockTickMsg advances the simulated clock
type ClockTickMsg struct {
	Time time.Time
}

// timerMsg fires a deferred scheduler callback
type timerMsg struct {
	id int
}

// PlayerExitedMsg signals that the external player went away
type PlayerExitedMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
