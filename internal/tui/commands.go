package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/scrub/internal/domain"
)

// Command factories for async operations

// ListenClockCmd waits for the next clock notification
func ListenClockCmd(ch <-chan domain.ClockEvent) tea.Cmd {
	return func() tea.Msg {
		return ClockEventMsg{Event: <-ch}
	}
}

// WaitPlayerCmd reports when the player connection closes
func WaitPlayerCmd(done <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return PlayerExitedMsg{}
	}
}

// TickCmd returns a command that sends a clock tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClockTickMsg{Time: t}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
