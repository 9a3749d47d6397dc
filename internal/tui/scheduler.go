package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaScheduler implements scrubber.Scheduler on the Bubble Tea loop.
// Each timer becomes a tea.Tick that comes back as a timerMsg; Update fires
// it with Fire. Timers created during an Update are collected and returned
// by Drain so they can be batched with the Update's other commands.
type teaScheduler struct {
	nextID  int
	pending map[int]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[int]func())}
}

// AfterFunc schedules f. Cancelling drops it; the tick still arrives and
// is ignored.
func (s *teaScheduler) AfterFunc(d time.Duration, f func()) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.pending[id] = f
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return func() { delete(s.pending, id) }
}

// Fire runs the callback for id unless it was cancelled.
func (s *teaScheduler) Fire(id int) bool {
	f, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	f()
	return true
}

// Drain returns the timers scheduled since the last Drain.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of live timers.
func (s *teaScheduler) Pending() int {
	return len(s.pending)
}
