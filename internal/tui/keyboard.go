package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Help screen: any key returns, quit still quits
	if m.ShowHelp {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true

	case key.Matches(msg, m.keys.Escape):
		if m.Scrubber.Scrubbing() {
			m.Scrubber.PointerCancel()
			return m, func() tea.Msg { return StatusMsg{Message: "Scrub cancelled"} }
		}

	case key.Matches(msg, m.keys.StepBack):
		m.Scrubber.StepBack()

	case key.Matches(msg, m.keys.StepForward):
		m.Scrubber.StepForward()

	case key.Matches(msg, m.keys.PageBack):
		m.Scrubber.PageBack()

	case key.Matches(msg, m.keys.PageForward):
		m.Scrubber.PageForward()

	case key.Matches(msg, m.keys.Home):
		m.Scrubber.SeekToStart()

	case key.Matches(msg, m.keys.End):
		m.Scrubber.SeekToEnd()

	case key.Matches(msg, m.keys.Fraction):
		m.Scrubber.SeekToFraction(int(msg.String()[0] - '0'))

	case key.Matches(msg, m.keys.TogglePlay):
		m.Scrubber.TogglePlay()
	}

	return m, nil
}
