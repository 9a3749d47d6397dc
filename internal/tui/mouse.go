package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/tui/components"
)

// handleMouseMsg turns terminal mouse reports into pointer gestures. The
// program must run with all-motion reporting so drags and hovers arrive.
func (m Model) handleMouseMsg(msg tea.MouseMsg) Model {
	ev := domain.PointerEvent{X: float64(msg.X), Y: float64(msg.Y)}
	rect := m.Scrubber.Rect()
	onBar := components.Hit(rect, ev.X, ev.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if onBar {
				m.Hovering = false
				m.Scrubber.PointerDown(ev)
			}
		case tea.MouseButtonWheelUp:
			if onBar {
				m.Scrubber.StepForward()
			}
		case tea.MouseButtonWheelDown:
			if onBar {
				m.Scrubber.StepBack()
			}
		}

	case tea.MouseActionMotion:
		if m.Scrubber.Scrubbing() {
			m.Scrubber.PointerMove(ev)
			return m
		}
		m.HoverTime, m.Hovering = 0, false
		if onBar {
			m.HoverTime, m.Hovering = m.Scrubber.Hover(ev)
		}

	case tea.MouseActionRelease:
		if m.Scrubber.Scrubbing() {
			m.Scrubber.PointerUp(ev)
		}
	}

	return m
}
