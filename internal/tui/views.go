package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/scrub/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	rows := make([]string, InfoRow+1)
	rows[HeaderRow] = m.renderHeader()
	rows[TooltipRow] = m.Tooltip.View()
	rows[BarRow] = m.SeekBar.View()
	rows[InfoRow] = m.renderInfo()

	contentHeight := max(m.Height-ChromeHeight, 0)
	for len(rows) < contentHeight {
		rows = append(rows, "")
	}
	rows = rows[:min(len(rows), contentHeight)]
	rows = append(rows, m.renderFooter())

	return strings.Join(rows, "\n")
}

// spread lays out left and right in width columns
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHeader renders the title and the playback state
func (m Model) renderHeader() string {
	state := m.Session.Clock.State()

	var status string
	switch {
	case m.Scrubber.Scrubbing():
		status = styles.AccentStyle.Render(styles.PlayheadChar + " Scrubbing")
	case state.Ended:
		status = styles.DimStyle.Render(styles.EndedChar + " Ended")
	case state.Paused:
		status = styles.DimStyle.Render(styles.PausedChar + " Paused")
	default:
		status = styles.SuccessStyle.Render(styles.PlayingChar + " Playing")
	}

	titleWidth := m.Width - 2*BarPadding - lipgloss.Width(status) - 1
	title := styles.TitleStyle.Render(styles.Truncate(m.Session.Media.DisplayTitle(), titleWidth))

	pad := styles.Spaces(BarPadding)
	return pad + spread(title, status, m.Width-2*BarPadding)
}

// renderInfo renders the value text, the mouse time and the percentage
func (m Model) renderInfo() string {
	left := m.SeekBar.ValueText()
	if left == "" {
		left = "-:- of -:-"
	}
	left = styles.SubtitleStyle.Render(left)
	if hover := m.hoverLabel(); hover != "" {
		left += "  " + styles.AccentStyle.Render(hover)
	}
	right := styles.DimStyle.Render(m.SeekBar.ValueNow() + "%")

	width := int(m.SeekBar.Rect().Width)
	return styles.Spaces(BarPadding) + spread(left, right, width)
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
	return spread(left, right, m.Width)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	seeking := []key.Binding{
		m.keys.StepBack, m.keys.StepForward,
		m.keys.PageBack, m.keys.PageForward,
		m.keys.Home, m.keys.End, m.keys.Fraction,
	}
	playback := []key.Binding{m.keys.TogglePlay, m.keys.Escape, m.keys.Help, m.keys.Quit}

	var b strings.Builder
	b.WriteString("SEEKING\n")
	writeBindings(&b, seeking)
	b.WriteString("\nPLAYBACK\n")
	writeBindings(&b, playback)
	b.WriteString(`
MOUSE
  Click or drag on the bar to scrub
  Hover over the bar to preview a time
  Scroll over the bar to step

Press any key to return...`)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}

const helpKeyWidth = 9

// writeBindings writes one aligned help row per binding
func writeBindings(b *strings.Builder, bindings []key.Binding) {
	for _, binding := range bindings {
		h := binding.Help()
		pad := max(helpKeyWidth-lipgloss.Width(h.Key), 1)
		fmt.Fprintf(b, "  %s%s%s\n", h.Key, styles.Spaces(pad), h.Desc)
	}
}
