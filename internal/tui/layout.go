package tui

import "github.com/mmcdole/scrub/internal/domain"

// Screen rows, top to bottom
const (
	HeaderRow  = 0
	TooltipRow = 2
	BarRow     = 3
	InfoRow    = 4

	// Columns left and right of the bar
	BarPadding = 2

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// barRect computes the seek bar geometry for the window
func (m Model) barRect() domain.Rect {
	width := m.Width - 2*BarPadding
	if m.barWidth > 0 && m.barWidth < width {
		width = m.barWidth
	}
	width = max(width, 0)
	return domain.Rect{X: BarPadding, Y: BarRow, Width: float64(width), Height: 1}
}

// updateLayout pushes the bar geometry into the scrubber and redraws
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.Scrubber.SetRect(m.barRect())
	m.Scrubber.Refresh()
}
