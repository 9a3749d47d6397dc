package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/tui/styles"
)

// TimeTooltip shows a time label that follows the playhead. It implements
// domain.TooltipRenderer; the app also points it at hovered times.
type TimeTooltip struct {
	rect    domain.Rect
	percent float64
	text    string
}

// NewTimeTooltip creates an empty tooltip
func NewTimeTooltip() *TimeTooltip {
	return &TimeTooltip{}
}

// RenderTooltip records the label and where it should sit
func (t *TimeTooltip) RenderTooltip(rect domain.Rect, percent float64, text string) {
	t.rect = rect
	t.percent = percent
	t.text = text
}

func (t *TimeTooltip) Text() string { return t.text }

// Offset returns the column the label starts at: centered over the
// playhead and kept inside the bar.
func (t *TimeTooltip) Offset() int {
	return LabelOffset(t.rect, t.percent, lipgloss.Width(" "+t.text+" "))
}

// LabelOffset centers a label of labelWidth over percent of rect, clamped
// so it does not overhang the bar ends.
func LabelOffset(rect domain.Rect, percent float64, labelWidth int) int {
	width := int(rect.Width)
	left := int(rect.X)
	center := left + HeadCell(percent, width)
	start := center - labelWidth/2
	start = min(start, left+width-labelWidth)
	return max(start, left)
}

// View renders the label on its own line
func (t *TimeTooltip) View() string {
	if t.text == "" || t.rect.Empty() {
		return ""
	}
	return styles.Spaces(t.Offset()) + styles.TooltipStyle.Render(" "+t.text+" ")
}
