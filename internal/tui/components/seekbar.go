package components

import (
	"math"
	"strings"

	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/tui/styles"
)

// SeekBar draws the play progress and holds the accessible value the
// scrubber publishes. It implements domain.ProgressRenderer and
// domain.AccessibleValue.
type SeekBar struct {
	rect      domain.Rect
	percent   float64
	valueNow  string
	valueText string
	scrubbing bool
}

// NewSeekBar creates an empty seek bar
func NewSeekBar() *SeekBar {
	return &SeekBar{valueNow: "0.00"}
}

// RenderFill records the fill for the next View
func (b *SeekBar) RenderFill(rect domain.Rect, percent float64) {
	b.rect = rect
	b.percent = percent
}

// SetAccessibleValue records the value announced for the bar
func (b *SeekBar) SetAccessibleValue(valueNow, valueText string) {
	b.valueNow = valueNow
	b.valueText = valueText
}

// SetScrubbing switches the playhead style while a scrub is active
func (b *SeekBar) SetScrubbing(scrubbing bool) {
	b.scrubbing = scrubbing
}

func (b *SeekBar) Percent() float64  { return b.percent }
func (b *SeekBar) ValueNow() string  { return b.valueNow }
func (b *SeekBar) ValueText() string { return b.valueText }
func (b *SeekBar) Rect() domain.Rect { return b.rect }

// FilledCells returns how many cells of width are filled
func FilledCells(percent float64, width int) int {
	if width <= 0 || math.IsNaN(percent) {
		return 0
	}
	filled := int(math.Round(percent * float64(width)))
	return max(0, min(filled, width))
}

// HeadCell returns the cell the playhead sits on, matching the cell a
// pointer would press to seek there.
func HeadCell(percent float64, width int) int {
	if width <= 1 || math.IsNaN(percent) {
		return 0
	}
	cell := int(math.Round(percent * float64(width-1)))
	return max(0, min(cell, width-1))
}

// View renders the bar, indented to the rect's column
func (b *SeekBar) View() string {
	width := int(b.rect.Width)
	if width <= 0 {
		return ""
	}

	head := HeadCell(b.percent, width)
	filled := FilledCells(b.percent, width)

	headStyle := styles.PlayheadStyle
	if b.scrubbing {
		headStyle = styles.ScrubHeadStyle
	}

	var sb strings.Builder
	sb.WriteString(styles.Spaces(int(b.rect.X)))
	for i := 0; i < width; i++ {
		switch {
		case i == head:
			sb.WriteString(headStyle.Render(styles.PlayheadChar))
		case i < filled:
			sb.WriteString(styles.ProgressFullStyle.Render(styles.FullChar))
		default:
			sb.WriteString(styles.ProgressEmptyStyle.Render(styles.EmptyChar))
		}
	}
	return sb.String()
}
