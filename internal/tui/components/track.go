package components

import (
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/samber/lo"
)

// Track maps terminal cells to positions along a one row seek bar. The
// first cell is ratio 0 and the last cell is exactly ratio 1.
type Track struct{}

// RatioAlongTrack implements domain.GestureTrack
func (Track) RatioAlongTrack(ev domain.PointerEvent, rect domain.Rect) float64 {
	if rect.Width <= 1 {
		return 0
	}
	return lo.Clamp((ev.X-rect.X)/(rect.Width-1), 0, 1)
}

// Hit reports whether a pointer at (x, y) should grab the bar. The row
// above and below count too so the one row bar is easy to hit.
func Hit(rect domain.Rect, x, y float64) bool {
	if rect.Empty() {
		return false
	}
	grown := domain.Rect{X: rect.X, Y: rect.Y - 1, Width: rect.Width, Height: rect.Height + 2}
	return grown.Contains(x, y)
}
