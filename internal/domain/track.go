package domain

// Rect is the on-screen area of the seek bar track.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty returns true if the rect has no area to draw or hit-test.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// PointerEvent is a pointer position in the same coordinate space as Rect.
type PointerEvent struct {
	X float64
	Y float64
}

// GestureTrack maps a pointer position to a ratio in [0,1] along the track.
type GestureTrack interface {
	RatioAlongTrack(event PointerEvent, rect Rect) float64
}

// DisplaySnapshot is what the seek bar currently shows.
type DisplaySnapshot struct {
	Percent   float64 // [0,1]
	ValueNow  string  // Percent * 100 with two decimals, e.g. "25.00"
	ValueText string  // "0:30 of 2:00"; empty when the duration is unknown
	Time      float64 // Display time the snapshot was computed from
}

// ProgressRenderer paints the fill bar.
type ProgressRenderer interface {
	RenderFill(rect Rect, percent float64)
}

// AccessibleValue receives the values exposed to assistive technology.
type AccessibleValue interface {
	SetAccessibleValue(valueNow, valueText string)
}

// TooltipRenderer shows the formatted display time at the fill position.
type TooltipRenderer interface {
	RenderTooltip(rect Rect, percent float64, text string)
}
