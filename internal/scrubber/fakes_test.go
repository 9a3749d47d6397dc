package scrubber

import (
	"math"
	"sort"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
)

// fakeClock records calls and applies seeks immediately unless lagging.
type fakeClock struct {
	current   float64
	cached    float64
	duration  float64
	scrubbing bool
	paused    bool

	// lag keeps current where it is on SeekTo, like a seek still in flight
	lag bool

	seeks       []float64
	playCalls   int
	pauseCalls  int
	scrubToggle []bool
}

func newFakeClock(current, duration float64) *fakeClock {
	return &fakeClock{current: current, cached: current, duration: duration, paused: true}
}

func (c *fakeClock) CurrentTime() float64       { return c.current }
func (c *fakeClock) Duration() float64          { return c.duration }
func (c *fakeClock) CachedCurrentTime() float64 { return c.cached }
func (c *fakeClock) IsScrubbing() bool          { return c.scrubbing }
func (c *fakeClock) IsPaused() bool             { return c.paused }

func (c *fakeClock) SetScrubbing(v bool) {
	c.scrubbing = v
	c.scrubToggle = append(c.scrubToggle, v)
}

func (c *fakeClock) SeekTo(t float64) {
	c.seeks = append(c.seeks, t)
	if math.IsNaN(t) {
		return
	}
	t = math.Max(0, t)
	if !math.IsNaN(c.duration) {
		t = math.Min(t, c.duration)
	}
	c.cached = t
	if !c.lag {
		c.current = t
	}
}

func (c *fakeClock) Play() {
	c.playCalls++
	c.paused = false
}

func (c *fakeClock) Pause() {
	c.pauseCalls++
	c.paused = true
}

func (c *fakeClock) Subscribe(domain.ClockObserver) func() { return func() {} }

func (c *fakeClock) State() domain.PlaybackState {
	return domain.PlaybackState{
		CurrentTime: c.current,
		CachedTime:  c.cached,
		Duration:    c.duration,
		Scrubbing:   c.scrubbing,
		Paused:      c.paused,
	}
}

// manualScheduler fires timers when the test advances time.
type manualScheduler struct {
	now    time.Duration
	nextID int
	timers map[int]manualTimer
}

type manualTimer struct {
	at time.Duration
	f  func()
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{timers: make(map[int]manualTimer)}
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) func() {
	id := s.nextID
	s.nextID++
	s.timers[id] = manualTimer{at: s.now + d, f: f}
	return func() { delete(s.timers, id) }
}

// Advance moves time forward and fires due timers in order.
func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		ids := make([]int, 0, len(s.timers))
		for id, t := range s.timers {
			if t.at <= s.now {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return
		}
		sort.Slice(ids, func(i, j int) bool { return s.timers[ids[i]].at < s.timers[ids[j]].at })
		t := s.timers[ids[0]]
		delete(s.timers, ids[0])
		t.f()
	}
}

func (s *manualScheduler) Len() int { return len(s.timers) }

// horizontalTrack maps X linearly across the rect width.
type horizontalTrack struct{}

func (horizontalTrack) RatioAlongTrack(ev domain.PointerEvent, rect domain.Rect) float64 {
	if rect.Width <= 0 {
		return 0
	}
	r := (ev.X - rect.X) / rect.Width
	return math.Min(1, math.Max(0, r))
}

// fixedTrack always reports the same ratio.
type fixedTrack float64

func (f fixedTrack) RatioAlongTrack(domain.PointerEvent, domain.Rect) float64 { return float64(f) }

type recordingOutputs struct {
	fills    []float64
	rects    []domain.Rect
	valueNow string
	text     string
	tooltips []string
}

func (r *recordingOutputs) RenderFill(rect domain.Rect, percent float64) {
	r.rects = append(r.rects, rect)
	r.fills = append(r.fills, percent)
}

func (r *recordingOutputs) SetAccessibleValue(now, text string) {
	r.valueNow = now
	r.text = text
}

func (r *recordingOutputs) RenderTooltip(_ domain.Rect, _ float64, text string) {
	r.tooltips = append(r.tooltips, text)
}

func (r *recordingOutputs) outputs() Outputs {
	return Outputs{Renderer: r, Accessible: r, Tooltip: r}
}

func domainRect(x, y, width float64) domain.Rect {
	return domain.Rect{X: x, Y: y, Width: width, Height: 1}
}
