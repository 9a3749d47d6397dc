// Package clock provides a playback clock that runs without a media player,
// for the demo backend and tests.
package clock

import (
	"math"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
	"github.com/samber/lo"
)

// pendingSeek is a seek that has been requested but has not landed yet.
type pendingSeek struct {
	target float64
	due    time.Time
}

// Simulated is a domain.Clock advanced by explicit Tick calls. Seeks land
// after a configurable latency, which makes it lag behind the requested time
// the way a real decoder does. It is not safe for concurrent use; drive it
// from the event loop that owns the scrubber.
type Simulated struct {
	current   float64
	cached    float64
	duration  float64
	scrubbing bool
	paused    bool
	ended     bool

	seekLatency time.Duration
	pending     *pendingSeek
	lastTick    time.Time
	now         func() time.Time

	observers *Observers
}

// NewSimulated creates a paused clock at 0. A NaN duration means unknown.
// now defaults to time.Now.
func NewSimulated(duration float64, seekLatency time.Duration, now func() time.Time) *Simulated {
	if now == nil {
		now = time.Now
	}
	return &Simulated{
		duration:    duration,
		paused:      true,
		seekLatency: seekLatency,
		now:         now,
		observers:   NewObservers(),
	}
}

// CurrentTime reports the pending seek target once a seek is requested,
// so relative seeks stack. Only while scrubbing does it lag behind the
// target until the seek lands.
func (c *Simulated) CurrentTime() float64 {
	if c.pending != nil && !c.scrubbing {
		return c.pending.target
	}
	return c.current
}

func (c *Simulated) Duration() float64          { return c.duration }
func (c *Simulated) CachedCurrentTime() float64 { return c.cached }
func (c *Simulated) IsScrubbing() bool          { return c.scrubbing }
func (c *Simulated) IsPaused() bool             { return c.paused }

// SetScrubbing toggles scrubbing mode. Only the caller clears it; landing
// seeks never do.
func (c *Simulated) SetScrubbing(scrubbing bool) {
	c.scrubbing = scrubbing
}

// SeekTo clamps t to [0, duration] and starts an asynchronous seek. A seek
// issued while another is in flight retargets it and keeps its deadline.
// NaN targets are ignored.
func (c *Simulated) SeekTo(t float64) {
	if math.IsNaN(t) {
		return
	}
	t = c.clamp(t)
	c.cached = t
	if t < c.duration {
		c.ended = false
	}
	if c.seekLatency <= 0 {
		c.land(t)
		return
	}
	if c.pending != nil {
		c.pending.target = t
		return
	}
	c.pending = &pendingSeek{target: t, due: c.now().Add(c.seekLatency)}
}

func (c *Simulated) clamp(t float64) float64 {
	if !domain.DurationKnown(c.duration) {
		return math.Max(0, t)
	}
	return lo.Clamp(t, 0, c.duration)
}

func (c *Simulated) land(t float64) {
	c.pending = nil
	c.current = t
	if !c.scrubbing {
		c.cached = t
	}
	c.observers.Notify(domain.ClockEvent{Type: domain.EventSeeked, Time: t})
}

// Play resumes playback. Playing at the end restarts from 0.
func (c *Simulated) Play() {
	if !c.paused {
		return
	}
	if c.ended {
		c.ended = false
		c.current, c.cached = 0, 0
	}
	c.paused = false
	c.lastTick = c.now()
	c.observers.Notify(domain.ClockEvent{Type: domain.EventPlay, Time: c.current})
}

func (c *Simulated) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.observers.Notify(domain.ClockEvent{Type: domain.EventPause, Time: c.current})
}

// SetDuration updates the duration, e.g. once metadata is known.
func (c *Simulated) SetDuration(d float64) {
	c.duration = d
	if domain.DurationKnown(d) && c.current > d {
		c.current = d
	}
	c.observers.Notify(domain.ClockEvent{Type: domain.EventDurationChange, Time: c.current})
}

// Tick advances the clock to now: lands due seeks, moves the playhead while
// playing and raises advance and ended notifications.
func (c *Simulated) Tick(now time.Time) {
	if c.pending != nil && !now.Before(c.pending.due) {
		c.land(c.pending.target)
		c.lastTick = now
		return
	}

	if c.paused || c.pending != nil {
		c.lastTick = now
		return
	}

	elapsed := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if elapsed <= 0 {
		return
	}

	c.current += elapsed
	if domain.DurationKnown(c.duration) && c.current >= c.duration {
		c.current = c.duration
	}
	if !c.scrubbing {
		c.cached = c.current
	}
	c.observers.Notify(domain.ClockEvent{Type: domain.EventAdvance, Time: c.current})

	if domain.DurationKnown(c.duration) && c.current >= c.duration && !c.ended {
		c.ended = true
		c.paused = true
		c.observers.Notify(domain.ClockEvent{Type: domain.EventEnded, Time: c.current})
	}
}

// SeekPending reports whether a seek has not landed yet.
func (c *Simulated) SeekPending() bool {
	return c.pending != nil
}

// Ended reports whether playback reached the end.
func (c *Simulated) Ended() bool {
	return c.ended
}

func (c *Simulated) Subscribe(observer domain.ClockObserver) func() {
	return c.observers.Add(observer)
}

func (c *Simulated) State() domain.PlaybackState {
	return domain.PlaybackState{
		CurrentTime: c.CurrentTime(),
		CachedTime:  c.cached,
		Duration:    c.duration,
		Scrubbing:   c.scrubbing,
		Paused:      c.paused,
		Ended:       c.ended,
	}
}
