package scrubber

import (
	"log/slog"
	"math"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
	"github.com/samber/lo"
)

// DefaultSyncInterval is the minimum spacing between progress recomputations.
const DefaultSyncInterval = 50 * time.Millisecond

// Outputs are the collaborators a sync pushes display data to.
// Any of them may be nil.
type Outputs struct {
	Renderer   domain.ProgressRenderer
	Accessible domain.AccessibleValue
	Tooltip    domain.TooltipRenderer
}

// ProgressSync keeps the displayed progress in step with the clock at a
// bounded rate.
type ProgressSync struct {
	clock    domain.Clock
	out      Outputs
	throttle *Throttle
	logger   *slog.Logger

	rect     domain.Rect
	snapshot domain.DisplaySnapshot
	updates  int
}

// NewProgressSync creates a sync that recomputes at most once per interval.
func NewProgressSync(
	clock domain.Clock,
	out Outputs,
	sched Scheduler,
	interval time.Duration,
	logger *slog.Logger,
) *ProgressSync {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	p := &ProgressSync{
		clock:  clock,
		out:    out,
		logger: logger,
	}
	p.throttle = NewThrottle(interval, sched, func() { p.Update() })
	return p
}

// OnClockAdvance is called for every clock advance and end-of-media
// notification. The recomputation itself is deferred and coalesced.
func (p *ProgressSync) OnClockAdvance() {
	p.throttle.Schedule()
}

// CurrentDisplayTime is the time the control should show right now. While
// scrubbing the clock may not have caught up with the seek target yet, so
// the cached target is echoed instead of the live time.
func (p *ProgressSync) CurrentDisplayTime() float64 {
	if p.clock.IsScrubbing() {
		return p.clock.CachedCurrentTime()
	}
	return p.clock.CurrentTime()
}

// Percent is the display time over the duration, clamped to [0,1].
// An unknown duration yields 0.
func (p *ProgressSync) Percent() float64 {
	return percentOf(p.CurrentDisplayTime(), p.clock.Duration())
}

func percentOf(t, d float64) float64 {
	if !domain.DurationKnown(d) {
		return 0
	}
	v := t / d
	if math.IsNaN(v) {
		return 0
	}
	return lo.Clamp(v, 0, 1)
}

// Update recomputes the snapshot immediately and pushes it to the outputs.
func (p *ProgressSync) Update() domain.DisplaySnapshot {
	t := p.CurrentDisplayTime()
	d := p.clock.Duration()
	percent := percentOf(t, d)

	p.snapshot = domain.DisplaySnapshot{
		Percent:   percent,
		ValueNow:  ValueNow(percent),
		ValueText: ValueText(t, d),
		Time:      t,
	}
	p.updates++

	if p.out.Renderer != nil {
		p.out.Renderer.RenderFill(p.rect, percent)
	}
	if p.out.Accessible != nil {
		p.out.Accessible.SetAccessibleValue(p.snapshot.ValueNow, p.snapshot.ValueText)
	}
	if p.out.Tooltip != nil {
		p.out.Tooltip.RenderTooltip(p.rect, percent, FormatTime(t, d))
	}

	p.logger.Debug("progress synced", "time", t, "duration", d, "percent", percent)
	return p.snapshot
}

// Snapshot returns the last computed snapshot.
func (p *ProgressSync) Snapshot() domain.DisplaySnapshot {
	return p.snapshot
}

// Updates returns how many recomputations have run.
func (p *ProgressSync) Updates() int {
	return p.updates
}

// SetRect sets the track rectangle passed to the renderer.
func (p *ProgressSync) SetRect(rect domain.Rect) {
	p.rect = rect
}

// Rect returns the current track rectangle.
func (p *ProgressSync) Rect() domain.Rect {
	return p.rect
}

// Pending reports whether a throttled recomputation is waiting to run.
func (p *ProgressSync) Pending() bool {
	return p.throttle.Pending()
}

// Stop cancels any pending recomputation.
func (p *ProgressSync) Stop() {
	p.throttle.CancelPending()
}
