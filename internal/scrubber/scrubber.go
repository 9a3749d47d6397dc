// Package scrubber implements the seek bar logic of a media player: progress
// display synchronized with an asynchronous clock, the press-drag-release
// scrub gesture, and keyboard seeking.
//
// Everything in this package runs on one event loop. Deferred work goes
// through a Scheduler which must call back on that same loop.
package scrubber

import (
	"log/slog"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
)

// Options are resolved once when the scrubber is built.
type Options struct {
	SyncInterval   time.Duration // Throttle window for progress updates
	StepSeconds    float64       // Arrow key seek distance
	PageMultiplier int           // Page key seek distance in steps
	EndEpsilon     float64       // Pull-back applied to drags that land on the duration

	IncludeTimeTooltip bool // Push the formatted time to the tooltip renderer
	IncludeMouseTime   bool // Report hovered times while idle
}

// DefaultOptions returns the standard seek bar behavior.
func DefaultOptions() Options {
	return Options{
		SyncInterval:       DefaultSyncInterval,
		StepSeconds:        DefaultStepSeconds,
		PageMultiplier:     DefaultPageMultiplier,
		EndEpsilon:         DefaultEndEpsilon,
		IncludeTimeTooltip: true,
		IncludeMouseTime:   true,
	}
}

// Scrubber wires the sync, session and stepper around one clock.
type Scrubber struct {
	clock   domain.Clock
	opts    Options
	sync    *ProgressSync
	session *ScrubSession
	stepper *KeyStepper
	logger  *slog.Logger
}

// New creates a scrubber. Output collaborators may be nil.
func New(
	clock domain.Clock,
	track domain.GestureTrack,
	out Outputs,
	sched Scheduler,
	opts Options,
	logger *slog.Logger,
) *Scrubber {
	if logger == nil {
		logger = slog.Default()
	}
	if !opts.IncludeTimeTooltip {
		out.Tooltip = nil
	}
	logger = logger.With("component", "scrubber")

	return &Scrubber{
		clock:   clock,
		opts:    opts,
		sync:    NewProgressSync(clock, out, sched, opts.SyncInterval, logger),
		session: NewScrubSession(clock, track, opts.EndEpsilon, logger),
		stepper: NewKeyStepper(clock, opts.StepSeconds, opts.PageMultiplier),
		logger:  logger,
	}
}

// OnClockEvent implements domain.ClockObserver. Only subscribe the scrubber
// directly to clocks that notify on the scrubber's event loop.
func (s *Scrubber) OnClockEvent(event domain.ClockEvent) {
	if event.Triggers() {
		s.sync.OnClockAdvance()
	}
}

// SetRect updates the track geometry used for hit testing and rendering.
func (s *Scrubber) SetRect(rect domain.Rect) {
	s.sync.SetRect(rect)
}

// Rect returns the current track geometry.
func (s *Scrubber) Rect() domain.Rect {
	return s.sync.Rect()
}

// PointerDown starts a scrub and seeks to the pressed position.
func (s *Scrubber) PointerDown(event domain.PointerEvent) {
	if !s.session.Begin() {
		return
	}
	s.drag(event)
}

// PointerMove seeks while scrubbing. Outside a scrub it does nothing.
func (s *Scrubber) PointerMove(event domain.PointerEvent) {
	if !s.session.Active() {
		return
	}
	s.drag(event)
}

func (s *Scrubber) drag(event domain.PointerEvent) {
	if target, ok := s.session.Drag(event, s.sync.Rect()); ok {
		s.logger.Debug("scrub seek", "target", target)
		s.sync.OnClockAdvance()
	}
}

// PointerUp ends the scrub and refreshes the display.
func (s *Scrubber) PointerUp(domain.PointerEvent) {
	s.finish()
}

// PointerCancel ends the scrub when the gesture is aborted. It is safe to
// receive it in addition to PointerUp for the same gesture.
func (s *Scrubber) PointerCancel() {
	s.finish()
}

func (s *Scrubber) finish() {
	if s.session.End() {
		s.sync.OnClockAdvance()
	}
}

// Hover returns the media time under the pointer for the mouse time
// display. ok is false while scrubbing, when disabled, or when the duration
// is unknown.
func (s *Scrubber) Hover(event domain.PointerEvent) (t float64, ok bool) {
	if !s.opts.IncludeMouseTime || s.session.Active() {
		return 0, false
	}
	if !domain.DurationKnown(s.clock.Duration()) {
		return 0, false
	}
	return s.session.TimeAt(event, s.sync.Rect()), true
}

// Scrubbing reports whether a scrub gesture is active.
func (s *Scrubber) Scrubbing() bool {
	return s.session.Active()
}

// Key commands seek through the stepper and schedule a refresh.

func (s *Scrubber) StepForward() { s.seeked(s.stepper.StepForward) }
func (s *Scrubber) StepBack()    { s.seeked(s.stepper.StepBack) }
func (s *Scrubber) PageForward() { s.seeked(s.stepper.PageForward) }
func (s *Scrubber) PageBack()    { s.seeked(s.stepper.PageBack) }
func (s *Scrubber) SeekToStart() { s.seeked(s.stepper.SeekToStart) }
func (s *Scrubber) SeekToEnd()   { s.seeked(s.stepper.SeekToEnd) }

// SeekToFraction jumps to n tenths of the duration.
func (s *Scrubber) SeekToFraction(n int) {
	s.seeked(func() { s.stepper.SeekToFraction(n) })
}

func (s *Scrubber) seeked(seek func()) {
	seek()
	s.sync.OnClockAdvance()
}

// TogglePlay plays when paused and pauses when playing. During a scrub the
// clock stays paused and the toggle decides whether release resumes.
func (s *Scrubber) TogglePlay() {
	if s.session.Active() {
		s.session.ToggleResume()
		return
	}
	if s.clock.IsPaused() {
		s.clock.Play()
	} else {
		s.clock.Pause()
	}
}

// Snapshot returns what the bar currently shows.
func (s *Scrubber) Snapshot() domain.DisplaySnapshot {
	return s.sync.Snapshot()
}

// Refresh recomputes the display immediately, bypassing the throttle.
func (s *Scrubber) Refresh() domain.DisplaySnapshot {
	s.sync.Stop()
	return s.sync.Update()
}

// Close cancels pending work. Unsubscribing from the clock is up to
// whoever subscribed.
func (s *Scrubber) Close() {
	s.sync.Stop()
	s.session.End()
}
