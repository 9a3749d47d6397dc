package domain

import "math"

// PlaybackState is a point-in-time view of a clock.
// While Scrubbing is true CurrentTime may lag the time the user asked for.
type PlaybackState struct {
	CurrentTime float64 // Seconds, >= 0
	CachedTime  float64 // Last known good time, used while scrubbing
	Duration    float64 // Seconds, NaN when not yet known
	Scrubbing   bool
	Paused      bool
	Ended       bool
}

// Percent returns the played fraction, or 0 when the duration is unknown.
func (s PlaybackState) Percent() float64 {
	if !DurationKnown(s.Duration) {
		return 0
	}
	p := s.CurrentTime / s.Duration
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// DurationKnown reports whether d can be used as a divisor for progress.
func DurationKnown(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 0
}

// Clock is the authoritative playback clock the scrubber drives.
// Implementations own seek validation and must clamp out-of-range targets
// instead of failing.
type Clock interface {
	CurrentTime() float64
	Duration() float64

	// CachedCurrentTime is the last known good time. While scrubbing it
	// holds the most recent seek target even if the seek has not landed.
	CachedCurrentTime() float64

	IsScrubbing() bool
	SetScrubbing(scrubbing bool)

	SeekTo(t float64)
	Play()
	Pause()
	IsPaused() bool

	// Subscribe registers an observer for clock notifications and returns
	// the func that removes it.
	Subscribe(observer ClockObserver) (unsubscribe func())

	State() PlaybackState
}
