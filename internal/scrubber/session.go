package scrubber

import (
	"log/slog"

	"github.com/mmcdole/scrub/internal/domain"
)

// DefaultEndEpsilon keeps a drag to the very end from landing on the
// duration itself, which would end playback mid-gesture.
const DefaultEndEpsilon = 0.1

// ScrubSession owns one press-drag-release gesture.
// Idle -> Active on Begin, Active -> Idle on End. Redundant transitions are
// no-ops since pointer devices can repeat or reorder events.
type ScrubSession struct {
	clock      domain.Clock
	track      domain.GestureTrack
	endEpsilon float64
	logger     *slog.Logger

	active                bool
	wasPlayingBeforeScrub bool
}

// NewScrubSession creates an idle session.
func NewScrubSession(clock domain.Clock, track domain.GestureTrack, endEpsilon float64, logger *slog.Logger) *ScrubSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScrubSession{
		clock:      clock,
		track:      track,
		endEpsilon: endEpsilon,
		logger:     logger,
	}
}

// Begin starts a gesture: remembers the play state, pauses and puts the
// clock in scrubbing mode. Returns false if a gesture was already active.
func (s *ScrubSession) Begin() bool {
	if s.active {
		s.logger.Debug("scrub begin ignored, session already active")
		return false
	}
	s.active = true
	s.wasPlayingBeforeScrub = !s.clock.IsPaused()
	s.clock.Pause()
	s.clock.SetScrubbing(true)
	s.logger.Debug("scrub began", "wasPlaying", s.wasPlayingBeforeScrub)
	return true
}

// Drag seeks to the time under the pointer. Returns the seek target and
// false when no gesture is active.
func (s *ScrubSession) Drag(event domain.PointerEvent, rect domain.Rect) (float64, bool) {
	if !s.active {
		return 0, false
	}
	target := s.TimeAt(event, rect)
	if target == s.clock.Duration() {
		target -= s.endEpsilon
	}
	s.clock.SeekTo(target)
	return target, true
}

// TimeAt maps a pointer position to a media time without seeking.
func (s *ScrubSession) TimeAt(event domain.PointerEvent, rect domain.Rect) float64 {
	ratio := s.track.RatioAlongTrack(event, rect)
	return ratio * s.clock.Duration()
}

// End finishes the gesture and resumes playback if it was playing before.
// Returns false if no gesture was active.
func (s *ScrubSession) End() bool {
	if !s.active {
		s.logger.Debug("scrub end ignored, no active session")
		return false
	}
	s.active = false
	s.clock.SetScrubbing(false)
	resume := s.wasPlayingBeforeScrub
	s.wasPlayingBeforeScrub = false
	if resume {
		s.clock.Play()
	}
	s.logger.Debug("scrub ended", "resumed", resume)
	return true
}

// ToggleResume flips whether End resumes playback. The clock stays paused
// for the rest of the gesture. Returns the new setting, false when idle.
func (s *ScrubSession) ToggleResume() bool {
	if !s.active {
		return false
	}
	s.wasPlayingBeforeScrub = !s.wasPlayingBeforeScrub
	return s.wasPlayingBeforeScrub
}

// Active reports whether a gesture is in progress.
func (s *ScrubSession) Active() bool {
	return s.active
}
