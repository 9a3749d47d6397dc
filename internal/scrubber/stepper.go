package scrubber

import "github.com/mmcdole/scrub/internal/domain"

const (
	// DefaultStepSeconds is the arrow key seek distance
	DefaultStepSeconds = 5.0
	// DefaultPageMultiplier scales the step for page up/down
	DefaultPageMultiplier = 12
)

// KeyStepper turns discrete key commands into seeks. Targets are not
// validated here; the clock clamps them.
type KeyStepper struct {
	clock          domain.Clock
	step           float64
	pageMultiplier int
}

// NewKeyStepper creates a stepper. Non-positive values fall back to defaults.
func NewKeyStepper(clock domain.Clock, step float64, pageMultiplier int) *KeyStepper {
	if step <= 0 {
		step = DefaultStepSeconds
	}
	if pageMultiplier <= 0 {
		pageMultiplier = DefaultPageMultiplier
	}
	return &KeyStepper{clock: clock, step: step, pageMultiplier: pageMultiplier}
}

// StepForward seeks one step past the current time.
func (k *KeyStepper) StepForward() {
	k.clock.SeekTo(k.clock.CurrentTime() + k.step)
}

// StepBack seeks one step before the current time.
func (k *KeyStepper) StepBack() {
	k.clock.SeekTo(k.clock.CurrentTime() - k.step)
}

// PageForward seeks a page (step times the page multiplier) forward.
func (k *KeyStepper) PageForward() {
	k.clock.SeekTo(k.clock.CurrentTime() + k.step*float64(k.pageMultiplier))
}

// PageBack seeks a page back.
func (k *KeyStepper) PageBack() {
	k.clock.SeekTo(k.clock.CurrentTime() - k.step*float64(k.pageMultiplier))
}

// SeekToStart seeks to 0.
func (k *KeyStepper) SeekToStart() {
	k.clock.SeekTo(0)
}

// SeekToEnd seeks to the duration. A NaN duration is dropped by the clock.
func (k *KeyStepper) SeekToEnd() {
	k.clock.SeekTo(k.clock.Duration())
}

// SeekToFraction jumps to n tenths of the duration (digit keys 0-9).
func (k *KeyStepper) SeekToFraction(n int) {
	if n < 0 || n > 9 {
		return
	}
	k.clock.SeekTo(k.clock.Duration() * float64(n) / 10)
}

// Step returns the configured step size in seconds.
func (k *KeyStepper) Step() float64 {
	return k.step
}
