package scrubber

import "time"

// Scheduler runs f once after d on the caller's event loop.
// The returned func cancels the call if it has not fired yet.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func())
}

// Throttle runs fn at most once per interval. Calls arriving while a run is
// pending are folded into that run, which reads state when it fires, so the
// trailing run always sees the latest notification.
type Throttle struct {
	interval time.Duration
	sched    Scheduler
	fn       func()

	pending bool
	cancel  func()
}

// NewThrottle creates a throttle for fn.
func NewThrottle(interval time.Duration, sched Scheduler, fn func()) *Throttle {
	return &Throttle{
		interval: interval,
		sched:    sched,
		fn:       fn,
	}
}

// Schedule requests a run at the end of the current window.
func (t *Throttle) Schedule() {
	if t.pending {
		return
	}
	t.pending = true
	t.cancel = t.sched.AfterFunc(t.interval, t.fire)
}

// CancelPending drops the scheduled run, if any.
func (t *Throttle) CancelPending() {
	if !t.pending {
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.pending = false
	t.cancel = nil
}

// Pending reports whether a run is scheduled.
func (t *Throttle) Pending() bool {
	return t.pending
}

func (t *Throttle) fire() {
	if !t.pending {
		return
	}
	t.pending = false
	t.cancel = nil
	t.fn()
}
