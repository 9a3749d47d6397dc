package tui

import "github.com/mmcdole/scrub/internal/domain"

// ChannelObserver adapts domain.ClockObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.ClockEvent
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.ClockEvent) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnClockEvent sends the event to the channel (non-blocking if full).
// A dropped advance is made up by the next one.
func (o *ChannelObserver) OnClockEvent(event domain.ClockEvent) {
	select {
	case o.ch <- event:
	default: // Non-blocking if channel full
	}
}
