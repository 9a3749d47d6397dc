package domain

// ClockEventType identifies a clock notification
type ClockEventType int

const (
	// EventAdvance is sent whenever playback time moves (timeupdate)
	EventAdvance ClockEventType = iota + 1
	// EventEnded is sent once when playback reaches the end of media
	EventEnded
	// EventDurationChange is sent when the duration becomes known or changes
	EventDurationChange
	// EventPlay and EventPause report play state changes
	EventPlay
	EventPause
	// EventSeeked is sent when an asynchronous seek has landed
	EventSeeked
)

func (t ClockEventType) String() string {
	switch t {
	case EventAdvance:
		return "advance"
	case EventEnded:
		return "ended"
	case EventDurationChange:
		return "durationchange"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventSeeked:
		return "seeked"
	default:
		return "unknown"
	}
}

// ClockEvent is a single clock notification.
type ClockEvent struct {
	Type ClockEventType
	Time float64 // Clock time when the event was raised
}

// Triggers reports whether the event should refresh displayed progress.
func (e ClockEvent) Triggers() bool {
	switch e.Type {
	case EventAdvance, EventEnded, EventDurationChange, EventSeeked:
		return true
	}
	return false
}

// ClockObserver receives clock notifications.
type ClockObserver interface {
	OnClockEvent(event ClockEvent)
}

// ClockObserverFunc adapts a plain func to ClockObserver.
type ClockObserverFunc func(ClockEvent)

func (f ClockObserverFunc) OnClockEvent(event ClockEvent) { f(event) }
