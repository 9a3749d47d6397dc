package mpv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/mmcdole/scrub/internal/clock"
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/samber/lo"
)

const commandTimeout = 2 * time.Second

// observed properties and their observe_property ids
var observed = []struct {
	id   int
	name string
}{
	{1, "time-pos"},
	{2, "duration"},
	{3, "pause"},
	{4, "eof-reached"},
}

// Clock mirrors player state from property-change events. Observers are
// notified on the IPC reader goroutine, so consumers that are not safe for
// concurrent use must hand events over to their own loop.
type Clock struct {
	mu        sync.RWMutex
	current   float64
	cached    float64
	duration  float64
	scrubbing bool
	paused    bool
	ended     bool

	// seeking is set from SeekTo until the player reports playback-restart
	seeking    bool
	seekTarget float64

	client    *Client
	observers *clock.Observers
	logger    *slog.Logger
}

// NewClock creates a clock with an unknown duration. Call Connect before use.
func NewClock(logger *slog.Logger) *Clock {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clock{
		duration:  math.NaN(),
		paused:    true,
		observers: clock.NewObservers(),
		logger:    logger.With("component", "mpv"),
	}
}

// Connect dials the player and subscribes to the observed properties.
func (c *Clock) Connect(ctx context.Context, socket string) error {
	client, err := Dial(ctx, socket, c.handleEvent, c.logger)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.client = client
	c.mu.Unlock()

	for _, prop := range observed {
		if _, err := client.Command(ctx, "observe_property", prop.id, prop.name); err != nil {
			client.Close()
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	// The duration is unavailable until the file is loaded; the observer
	// fills it in later in that case.
	if d, err := c.PropertyFloat(ctx, "duration"); err == nil {
		c.setDuration(d)
	} else {
		c.logger.Debug("duration not available yet", "error", err)
	}
	c.logger.Info("connected to player", "socket", socket)
	return nil
}

// Done is closed when the player connection ends.
func (c *Clock) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.client.Done()
}

// Close releases the IPC connection. The player keeps running.
func (c *Clock) Close() error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return nil
	}
	return client.Close()
}

// Quit asks the player to exit.
func (c *Clock) Quit(ctx context.Context) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return domain.ErrNotConnected
	}
	_, err := client.Command(ctx, "quit")
	return err
}

// CurrentTime reports the seek target while a seek is in flight, unless
// scrubbing, in which case it is the last position the player reported.
func (c *Clock) CurrentTime() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentLocked()
}

func (c *Clock) currentLocked() float64 {
	if c.seeking && !c.scrubbing {
		return c.seekTarget
	}
	return c.current
}

func (c *Clock) Duration() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.duration
}

func (c *Clock) CachedCurrentTime() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cached
}

func (c *Clock) IsScrubbing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scrubbing
}

func (c *Clock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// SetScrubbing is local state; the player has no notion of it.
func (c *Clock) SetScrubbing(scrubbing bool) {
	c.mu.Lock()
	c.scrubbing = scrubbing
	if !scrubbing && !c.seeking {
		c.cached = c.current
	}
	c.mu.Unlock()
}

// SeekTo clamps t into range and issues an absolute seek without waiting
// for the player. NaN targets are ignored.
func (c *Clock) SeekTo(t float64) {
	if math.IsNaN(t) {
		return
	}

	c.mu.Lock()
	if domain.DurationKnown(c.duration) {
		t = lo.Clamp(t, 0, c.duration)
	} else {
		t = math.Max(0, t)
	}
	c.cached = t
	client := c.client
	if client != nil {
		c.seeking, c.seekTarget = true, t
	}
	c.mu.Unlock()

	if !c.send(client, "seek", t, "absolute+exact") {
		c.mu.Lock()
		c.seeking = false
		c.mu.Unlock()
	}
}

func (c *Clock) Play() {
	c.setPaused(false)
}

func (c *Clock) Pause() {
	c.setPaused(true)
}

// setPaused updates local state right away so that a scrub that begins
// immediately after sees the requested state. The property-change event
// confirms it later.
func (c *Clock) setPaused(paused bool) {
	c.mu.Lock()
	c.paused = paused
	client := c.client
	c.mu.Unlock()

	c.send(client, "set_property", "pause", paused)
}

func (c *Clock) send(client *Client, args ...any) bool {
	if client == nil {
		c.logger.Debug("dropping command, not connected", "command", args)
		return false
	}
	if err := client.Send(args...); err != nil {
		c.logger.Warn("ipc command failed", "command", args, "error", err)
		return false
	}
	return true
}

func (c *Clock) Subscribe(observer domain.ClockObserver) func() {
	return c.observers.Add(observer)
}

func (c *Clock) State() domain.PlaybackState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.PlaybackState{
		CurrentTime: c.currentLocked(),
		CachedTime:  c.cached,
		Duration:    c.duration,
		Scrubbing:   c.scrubbing,
		Paused:      c.paused,
		Ended:       c.ended,
	}
}

// handleEvent applies a player event and notifies observers outside the lock.
func (c *Clock) handleEvent(ev Event) {
	var notify []domain.ClockEvent

	c.mu.Lock()
	switch ev.Event {
	case "property-change":
		notify = c.applyProperty(ev.Name, ev.Data)
	case "playback-restart":
		if c.seeking {
			c.seeking = false
			c.current = c.seekTarget
			if !c.scrubbing {
				c.cached = c.current
			}
		}
		notify = append(notify, domain.ClockEvent{Type: domain.EventSeeked, Time: c.current})
	case "end-file":
		c.duration = math.NaN()
		c.seeking = false
		c.logger.Debug("file ended", "reason", ev.Reason)
	}
	c.mu.Unlock()

	for _, n := range notify {
		c.observers.Notify(n)
	}
}

// applyProperty must be called with c.mu held.
func (c *Clock) applyProperty(name string, data json.RawMessage) []domain.ClockEvent {
	switch name {
	case "time-pos":
		var pos *float64
		if err := json.Unmarshal(data, &pos); err != nil || pos == nil {
			return nil
		}
		c.current = math.Max(0, *pos)
		if !c.scrubbing && !c.seeking {
			c.cached = c.current
		}
		if domain.DurationKnown(c.duration) && c.current < c.duration {
			c.ended = false
		}
		return []domain.ClockEvent{{Type: domain.EventAdvance, Time: c.current}}

	case "duration":
		var d *float64
		if err := json.Unmarshal(data, &d); err != nil {
			return nil
		}
		if d == nil {
			c.duration = math.NaN()
		} else {
			c.duration = *d
		}
		return []domain.ClockEvent{{Type: domain.EventDurationChange, Time: c.current}}

	case "pause":
		var paused bool
		if err := json.Unmarshal(data, &paused); err != nil {
			return nil
		}
		c.paused = paused
		if paused {
			return []domain.ClockEvent{{Type: domain.EventPause, Time: c.current}}
		}
		return []domain.ClockEvent{{Type: domain.EventPlay, Time: c.current}}

	case "eof-reached":
		var eof bool
		if err := json.Unmarshal(data, &eof); err != nil || !eof || c.ended {
			return nil
		}
		c.ended = true
		return []domain.ClockEvent{{Type: domain.EventEnded, Time: c.current}}
	}
	return nil
}

// setDuration stores a duration read outside the observer and notifies.
func (c *Clock) setDuration(d float64) {
	c.mu.Lock()
	c.duration = d
	current := c.currentLocked()
	c.mu.Unlock()
	c.observers.Notify(domain.ClockEvent{Type: domain.EventDurationChange, Time: current})
}

// PropertyFloat reads a numeric property, waiting up to the command timeout.
// A property the player reports as null is an error.
func (c *Clock) PropertyFloat(ctx context.Context, name string) (float64, error) {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return 0, domain.ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	data, err := client.Command(ctx, "get_property", name)
	if err != nil {
		return 0, err
	}
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("property %s: %w", name, err)
	}
	if v == nil {
		return 0, fmt.Errorf("property %s is unavailable", name)
	}
	return *v, nil
}
