// Package mpv drives an mpv-compatible player over its JSON IPC socket and
// exposes it as a domain.Clock.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
)

const (
	dialRetryDelay = 100 * time.Millisecond
	maxLineSize    = 1 << 20
)

// Event is an asynchronous message from the player, e.g. "property-change"
// for observed properties or "playback-restart" once a seek has landed.
type Event struct {
	Event  string          `json:"event"`
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
	Reason string          `json:"reason"`
}

// EventHandler receives events on the client's reader goroutine.
type EventHandler func(Event)

// request is the JSON structure sent to the IPC socket.
type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

// message is any line received from the socket. Replies carry an error
// field; events carry an event name.
type message struct {
	Event
	RequestID int64  `json:"request_id"`
	Error     string `json:"error"`
}

type reply struct {
	data json.RawMessage
	err  error
}

// Client is a single persistent IPC connection. Commands may be issued from
// any goroutine; replies are routed back by request_id.
type Client struct {
	conn    net.Conn
	handler EventHandler
	logger  *slog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan reply
	closed  bool
	done    chan struct{}
}

// Dial connects to the socket at path, retrying until it accepts
// connections or ctx ends. The player usually creates the socket shortly
// after it starts.
func Dial(ctx context.Context, path string, handler EventHandler, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var dialer net.Dialer
	for {
		conn, err := dialer.DialContext(ctx, "unix", path)
		if err == nil {
			return newClient(conn, handler, logger), nil
		}
		logger.Debug("ipc socket not ready", "socket", path, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrIPCTimeout, path, err)
		case <-time.After(dialRetryDelay):
		}
	}
}

func newClient(conn net.Conn, handler EventHandler, logger *slog.Logger) *Client {
	c := &Client{
		conn:    conn,
		handler: handler,
		logger:  logger,
		pending: make(map[int64]chan reply),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Command sends a command and waits for its reply.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	ch := make(chan reply, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrNotConnected
	}
	c.nextID++
	id := c.nextID
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.write(request{Command: args, RequestID: id}); err != nil {
		return nil, err
	}

	select {
	case r := <-ch:
		return r.data, r.err
	case <-c.done:
		return nil, domain.ErrNotConnected
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrIPCTimeout, args)
	}
}

// Send writes a command without waiting for its reply.
func (c *Client) Send(args ...any) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return domain.ErrNotConnected
	}
	return c.write(request{Command: args})
}

func (c *Client) write(req request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	// The IPC protocol is newline-delimited JSON
	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("%w: write: %v", domain.ErrNotConnected, err)
	}
	return nil
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close shuts the connection down and fails pending commands.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	}()

	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		c.dispatch(line)
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		c.logger.Warn("ipc read failed", "error", err)
	}
}

// dispatch routes one line to its waiting command or to the event handler.
func (c *Client) dispatch(line []byte) {
	var msg message
	if err := json.Unmarshal(line, &msg); err != nil {
		c.logger.Debug("skipping unparseable ipc line", "line", string(line), "error", err)
		return
	}

	if msg.Event.Event != "" {
		if c.handler != nil {
			c.handler(msg.Event)
		}
		return
	}

	c.mu.Lock()
	ch, ok := c.pending[msg.RequestID]
	c.mu.Unlock()
	if !ok {
		// Reply to a Send, nobody waits for it
		if msg.Error != "" && msg.Error != "success" {
			c.logger.Debug("ipc command failed", "error", msg.Error)
		}
		return
	}

	r := reply{data: msg.Data}
	if msg.Error != "" && msg.Error != "success" {
		r.err = fmt.Errorf("mpv error: %s", msg.Error)
	}
	ch <- r
}
