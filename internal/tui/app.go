package tui

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/scrub/internal/adapter"
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/scrubber"
	"github.com/mmcdole/scrub/internal/service"
	"github.com/mmcdole/scrub/internal/tui/components"
	"github.com/mmcdole/scrub/internal/tui/styles"
)

const (
	clockBuffer   = 64
	statusTimeout = 3 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	Ready    bool
	ShowHelp bool
	Quitting bool

	// Services
	Session     *service.Session
	PlaybackSvc *service.PlaybackService

	// Seek bar and its outputs
	Scrubber *scrubber.Scrubber
	SeekBar  *components.SeekBar
	Tooltip  *components.TimeTooltip

	keys        KeyMap
	sched       *teaScheduler
	events      chan domain.ClockEvent
	unsubscribe func()

	// Dimensions
	Width    int
	Height   int
	barWidth int // 0 uses the full width

	tickInterval time.Duration

	// Mouse time display
	HoverTime float64
	Hovering  bool

	// UI state
	StatusMsg   string
	StatusIsErr bool

	logger *slog.Logger
}

// NewModel creates a new application model around an open session
func NewModel(
	session *service.Session,
	playbackSvc *service.PlaybackService,
	cfg *adapter.Config,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if !styles.ApplyTheme(cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme)
	}

	opts := cfg.ScrubberOptions()
	sched := newTeaScheduler()
	bar := components.NewSeekBar()
	tooltip := components.NewTimeTooltip()
	scrub := scrubber.New(
		session.Clock,
		components.Track{},
		scrubber.Outputs{Renderer: bar, Accessible: bar, Tooltip: tooltip},
		sched,
		opts,
		logger,
	)

	// Clocks may notify from other goroutines; everything reaches the
	// scrubber through the event loop.
	events := make(chan domain.ClockEvent, clockBuffer)
	unsubscribe := session.Clock.Subscribe(NewChannelObserver(events))

	m := Model{
		Session:      session,
		PlaybackSvc:  playbackSvc,
		Scrubber:     scrub,
		SeekBar:      bar,
		Tooltip:      tooltip,
		keys:         NewKeyMap(opts),
		sched:        sched,
		events:       events,
		unsubscribe:  unsubscribe,
		barWidth:     cfg.UI.BarWidth,
		tickInterval: cfg.Player.TickInterval,
		logger:       logger,
	}
	if session.Offset > 0 {
		m.StatusMsg = "Resumed at " + scrubber.FormatTime(session.Offset.Seconds(), session.Clock.Duration())
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		ListenClockCmd(m.events),
		WaitPlayerCmd(m.Session.Done),
	}
	if m.Session.Simulated != nil {
		cmds = append(cmds, TickCmd(m.tickInterval))
	}
	if m.StatusMsg != "" {
		cmds = append(cmds, ClearStatusCmd(statusTimeout))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKeyMsg(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m = m.handleMouseMsg(msg)

	case ClockEventMsg:
		m.Scrubber.OnClockEvent(msg.Event)
		if msg.Event.Type == domain.EventEnded {
			m.StatusMsg = "Playback ended"
			m.StatusIsErr = false
			cmds = append(cmds, ClearStatusCmd(statusTimeout))
		}
		if !m.Quitting {
			cmds = append(cmds, ListenClockCmd(m.events))
		}

	case timerMsg:
		m.sched.Fire(msg.id)

	case ClockTickMsg:
		if m.Session.Simulated != nil && !m.Quitting {
			m.Session.Simulated.Tick(msg.Time)
			cmds = append(cmds, TickCmd(m.tickInterval))
		}

	case PlayerExitedMsg:
		m.logger.Info("player exited")
		return m.quit()

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		cmds = append(cmds, ClearStatusCmd(statusTimeout))

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false

	case ErrMsg:
		m.logger.Error("error", "error", msg.Err, "context", msg.Context)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		cmds = append(cmds, ClearStatusCmd(statusTimeout))
	}

	m.SeekBar.SetScrubbing(m.Scrubber.Scrubbing())
	cmds = append(cmds, m.sched.Drain())
	return m, tea.Batch(cmds...)
}

// quit stops the scrubber and stores the resume position. The session
// itself is closed by whoever opened it.
func (m Model) quit() (Model, tea.Cmd) {
	if m.Quitting {
		return m, tea.Quit
	}
	m.Quitting = true

	state := m.Session.Clock.State()
	m.Scrubber.Close()
	m.unsubscribe()

	if m.PlaybackSvc != nil {
		if err := m.PlaybackSvc.SaveProgress(m.Session.Media, state); err != nil {
			m.logger.Error("failed to save resume position", "error", err)
		}
	}
	return m, tea.Quit
}

// hoverLabel returns the mouse time display text
func (m Model) hoverLabel() string {
	if !m.Hovering {
		return ""
	}
	return fmt.Sprintf("⌖ %s", scrubber.FormatTime(m.HoverTime, m.Session.Clock.Duration()))
}
