package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/scrub/internal/adapter"
	"github.com/mmcdole/scrub/internal/adapter/mpv"
	"github.com/mmcdole/scrub/internal/clock"
	"github.com/mmcdole/scrub/internal/domain"
)

const connectTimeout = 10 * time.Second

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(path, socket string, startOffset time.Duration) (*adapter.Process, error)
}

// Session is media opened on a playback backend
type Session struct {
	Media  domain.Media
	Clock  domain.Clock
	Offset time.Duration // Resume offset the session started at

	// Simulated is set for the demo backend, which needs explicit ticks
	Simulated *clock.Simulated
	// Done is closed when an external player goes away; nil otherwise
	Done <-chan struct{}

	close func() error
}

// Close releases the backend. Safe to call more than once.
func (s *Session) Close() error {
	if s.close == nil {
		return nil
	}
	fn := s.close
	s.close = nil
	return fn()
}

// PlaybackService orchestrates playback operations
type PlaybackService struct {
	player   adapter.PlayerConfig
	resume   adapter.ResumeConfig
	store    domain.ResumeStore
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service. store may be nil to
// disable resume positions.
func NewPlaybackService(
	player adapter.PlayerConfig,
	resume adapter.ResumeConfig,
	store domain.ResumeStore,
	launcher launcher,
	logger *slog.Logger,
) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		player:   player,
		resume:   resume,
		store:    store,
		launcher: launcher,
		logger:   logger,
	}
}

// ResolveMedia builds the media for a command line argument. An empty arg
// selects the demo media; local paths are made absolute so the resume key
// is stable across working directories.
func ResolveMedia(arg string, duration time.Duration) (domain.Media, error) {
	d := math.NaN()
	if duration > 0 {
		d = duration.Seconds()
	}

	if arg == "" {
		return domain.Media{Key: "demo", Title: "Demo", Duration: d}, nil
	}

	if u, err := url.Parse(arg); err == nil && u.Scheme != "" && u.Host != "" {
		return domain.Media{Key: arg, Path: arg, Duration: d}, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return domain.Media{}, fmt.Errorf("%w: %s: %v", domain.ErrMediaNotFound, arg, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return domain.Media{}, fmt.Errorf("%w: %s", domain.ErrMediaNotFound, arg)
	}
	return domain.Media{Key: abs, Path: abs, Duration: d}, nil
}

// ResolveStoredMedia is ResolveMedia for media that may no longer exist,
// such as a deleted file whose resume position should be forgotten.
func ResolveStoredMedia(arg string) (domain.Media, error) {
	media, err := ResolveMedia(arg, 0)
	if !errors.Is(err, domain.ErrMediaNotFound) {
		return media, err
	}
	abs, absErr := filepath.Abs(arg)
	if absErr != nil {
		return domain.Media{}, err
	}
	return domain.Media{Key: abs, Path: abs, Duration: math.NaN()}, nil
}

// ResumeOffset returns where playback of media should start. Positions
// below the minimum or past the finished ratio start from the beginning.
func (s *PlaybackService) ResumeOffset(media domain.Media) time.Duration {
	if !s.resume.Enabled || s.store == nil {
		return 0
	}
	rec, ok := s.store.Get(media.Key)
	if !ok {
		return 0
	}
	if rec.Offset() < s.resume.MinPosition {
		return 0
	}
	if rec.PercentComplete() >= s.resume.FinishedRatio {
		return 0
	}
	return rec.Offset()
}

// Open starts media on the configured backend at its resume offset
func (s *PlaybackService) Open(ctx context.Context, media domain.Media) (*Session, error) {
	offset := s.ResumeOffset(media)
	s.logger.Info("opening media", "key", media.Key, "backend", s.player.Backend, "offset", offset)

	switch s.player.Backend {
	case adapter.BackendMPV:
		return s.openMPV(ctx, media, offset)
	default:
		return s.openSimulated(media, offset), nil
	}
}

func (s *PlaybackService) openSimulated(media domain.Media, offset time.Duration) *Session {
	d := media.Duration
	if !domain.DurationKnown(d) {
		d = s.player.DemoDuration.Seconds()
	}
	sim := clock.NewSimulated(d, s.player.SeekLatency, nil)
	if offset > 0 {
		sim.SeekTo(offset.Seconds())
	}
	sim.Play()

	return &Session{
		Media:     media,
		Clock:     sim,
		Offset:    offset,
		Simulated: sim,
	}
}

func (s *PlaybackService) openMPV(ctx context.Context, media domain.Media, offset time.Duration) (*Session, error) {
	if media.Path == "" {
		return nil, fmt.Errorf("%w: the mpv backend needs a media path", domain.ErrMediaNotFound)
	}
	if s.launcher == nil {
		return nil, domain.ErrPlayerNotFound
	}

	socket := s.player.Socket
	if socket == "" {
		socket = adapter.DefaultSocketPath()
	}

	proc, err := s.launcher.Launch(media.Path, socket, offset)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	c := mpv.NewClock(s.logger)
	if err := c.Connect(connectCtx, socket); err != nil {
		proc.Stop()
		return nil, err
	}

	return &Session{
		Media:  media,
		Clock:  c,
		Offset: offset,
		Done:   c.Done(),
		close: func() error {
			quitCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := c.Quit(quitCtx); err != nil && !errors.Is(err, domain.ErrNotConnected) {
				s.logger.Debug("player quit failed", "error", err)
			}
			c.Close()
			os.Remove(socket)
			return proc.Stop()
		},
	}, nil
}

// SaveProgress records the position for the next session. Finished media
// and positions too early to resume clear the record instead.
func (s *PlaybackService) SaveProgress(media domain.Media, state domain.PlaybackState) error {
	if !s.resume.Enabled || s.store == nil {
		return nil
	}

	position := state.CurrentTime
	if state.Scrubbing {
		position = state.CachedTime
	}

	finished := state.Ended || (domain.DurationKnown(state.Duration) && state.Percent() >= s.resume.FinishedRatio)
	if finished || position < s.resume.MinPosition.Seconds() {
		s.logger.Debug("clearing resume position", "key", media.Key, "position", position, "finished", finished)
		return s.store.Delete(media.Key)
	}

	rec := domain.ResumeRecord{
		MediaKey:  media.Key,
		Path:      media.Path,
		Title:     media.DisplayTitle(),
		Position:  position,
		Duration:  state.Duration,
		UpdatedAt: time.Now().Unix(),
	}
	if !domain.DurationKnown(rec.Duration) {
		rec.Duration = 0
	}
	s.logger.Info("saving resume position", "record", rec.String())
	return s.store.Save(rec)
}

// History lists stored resume positions, most recent first
func (s *PlaybackService) History() ([]domain.ResumeRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List()
}

// Forget removes the resume position for media
func (s *PlaybackService) Forget(media domain.Media) error {
	if s.store == nil {
		return nil
	}
	return s.store.Delete(media.Key)
}
