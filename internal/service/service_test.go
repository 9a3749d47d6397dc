package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/scrub/internal/adapter"
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/store"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeLauncher struct {
	path   string
	socket string
	offset time.Duration
	err    error
}

func (f *fakeLauncher) Launch(path, socket string, startOffset time.Duration) (*adapter.Process, error) {
	f.path, f.socket, f.offset = path, socket, startOffset
	if f.err != nil {
		return nil, f.err
	}
	return &adapter.Process{Player: "fake", Socket: socket}, nil
}

func newService(backend adapter.Backend, l launcher) (*PlaybackService, *store.ResumeStore) {
	cfg := adapter.DefaultConfig()
	cfg.Player.Backend = backend
	cfg.Player.SeekLatency = 0
	cfg.Player.Socket = filepath.Join(os.TempDir(), "scrub-test-missing.sock")
	s, _ := store.NewResumeStore("")
	return NewPlaybackService(cfg.Player, cfg.Resume, s, l, adapter.NullLogger()), s
}

func TestResumeOffset(t *testing.T) {
	Convey("ResumeOffset", t, func() {
		svc, s := newService(adapter.BackendSimulated, nil)
		media := domain.Media{Key: "a"}

		Convey("Should be zero without a record", func() {
			So(svc.ResumeOffset(media), ShouldEqual, 0)
		})

		Convey("Should return the stored position", func() {
			s.Save(domain.ResumeRecord{MediaKey: "a", Position: 90, Duration: 600})
			So(svc.ResumeOffset(media), ShouldEqual, 90*time.Second)
		})

		Convey("Should ignore positions below the minimum", func() {
			s.Save(domain.ResumeRecord{MediaKey: "a", Position: 5, Duration: 600})
			So(svc.ResumeOffset(media), ShouldEqual, 0)
		})

		Convey("Should ignore finished media", func() {
			s.Save(domain.ResumeRecord{MediaKey: "a", Position: 590, Duration: 600})
			So(svc.ResumeOffset(media), ShouldEqual, 0)
		})
	})
}

func TestSaveProgress(t *testing.T) {
	Convey("SaveProgress", t, func() {
		svc, s := newService(adapter.BackendSimulated, nil)
		media := domain.Media{Key: "a", Title: "A"}

		Convey("Should store the current position", func() {
			So(svc.SaveProgress(media, domain.PlaybackState{CurrentTime: 60, Duration: 600}), ShouldBeNil)
			rec, ok := s.Get("a")
			So(ok, ShouldBeTrue)
			So(rec.Position, ShouldEqual, 60)
			So(rec.Title, ShouldEqual, "A")
		})

		Convey("Should use the cached time while scrubbing", func() {
			state := domain.PlaybackState{CurrentTime: 20, CachedTime: 300, Duration: 600, Scrubbing: true}
			So(svc.SaveProgress(media, state), ShouldBeNil)
			rec, _ := s.Get("a")
			So(rec.Position, ShouldEqual, 300)
		})

		Convey("Should clear the record when media ended", func() {
			s.Save(domain.ResumeRecord{MediaKey: "a", Position: 60})
			So(svc.SaveProgress(media, domain.PlaybackState{CurrentTime: 600, Duration: 600, Ended: true}), ShouldBeNil)
			_, ok := s.Get("a")
			So(ok, ShouldBeFalse)
		})

		Convey("Should clear the record near the start", func() {
			s.Save(domain.ResumeRecord{MediaKey: "a", Position: 60})
			So(svc.SaveProgress(media, domain.PlaybackState{CurrentTime: 3, Duration: 600}), ShouldBeNil)
			_, ok := s.Get("a")
			So(ok, ShouldBeFalse)
		})

		Convey("Should store zero for an unknown duration", func() {
			So(svc.SaveProgress(media, domain.PlaybackState{CurrentTime: 60, Duration: math.NaN()}), ShouldBeNil)
			rec, _ := s.Get("a")
			So(rec.Duration, ShouldEqual, 0)
		})

		Convey("History should list saved records", func() {
			svc.SaveProgress(media, domain.PlaybackState{CurrentTime: 60, Duration: 600})
			records, err := svc.History()
			So(err, ShouldBeNil)
			So(len(records), ShouldEqual, 1)

			So(svc.Forget(media), ShouldBeNil)
			records, _ = svc.History()
			So(records, ShouldBeEmpty)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Open", t, func() {
		ctx := context.Background()

		Convey("The simulated backend should start playing at the resume offset", func() {
			svc, s := newService(adapter.BackendSimulated, nil)
			s.Save(domain.ResumeRecord{MediaKey: "demo", Position: 120, Duration: 600})

			media, err := ResolveMedia("", 0)
			So(err, ShouldBeNil)
			session, err := svc.Open(ctx, media)
			So(err, ShouldBeNil)
			defer session.Close()

			So(session.Simulated, ShouldNotBeNil)
			So(session.Offset, ShouldEqual, 120*time.Second)
			So(session.Clock.CurrentTime(), ShouldEqual, 120)
			So(session.Clock.IsPaused(), ShouldBeFalse)
			So(session.Clock.Duration(), ShouldEqual, (10 * time.Minute).Seconds())
		})

		Convey("A known duration should override the demo duration", func() {
			svc, _ := newService(adapter.BackendSimulated, nil)
			media, _ := ResolveMedia("", 90*time.Second)
			session, err := svc.Open(ctx, media)
			So(err, ShouldBeNil)
			So(session.Clock.Duration(), ShouldEqual, 90)
		})

		Convey("The mpv backend should pass the offset to the launcher", func() {
			l := &fakeLauncher{err: domain.ErrPlayerNotFound}
			svc, s := newService(adapter.BackendMPV, l)
			s.Save(domain.ResumeRecord{MediaKey: "/m.mkv", Position: 45, Duration: 600})

			_, err := svc.Open(ctx, domain.Media{Key: "/m.mkv", Path: "/m.mkv"})
			So(errors.Is(err, domain.ErrPlayerNotFound), ShouldBeTrue)
			So(l.path, ShouldEqual, "/m.mkv")
			So(l.offset, ShouldEqual, 45*time.Second)
		})

		Convey("The mpv backend should fail when the player never answers", func() {
			svc, _ := newService(adapter.BackendMPV, &fakeLauncher{})
			shortCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
			defer cancel()
			_, err := svc.Open(shortCtx, domain.Media{Key: "/m.mkv", Path: "/m.mkv"})
			So(errors.Is(err, domain.ErrIPCTimeout), ShouldBeTrue)
		})

		Convey("The mpv backend should need a media path", func() {
			svc, _ := newService(adapter.BackendMPV, &fakeLauncher{})
			_, err := svc.Open(ctx, domain.Media{Key: "demo"})
			So(errors.Is(err, domain.ErrMediaNotFound), ShouldBeTrue)
		})
	})
}

func TestResolveMedia(t *testing.T) {
	Convey("ResolveMedia", t, func() {
		Convey("Should make local paths absolute", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "clip.mp4")
			So(os.WriteFile(path, nil, 0644), ShouldBeNil)

			media, err := ResolveMedia(path, 0)
			So(err, ShouldBeNil)
			So(media.Key, ShouldEqual, path)
			So(media.DisplayTitle(), ShouldEqual, "clip.mp4")
			So(math.IsNaN(media.Duration), ShouldBeTrue)
		})

		Convey("Should accept URLs as is", func() {
			media, err := ResolveMedia("https://example.com/v.mp4", time.Minute)
			So(err, ShouldBeNil)
			So(media.Path, ShouldEqual, "https://example.com/v.mp4")
			So(media.Duration, ShouldEqual, 60)
		})

		Convey("Should reject missing files", func() {
			_, err := ResolveMedia(filepath.Join(t.TempDir(), "nope.mkv"), 0)
			So(errors.Is(err, domain.ErrMediaNotFound), ShouldBeTrue)
		})

		Convey("ResolveStoredMedia should keep the key of a missing file", func() {
			path := filepath.Join(t.TempDir(), "gone.mkv")
			media, err := ResolveStoredMedia(path)
			So(err, ShouldBeNil)
			So(media.Key, ShouldEqual, path)
		})
	})
}

func TestSessionService(t *testing.T) {
	Convey("ClearHistory should remove only the resume database", t, func() {
		dir := t.TempDir()
		other := filepath.Join(dir, "movie.mkv")
		So(os.WriteFile(other, []byte("x"), 0644), ShouldBeNil)

		s, err := store.NewResumeStore(dir)
		So(err, ShouldBeNil)
		So(s.Save(domain.ResumeRecord{MediaKey: "a", Position: 60}), ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		So(NewSessionService(dir).ClearHistory(), ShouldBeNil)
		_, err = os.Stat(filepath.Join(dir, store.DBFile))
		So(os.IsNotExist(err), ShouldBeTrue)
		_, err = os.Stat(other)
		So(err, ShouldBeNil)

		s, err = store.NewResumeStore(dir)
		So(err, ShouldBeNil)
		defer s.Close()
		_, ok := s.Get("a")
		So(ok, ShouldBeFalse)
	})

	Convey("ClearHistory should succeed when nothing was stored", t, func() {
		So(NewSessionService(t.TempDir()).ClearHistory(), ShouldBeNil)
	})
}
