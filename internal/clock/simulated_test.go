package clock

import (
	"math"
	"testing"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) Now() time.Time          { return f.t }
func (f *fakeNow) Advance(d time.Duration) { f.t = f.t.Add(d) }

type eventLog struct{ events []domain.ClockEventType }

func (l *eventLog) OnClockEvent(e domain.ClockEvent) { l.events = append(l.events, e.Type) }

func TestSimulatedPlayback(t *testing.T) {
	Convey("Simulated clock", t, func() {
		now := &fakeNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := NewSimulated(100, 0, now.Now)
		log := &eventLog{}
		unsubscribe := c.Subscribe(log)

		Convey("Should start paused at zero", func() {
			So(c.IsPaused(), ShouldBeTrue)
			So(c.CurrentTime(), ShouldEqual, 0)
		})

		Convey("Should advance by wall time while playing", func() {
			c.Play()
			now.Advance(1500 * time.Millisecond)
			c.Tick(now.t)
			So(c.CurrentTime(), ShouldAlmostEqual, 1.5, 1e-9)
			So(c.CachedCurrentTime(), ShouldAlmostEqual, 1.5, 1e-9)
			So(log.events, ShouldResemble, []domain.ClockEventType{domain.EventPlay, domain.EventAdvance})
		})

		Convey("Should not advance while paused", func() {
			now.Advance(time.Second)
			c.Tick(now.t)
			So(c.CurrentTime(), ShouldEqual, 0)
			So(log.events, ShouldBeEmpty)
		})

		Convey("Should stop and notify once at the end", func() {
			c.SeekTo(99)
			c.Play()
			now.Advance(2 * time.Second)
			c.Tick(now.t)
			now.Advance(2 * time.Second)
			c.Tick(now.t)

			So(c.CurrentTime(), ShouldEqual, 100)
			So(c.IsPaused(), ShouldBeTrue)
			So(c.Ended(), ShouldBeTrue)
			ended := 0
			for _, e := range log.events {
				if e == domain.EventEnded {
					ended++
				}
			}
			So(ended, ShouldEqual, 1)

			Convey("and restart from zero on play", func() {
				c.Play()
				So(c.CurrentTime(), ShouldEqual, 0)
				So(c.Ended(), ShouldBeFalse)
			})
		})

		Convey("Should clamp seek targets instead of failing", func() {
			c.SeekTo(-10)
			So(c.CurrentTime(), ShouldEqual, 0)
			c.SeekTo(500)
			So(c.CurrentTime(), ShouldEqual, 100)
			c.SeekTo(math.NaN())
			So(c.CurrentTime(), ShouldEqual, 100)
		})

		Convey("Unsubscribe should stop notifications", func() {
			unsubscribe()
			unsubscribe()
			c.Play()
			So(log.events, ShouldBeEmpty)
		})
	})
}

func TestSimulatedSeekLatency(t *testing.T) {
	Convey("Simulated clock with seek latency", t, func() {
		now := &fakeNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := NewSimulated(100, 200*time.Millisecond, now.Now)
		c.SeekTo(10)
		now.Advance(200 * time.Millisecond)
		c.Tick(now.t)

		Convey("Should report the target before the seek lands", func() {
			c.SeekTo(60)
			So(c.SeekPending(), ShouldBeTrue)
			So(c.CurrentTime(), ShouldEqual, 60)
			So(c.CachedCurrentTime(), ShouldEqual, 60)
			So(c.State().CurrentTime, ShouldEqual, 60)
			So(c.current, ShouldEqual, 10)

			now.Advance(100 * time.Millisecond)
			c.Tick(now.t)
			So(c.current, ShouldEqual, 10)

			now.Advance(100 * time.Millisecond)
			c.Tick(now.t)
			So(c.current, ShouldEqual, 60)
			So(c.SeekPending(), ShouldBeFalse)
		})

		Convey("Should lag behind the target only while scrubbing", func() {
			c.SetScrubbing(true)
			c.SeekTo(60)
			So(c.CurrentTime(), ShouldEqual, 10)
			So(c.CachedCurrentTime(), ShouldEqual, 60)

			c.SetScrubbing(false)
			So(c.CurrentTime(), ShouldEqual, 60)
		})

		Convey("Relative seeks in flight should stack", func() {
			c.SeekTo(c.CurrentTime() + 5)
			now.Advance(30 * time.Millisecond)
			c.Tick(now.t)
			c.SeekTo(c.CurrentTime() - 5)
			now.Advance(200 * time.Millisecond)
			c.Tick(now.t)
			So(c.CurrentTime(), ShouldEqual, 10)
			So(c.SeekPending(), ShouldBeFalse)
		})

		Convey("A retargeted seek should keep its deadline", func() {
			c.SeekTo(20)
			now.Advance(150 * time.Millisecond)
			c.Tick(now.t)
			c.SeekTo(30)
			now.Advance(50 * time.Millisecond)
			c.Tick(now.t)
			So(c.SeekPending(), ShouldBeFalse)
			So(c.CurrentTime(), ShouldEqual, 30)
		})

		Convey("Should never clear scrubbing when a seek lands", func() {
			c.SetScrubbing(true)
			c.SeekTo(30)
			now.Advance(time.Second)
			c.Tick(now.t)
			So(c.CurrentTime(), ShouldEqual, 30)
			So(c.IsScrubbing(), ShouldBeTrue)
		})

		Convey("Should keep the cached target while scrubbing and playing", func() {
			c.Play()
			c.SetScrubbing(true)
			c.SeekTo(70)
			now.Advance(500 * time.Millisecond)
			c.Tick(now.t)
			now.Advance(500 * time.Millisecond)
			c.Tick(now.t)
			So(c.CachedCurrentTime(), ShouldEqual, 70)
			So(c.CurrentTime(), ShouldAlmostEqual, 70.5, 1e-9)
		})

		Convey("Should only apply the latest of overlapping seeks", func() {
			c.SeekTo(20)
			c.SeekTo(40)
			now.Advance(time.Second)
			c.Tick(now.t)
			So(c.CurrentTime(), ShouldEqual, 40)
		})
	})
}

func TestSimulatedUnknownDuration(t *testing.T) {
	Convey("Simulated clock with unknown duration", t, func() {
		now := &fakeNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := NewSimulated(math.NaN(), 0, now.Now)

		Convey("Should only clamp at zero", func() {
			c.SeekTo(-1)
			So(c.CurrentTime(), ShouldEqual, 0)
			c.SeekTo(1e6)
			So(c.CurrentTime(), ShouldEqual, 1e6)
		})

		Convey("Should never end", func() {
			c.Play()
			now.Advance(time.Hour)
			c.Tick(now.t)
			So(c.Ended(), ShouldBeFalse)
			So(c.State().Percent(), ShouldEqual, 0)
		})

		Convey("SetDuration should notify and clamp", func() {
			log := &eventLog{}
			c.Subscribe(log)
			c.SeekTo(50)
			c.SetDuration(40)
			So(c.CurrentTime(), ShouldEqual, 40)
			So(log.events, ShouldContain, domain.EventDurationChange)
		})
	})
}
