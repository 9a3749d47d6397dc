package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/scrub/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTrack(t *testing.T) {
	Convey("Track", t, func() {
		rect := domain.Rect{X: 2, Y: 3, Width: 11, Height: 1}
		track := Track{}

		Convey("The first and last cells should map to the ends", func() {
			So(track.RatioAlongTrack(domain.PointerEvent{X: 2, Y: 3}, rect), ShouldEqual, 0)
			So(track.RatioAlongTrack(domain.PointerEvent{X: 12, Y: 3}, rect), ShouldEqual, 1)
		})

		Convey("Cells in between should map linearly", func() {
			So(track.RatioAlongTrack(domain.PointerEvent{X: 7, Y: 3}, rect), ShouldEqual, 0.5)
		})

		Convey("Positions outside the bar should clamp", func() {
			So(track.RatioAlongTrack(domain.PointerEvent{X: -5}, rect), ShouldEqual, 0)
			So(track.RatioAlongTrack(domain.PointerEvent{X: 80}, rect), ShouldEqual, 1)
		})

		Convey("A one cell bar should map to 0", func() {
			So(track.RatioAlongTrack(domain.PointerEvent{X: 2}, domain.Rect{X: 2, Width: 1, Height: 1}), ShouldEqual, 0)
		})

		Convey("Hit should accept the rows next to the bar", func() {
			So(Hit(rect, 5, 3), ShouldBeTrue)
			So(Hit(rect, 5, 2), ShouldBeTrue)
			So(Hit(rect, 5, 4), ShouldBeTrue)
			So(Hit(rect, 5, 5), ShouldBeFalse)
			So(Hit(rect, 1, 3), ShouldBeFalse)
			So(Hit(domain.Rect{}, 0, 0), ShouldBeFalse)
		})
	})
}

func TestSeekBar(t *testing.T) {
	Convey("SeekBar", t, func() {
		bar := NewSeekBar()

		Convey("Should start empty", func() {
			So(bar.View(), ShouldEqual, "")
			So(bar.ValueNow(), ShouldEqual, "0.00")
		})

		Convey("Should record fill and accessible values", func() {
			rect := domain.Rect{X: 2, Y: 3, Width: 20, Height: 1}
			bar.RenderFill(rect, 0.25)
			bar.SetAccessibleValue("25.00", "0:30 of 2:00")
			So(bar.Percent(), ShouldEqual, 0.25)
			So(bar.ValueText(), ShouldEqual, "0:30 of 2:00")
			So(lipgloss.Width(bar.View()), ShouldEqual, 22)
			So(strings.Count(bar.View(), "●"), ShouldEqual, 1)
		})

		Convey("FilledCells should round and clamp", func() {
			So(FilledCells(0.25, 20), ShouldEqual, 5)
			So(FilledCells(1.5, 20), ShouldEqual, 20)
			So(FilledCells(math.NaN(), 20), ShouldEqual, 0)
			So(FilledCells(0.5, 0), ShouldEqual, 0)
		})

		Convey("HeadCell should agree with the track mapping", func() {
			rect := domain.Rect{Width: 11, Height: 1}
			for cell := 0; cell < 11; cell++ {
				ratio := Track{}.RatioAlongTrack(domain.PointerEvent{X: float64(cell)}, rect)
				So(HeadCell(ratio, 11), ShouldEqual, cell)
			}
		})
	})
}

func TestTimeTooltip(t *testing.T) {
	Convey("TimeTooltip", t, func() {
		tip := NewTimeTooltip()
		rect := domain.Rect{X: 2, Y: 3, Width: 40, Height: 1}

		Convey("Should render nothing before the first update", func() {
			So(tip.View(), ShouldEqual, "")
		})

		Convey("Should center over the playhead", func() {
			tip.RenderTooltip(rect, 0.5, "1:00")
			// head cell 20, label " 1:00 " is 6 wide
			So(tip.Offset(), ShouldEqual, 2+20-3)
			So(tip.Text(), ShouldEqual, "1:00")
		})

		Convey("Should stay inside the bar at both ends", func() {
			tip.RenderTooltip(rect, 0, "0:00")
			So(tip.Offset(), ShouldEqual, 2)
			tip.RenderTooltip(rect, 1, "2:00")
			So(tip.Offset(), ShouldEqual, 2+40-6)
		})
	})
}
