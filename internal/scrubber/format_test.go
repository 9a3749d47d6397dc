package scrubber

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatTime(t *testing.T) {
	Convey("FormatTime", t, func() {
		cases := []struct {
			seconds, guide float64
			want           string
		}{
			{0, 0, "0:00"},
			{5, 0, "0:05"},
			{30, 120, "0:30"},
			{65, 65, "1:05"},
			{65, 600, "01:05"},
			{599.9, 599.9, "9:59"},
			{3600, 0, "1:00:00"},
			{61, 3600, "0:01:01"},
			{3725, 7200, "1:02:05"},
			{-4, 100, "0:00"},
		}
		for _, tc := range cases {
			So(FormatTime(tc.seconds, tc.guide), ShouldEqual, tc.want)
		}

		Convey("Should render unknown values as placeholders", func() {
			So(FormatTime(math.NaN(), 100), ShouldEqual, "-:-")
			So(FormatTime(math.Inf(1), 100), ShouldEqual, "-:-")
		})
	})
}

func TestValueText(t *testing.T) {
	Convey("ValueText", t, func() {
		So(ValueText(30, 120), ShouldEqual, "0:30 of 2:00")
		So(ValueText(61, 3600), ShouldEqual, "0:01:01 of 1:00:00")
		So(ValueText(30, math.NaN()), ShouldEqual, "")
		So(ValueText(30, 0), ShouldEqual, "")
	})
}

func TestValueNow(t *testing.T) {
	Convey("ValueNow", t, func() {
		So(ValueNow(0.25), ShouldEqual, "25.00")
		So(ValueNow(0), ShouldEqual, "0.00")
		So(ValueNow(1), ShouldEqual, "100.00")
		So(ValueNow(0.12346), ShouldEqual, "12.35")
	})
}
