package scrubber

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mmcdole/scrub/internal/domain"
)

// FormatTime renders seconds as m:ss or h:mm:ss. The guide (usually the
// duration) decides how many fields are shown so that a time and the total
// it is compared with line up. NaN and infinite values render as "-:-".
func FormatTime(seconds, guide float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "-:-"
	}
	if seconds < 0 {
		seconds = 0
	}

	total := int64(math.Floor(seconds))
	s := total % 60
	m := (total / 60) % 60
	h := total / 3600

	var gm, gh int64
	if !math.IsNaN(guide) && !math.IsInf(guide, 0) && guide > 0 {
		g := int64(math.Floor(guide))
		gm = (g / 60) % 60
		gh = g / 3600
	}

	showHours := h > 0 || gh > 0

	out := ""
	if showHours {
		out = strconv.FormatInt(h, 10) + ":"
	}
	if (showHours || gm >= 10) && m < 10 {
		out += "0"
	}
	out += strconv.FormatInt(m, 10) + ":"
	out += fmt.Sprintf("%02d", s)
	return out
}

// ValueText is the human readable "elapsed of total" string.
// It is empty when the duration is not known.
func ValueText(current, duration float64) string {
	if !domain.DurationKnown(duration) {
		return ""
	}
	return FormatTime(current, duration) + " of " + FormatTime(duration, duration)
}

// ValueNow renders a [0,1] percent as 0–100 with two decimals.
func ValueNow(percent float64) string {
	return strconv.FormatFloat(percent*100, 'f', 2, 64)
}
