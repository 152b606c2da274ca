package playback

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as M:SS. Minutes are truncated toward zero;
// negative values keep their sign in front of the magnitude.
func FormatTime(secs float64) string {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return "0:00"
	}
	sign := ""
	whole := int64(math.Trunc(secs))
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	return fmt.Sprintf("%s%d:%02d", sign, whole/60, whole%60)
}
