package media

import (
	"math"
	"time"
)

// Time is a media timestamp in seconds.
//
// A Time is either numeric (a finite number of seconds) or non-numeric.
// Non-numeric times model durations the backend does not know yet and
// indefinite durations such as live streams.
type Time struct {
	secs    float64
	numeric bool
}

// Zero is the numeric time 0. It doubles as the exact seek tolerance.
var Zero = Time{numeric: true}

// Invalid is a non-numeric time.
var Invalid = Time{}

// Seconds returns a numeric time. NaN and infinities yield Invalid.
func Seconds(secs float64) Time {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return Invalid
	}
	return Time{secs: secs, numeric: true}
}

// FromDuration converts a time.Duration into a numeric Time.
func FromDuration(d time.Duration) Time {
	return Time{secs: d.Seconds(), numeric: true}
}

// IsNumeric reports whether t holds a finite number of seconds.
func (t Time) IsNumeric() bool {
	return t.numeric
}

// Seconds returns the number of seconds, or 0 for non-numeric times.
func (t Time) Seconds() float64 {
	if !t.numeric {
		return 0
	}
	return t.secs
}

// Duration converts t to a time.Duration (0 for non-numeric times).
func (t Time) Duration() time.Duration {
	return time.Duration(t.Seconds() * float64(time.Second))
}

// Sub returns t - u. The result is non-numeric if either operand is.
func (t Time) Sub(u Time) Time {
	if !t.numeric || !u.numeric {
		return Invalid
	}
	return Time{secs: t.secs - u.secs, numeric: true}
}
