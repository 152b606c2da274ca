package media

import (
	"math"
	"testing"
	"time"
)

func TestTime_Numeric(t *testing.T) {
	tests := []struct {
		name    string
		in      Time
		numeric bool
		secs    float64
	}{
		{"zero", Zero, true, 0},
		{"invalid", Invalid, false, 0},
		{"seconds", Seconds(12.5), true, 12.5},
		{"nan", Seconds(math.NaN()), false, 0},
		{"inf", Seconds(math.Inf(1)), false, 0},
		{"duration", FromDuration(90 * time.Second), true, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IsNumeric(); got != tt.numeric {
				t.Errorf("IsNumeric() = %v, want %v", got, tt.numeric)
			}
			if got := tt.in.Seconds(); got != tt.secs {
				t.Errorf("Seconds() = %v, want %v", got, tt.secs)
			}
		})
	}
}

func TestTime_Sub(t *testing.T) {
	if got := Seconds(100).Sub(Seconds(30)).Seconds(); got != 70 {
		t.Errorf("Sub() = %v, want 70", got)
	}
	if Seconds(100).Sub(Invalid).IsNumeric() {
		t.Error("Sub(Invalid) should be non-numeric")
	}
}
