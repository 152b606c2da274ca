// Package widget holds the state of the transport controls. The playback
// controller mutates it on the UI thread and the screen renders it.
package widget

// Icon is the image shown on a button.
type Icon int

const (
	IconPlay Icon = iota
	IconStop
	IconRewind
	IconFastForward
)

// String returns the icon asset name.
func (i Icon) String() string {
	switch i {
	case IconPlay:
		return "play"
	case IconStop:
		return "stop"
	case IconRewind:
		return "rewind"
	case IconFastForward:
		return "fastforward"
	default:
		return "unknown"
	}
}

// Glyph returns the terminal symbol for the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconPlay:
		return "▶"
	case IconStop:
		return "■"
	case IconRewind:
		return "◀◀"
	case IconFastForward:
		return "▶▶"
	default:
		return "?"
	}
}

// Slider is a horizontal value picker.
type Slider struct {
	Value   float64
	Min     float64
	Max     float64
	Enabled bool
}

// SetValue sets Value clamped to [Min, Max].
func (s *Slider) SetValue(v float64) {
	s.Value = min(max(v, s.Min), s.Max)
}

// SetMax sets Max and re-clamps Value.
func (s *Slider) SetMax(m float64) {
	s.Max = max(m, s.Min)
	s.SetValue(s.Value)
}

// Fraction returns the position of Value within the range, in [0, 1].
func (s Slider) Fraction() float64 {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return (s.Value - s.Min) / span
}

// Label is a line of text.
type Label struct {
	Text    string
	Enabled bool
}

// Button is a tappable icon.
type Button struct {
	Icon    Icon
	Enabled bool
}

// Transport groups the playback controls of the screen.
type Transport struct {
	Slider      Slider
	Elapsed     Label
	Remaining   Label
	Rewind      Button
	Play        Button
	FastForward Button
}

// NewTransport returns controls in their initial, disabled state.
func NewTransport() *Transport {
	return &Transport{
		Elapsed:     Label{Text: "0:00"},
		Remaining:   Label{Text: "0:00"},
		Rewind:      Button{Icon: IconRewind},
		Play:        Button{Icon: IconPlay},
		FastForward: Button{Icon: IconFastForward},
	}
}

// SetEnabled enables or disables every control.
func (t *Transport) SetEnabled(enabled bool) {
	t.Slider.Enabled = enabled
	t.Elapsed.Enabled = enabled
	t.Remaining.Enabled = enabled
	t.Rewind.Enabled = enabled
	t.Play.Enabled = enabled
	t.FastForward.Enabled = enabled
}

// Alerter presents a modal message the user dismisses with one action.
type Alerter interface {
	ShowAlert(title, message string)
}
