package playback

import (
	"github.com/llehouerou/reel/internal/media"
)

const (
	rateStep = 2.0
	minRate  = -2.0
	maxRate  = 2.0
)

// TogglePlayPause pauses when playing at normal speed and plays otherwise.
// Resuming from the very end of the item restarts it from the beginning.
func (c *Controller) TogglePlayPause() {
	if c.backend.Rate() != 1.0 {
		c.Play()
		return
	}
	c.backend.Pause()
}

// Play plays at normal speed, from the beginning when at the very end.
func (c *Controller) Play() {
	if c.backend.CurrentTime().Seconds() == c.duration() {
		c.seek(media.Zero)
	}
	c.backend.Play()
}

// Pause stops the playhead at any rate.
func (c *Controller) Pause() {
	c.backend.Pause()
}

// SetRate sets the playback rate, clamped to [-2, 2].
func (c *Controller) SetRate(rate float64) {
	c.backend.SetRate(min(max(rate, minRate), maxRate))
}

// Rewind lowers the playback rate by 2, down to -2.
func (c *Controller) Rewind() {
	c.backend.SetRate(max(c.backend.Rate()-rateStep, minRate))
}

// FastForward raises the playback rate by 2, up to 2.
func (c *Controller) FastForward() {
	c.backend.SetRate(min(c.backend.Rate()+rateStep, maxRate))
}

// Seek moves the playhead to secs exactly.
func (c *Controller) Seek(secs float64) {
	c.seek(media.Seconds(secs))
}

// SeekBy moves the slider by delta seconds within its range and seeks there.
func (c *Controller) SeekBy(delta float64) {
	slider := &c.view.Transport.Slider
	if !slider.Enabled {
		return
	}
	slider.SetValue(slider.Value + delta)
	c.Seek(slider.Value)
}

// SeekFraction seeks to fraction (0..1) of the slider range.
func (c *Controller) SeekFraction(fraction float64) {
	slider := &c.view.Transport.Slider
	if !slider.Enabled {
		return
	}
	fraction = min(max(fraction, 0), 1)
	slider.SetValue(slider.Min + fraction*(slider.Max-slider.Min))
	c.Seek(slider.Value)
}

func (c *Controller) seek(to media.Time) {
	c.backend.Seek(to, media.Zero, media.Zero)
}

// duration returns the current item duration in seconds, 0 without an item.
func (c *Controller) duration() float64 {
	if it := c.backend.CurrentItem(); it != nil {
		return it.Duration().Seconds()
	}
	return 0
}

// MinRate and MaxRate bound the playback rate.
func (c *Controller) MinRate() float64 { return minRate }

func (c *Controller) MaxRate() float64 { return maxRate }

// Rate returns the backend playback rate.
func (c *Controller) Rate() float64 { return c.backend.Rate() }

// Playing reports whether the backend is moving the playhead.
func (c *Controller) Playing() bool { return c.backend.Rate() != 0 }

// Position returns the current time in seconds.
func (c *Controller) Position() float64 { return c.backend.CurrentTime().Seconds() }

// Duration returns the current item duration in seconds.
func (c *Controller) Duration() float64 { return c.duration() }

// Title returns a name for the current item when the backend has one.
func (c *Controller) Title() string {
	if d, ok := c.backend.(media.Describer); ok {
		if title := d.Title(); title != "" {
			return title
		}
	}
	if c.asset != nil {
		return c.asset.Locator().String()
	}
	return ""
}
