package playback

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/ui/widget"
)

func (c *Controller) handleChange(ch media.Change) {
	switch ch.Property {
	case media.PropItemDuration:
		c.durationChanged(ch.Duration)
	case media.PropItemStatus:
		c.statusChanged(ch.Status)
	case media.PropRate:
		c.rateChanged(ch.Rate)
	}
}

func (c *Controller) durationChanged(d media.Time) {
	valid := d.IsNumeric() && d.Seconds() != 0
	secs := 0.0
	if valid {
		secs = d.Seconds()
	}

	t := c.view.Transport
	t.Slider.SetMax(secs)
	if valid {
		t.Slider.SetValue(c.backend.CurrentTime().Seconds())
	} else {
		t.Slider.SetValue(0)
	}
	t.SetEnabled(valid)
	t.Remaining.Text = FormatTime(secs)
}

func (c *Controller) statusChanged(s media.ItemStatus) {
	if s != media.StatusFailed {
		return
	}
	var cause error
	if it := c.backend.CurrentItem(); it != nil {
		cause = it.Err()
	}
	if cause == nil {
		c.showError(ErrItemFailed)
		return
	}
	c.showError(fmt.Errorf("%w: %w", ErrItemFailed, cause))
}

func (c *Controller) rateChanged(rate float64) {
	icon := widget.IconPlay
	if rate == 1.0 {
		icon = widget.IconStop
	}
	c.view.Transport.Play.Icon = icon
}

func (c *Controller) handleTick(now media.Time) {
	t := c.view.Transport
	t.Slider.SetValue(now.Seconds())
	t.Elapsed.Text = FormatTime(now.Seconds())
	t.Remaining.Text = FormatTime(c.duration() - now.Seconds())
}

// showError presents err in a modal alert and logs it.
func (c *Controller) showError(err error) {
	var msg string
	var keyErr *KeyError
	switch {
	case errors.As(err, &keyErr):
		cause := keyErr.Err
		if cause == nil {
			cause = errors.New("no diagnostic available")
		}
		msg = errmsg.FormatWith(errmsg.OpAssetKeyLoad, string(keyErr.Key), cause)
	case errors.Is(err, ErrItemFailed):
		msg = errmsg.Format(errmsg.OpPlaybackItem, err)
	default:
		msg = errmsg.Format(errmsg.OpSourceOpen, err)
	}

	c.log.WithFields(logrus.Fields{"source": c.source}).WithError(err).Error(msg)
	if c.view.Alerts != nil {
		c.view.Alerts.ShowAlert(errmsg.AlertTitle, msg)
	}
}
