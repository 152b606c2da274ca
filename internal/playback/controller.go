// Package playback synchronizes the transport controls with a media backend.
//
// The Controller is confined to the UI thread: every method must be called
// from it, and every backend callback it registers is delivered through the
// UI queue passed to New.
package playback

import (
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/ui/surface"
	"github.com/llehouerou/reel/internal/ui/widget"
)

// TimeUpdateInterval is the period of the slider and label refresh.
const TimeUpdateInterval = time.Second

// View is the set of UI collaborators the controller drives.
type View struct {
	Surface   *surface.Surface
	Transport *widget.Transport
	Alerts    widget.Alerter
}

// Controller bridges UI intents and the backend's asynchronous state.
type Controller struct {
	backend media.Backend
	queue   media.Queue
	view    View
	source  string
	log     logrus.FieldLogger

	asset   media.Asset
	item    media.Item
	timeObs *media.TimeObserver
	obs     []*media.Observation

	visible bool
	// generation changes on every disappearance so callbacks scheduled
	// for an earlier appearance can tell they are late.
	generation uint64
}

// New creates a controller for backend that plays source once shown.
func New(backend media.Backend, queue media.Queue, view View, source string) *Controller {
	return &Controller{
		backend: backend,
		queue:   queue,
		view:    view,
		source:  source,
		log:     logrus.StandardLogger(),
	}
}

// SetLogger replaces the logger (the logrus standard logger by default).
func (c *Controller) SetLogger(l logrus.FieldLogger) {
	c.log = l
}

// Visible reports whether the controller is between OnAppear and OnDisappear.
func (c *Controller) Visible() bool { return c.visible }

// OnAppear subscribes to the backend, binds the surface and starts loading
// the configured source. With a malformed source it reports the error and
// stops there, leaving the property observations in place.
func (c *Controller) OnAppear() {
	if c.visible {
		return
	}
	c.visible = true

	for _, p := range media.Properties {
		c.obs = append(c.obs, c.backend.Observe(p, c.queue, c.handleChange))
	}

	if c.view.Surface != nil {
		c.view.Surface.SetPlayer(c.backend)
	}

	locator, err := ParseLocator(c.source)
	if err != nil {
		// Nothing will play: skip the time observer.
		c.showError(err)
		return
	}
	c.SetAsset(c.backend.NewAsset(locator))

	c.timeObs = c.backend.AddPeriodicTimeObserver(TimeUpdateInterval, c.queue, c.handleTick)
}

// OnDisappear tears down everything OnAppear set up. It is idempotent.
func (c *Controller) OnDisappear() {
	if c.timeObs != nil {
		c.backend.RemoveTimeObserver(c.timeObs)
		c.timeObs = nil
	}

	if c.visible {
		c.backend.Pause()
	}

	for _, o := range c.obs {
		c.backend.Unobserve(o)
	}
	c.obs = nil

	c.visible = false
	c.generation++
}

// Asset returns the current asset, or nil.
func (c *Controller) Asset() media.Asset { return c.asset }

// Item returns the item built from the current asset, or nil.
func (c *Controller) Item() media.Item { return c.item }

// SetAsset makes a the current asset and starts resolving its keys.
// Completions for any previous asset are discarded from now on.
func (c *Controller) SetAsset(a media.Asset) {
	c.asset = a
	if a == nil {
		return
	}
	c.loadAsset(a)
}

func (c *Controller) loadAsset(a media.Asset) {
	gen := c.generation
	c.log.WithFields(logrus.Fields{
		"asset":   a.ID(),
		"locator": a.Locator().String(),
	}).Debug("loading asset keys")

	a.LoadValuesAsync(media.RequiredKeys, func() {
		c.queue.Dispatch(func() {
			c.finishLoad(a, gen)
		})
	})
}

func (c *Controller) finishLoad(a media.Asset, gen uint64) {
	entry := c.log.WithField("asset", a.ID())

	if !c.visible || gen != c.generation {
		entry.Debug("discarding key resolution for hidden controller")
		return
	}
	if a != c.asset {
		entry.Debug("discarding key resolution for superseded asset")
		return
	}

	for _, key := range media.RequiredKeys {
		status, err := a.StatusOfValue(key)
		if status == media.KeyFailed {
			c.showError(&KeyError{Key: key, Err: err})
			return
		}
	}

	item := c.backend.NewItem(a)
	c.item = item
	c.backend.ReplaceCurrentItem(item)
	c.backend.Play()
	entry.Info("asset attached, playback started")
}

// ParseLocator validates a configured source string.
func ParseLocator(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrMalformedLocator
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &locatorError{raw: raw, err: err}
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return nil, &locatorError{raw: raw}
	}
	if u.Scheme == "" && u.Path == "" {
		return nil, &locatorError{raw: raw}
	}
	return u, nil
}

type locatorError struct {
	raw string
	err error
}

func (e *locatorError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%v %q", ErrMalformedLocator, e.raw)
	}
	return fmt.Sprintf("%v: %v", ErrMalformedLocator, e.err)
}

func (e *locatorError) Is(target error) bool { return target == ErrMalformedLocator }

func (e *locatorError) Unwrap() error { return e.err }
