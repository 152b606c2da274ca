// Package mpris publishes the player on the session bus as an MPRIS
// media player, so desktop media keys and widgets can drive it.
package mpris

import (
	"context"
	"net/url"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/reel/internal/media"
)

// Player is the playback surface exposed over MPRIS.
type Player interface {
	TogglePlayPause()
	Play()
	Pause()
	Seek(secs float64)
	SetRate(rate float64)

	Playing() bool
	Rate() float64
	MinRate() float64
	MaxRate() float64
	Position() float64
	Duration() float64
	Title() string
	Asset() media.Asset
}

// Runner runs fn on the UI thread and waits for it to return.
type Runner interface {
	Do(ctx context.Context, fn func()) error
}

// callTimeout bounds how long a D-Bus call waits for the UI thread.
const callTimeout = 2 * time.Second

// Status is the MPRIS playback status.
type Status string

const (
	StatusPlaying Status = "Playing"
	StatusPaused  Status = "Paused"
	StatusStopped Status = "Stopped"
)

// Snapshot is the player state read in a single UI-thread hop.
type Snapshot struct {
	Status   Status
	Rate     float64
	MinRate  float64
	MaxRate  float64
	Position time.Duration
	Length   time.Duration
	Title    string
	URL      string
	ArtPath  string
}

// Control runs MPRIS calls against a Player on the UI thread.
type Control struct {
	player Player
	runner Runner
}

// NewControl creates a Control.
func NewControl(p Player, r Runner) *Control {
	return &Control{player: p, runner: r}
}

func (c *Control) do(fn func(p Player)) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return c.runner.Do(ctx, func() { fn(c.player) })
}

func (c *Control) PlayPause() error {
	return c.do(Player.TogglePlayPause)
}

func (c *Control) Play() error {
	return c.do(Player.Play)
}

func (c *Control) Pause() error {
	return c.do(Player.Pause)
}

// Stop pauses and rewinds to the start.
func (c *Control) Stop() error {
	return c.do(func(p Player) {
		p.Pause()
		p.Seek(0)
	})
}

// Seek moves the playhead by offset, staying within the item.
func (c *Control) Seek(offset time.Duration) error {
	return c.do(func(p Player) {
		target := p.Position() + offset.Seconds()
		p.Seek(lo.Clamp(target, 0, max(p.Duration(), 0)))
	})
}

// SetPosition moves the playhead to pos. Positions outside the item are
// ignored, as MPRIS requires.
func (c *Control) SetPosition(pos time.Duration) error {
	return c.do(func(p Player) {
		secs := pos.Seconds()
		if secs < 0 || secs > p.Duration() {
			return
		}
		p.Seek(secs)
	})
}

// SetRate changes the rate, clamped to the player bounds.
func (c *Control) SetRate(rate float64) error {
	return c.do(func(p Player) {
		p.SetRate(lo.Clamp(rate, p.MinRate(), p.MaxRate()))
	})
}

// Snapshot reads the player state.
func (c *Control) Snapshot() (Snapshot, error) {
	var s Snapshot
	err := c.do(func(p Player) {
		s = Snapshot{
			Status:   StatusStopped,
			Rate:     p.Rate(),
			MinRate:  p.MinRate(),
			MaxRate:  p.MaxRate(),
			Position: secondsToDuration(p.Position()),
			Length:   secondsToDuration(p.Duration()),
			Title:    p.Title(),
		}
		a := p.Asset()
		if a == nil {
			return
		}
		s.Status = lo.Ternary(p.Playing(), StatusPlaying, StatusPaused)
		s.URL = locatorURL(a.Locator())
		if a.Locator().Scheme == "" || a.Locator().Scheme == "file" {
			s.ArtPath = FindArt(a.Locator().Path)
		}
	})
	return s, err
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}

// locatorURL renders bare paths as file URLs.
func locatorURL(u *url.URL) string {
	if u.Scheme != "" {
		return u.String()
	}
	f := url.URL{Scheme: "file", Path: u.Path}
	return f.String()
}
