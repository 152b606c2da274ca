//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/player"
)

// Adapter serves a Control on the session bus.
type Adapter struct {
	server *server.Server
}

// New starts serving ctl as org.mpris.MediaPlayer2.reel.
func New(ctl *Control, log logrus.FieldLogger) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("reel", &rootAdapter{}, &playerAdapter{ctl: ctl}),
	}
	go func() {
		if err := a.server.Listen(); err != nil {
			log.WithError(err).Warn("mpris server stopped")
		}
	}()
	return a, nil
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Reel", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return player.SupportedMimeTypes(), nil
}

type playerAdapter struct {
	ctl *Control
}

// Next and Previous have nothing to move to: there is a single item.
func (p *playerAdapter) Next() error { return nil }

func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error { return p.ctl.Pause() }

func (p *playerAdapter) PlayPause() error { return p.ctl.PlayPause() }

func (p *playerAdapter) Stop() error { return p.ctl.Stop() }

func (p *playerAdapter) Play() error { return p.ctl.Play() }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.ctl.Seek(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.ctl.SetPosition(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s, err := p.ctl.Snapshot()
	if err != nil {
		return types.PlaybackStatusStopped, err
	}
	switch s.Status {
	case StatusPlaying:
		return types.PlaybackStatusPlaying, nil
	case StatusPaused:
		return types.PlaybackStatusPaused, nil
	case StatusStopped:
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	s, err := p.ctl.Snapshot()
	return s.Rate, err
}

func (p *playerAdapter) SetRate(rate float64) error { return p.ctl.SetRate(rate) }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s, err := p.ctl.Snapshot()
	if err != nil || s.Status == StatusStopped {
		return types.Metadata{}, err
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackID(s.URL)),
		Length:  types.Microseconds(s.Length.Microseconds()),
		Title:   s.Title,
	}
	if s.ArtPath != "" {
		meta.ArtUrl = "file://" + s.ArtPath
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	s, err := p.ctl.Snapshot()
	return s.Position.Microseconds(), err
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	s, err := p.ctl.Snapshot()
	return s.MinRate, err
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	s, err := p.ctl.Snapshot()
	return s.MaxRate, err
}

func (p *playerAdapter) CanGoNext() (bool, error) { return false, nil }

func (p *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	s, err := p.ctl.Snapshot()
	return s.Status != StatusStopped, err
}

func (p *playerAdapter) CanPause() (bool, error) { return p.CanPlay() }

func (p *playerAdapter) CanSeek() (bool, error) {
	s, err := p.ctl.Snapshot()
	return s.Length > 0, err
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func trackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
