package mpris

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/mainloop"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/ui/surface"
	"github.com/llehouerou/reel/internal/ui/widget"
)

// inline runs functions immediately, standing in for the UI thread.
type inline struct{}

func (inline) Do(_ context.Context, fn func()) error {
	fn()
	return nil
}

type discardAlerts struct{}

func (discardAlerts) ShowAlert(string, string) {}

func newControl(t *testing.T, source string) (*Control, *media.Mock) {
	t.Helper()
	backend := media.NewMock()
	q := &mainloop.Manual{}
	ctrl := playback.New(backend, q, playback.View{
		Surface:   surface.New(),
		Transport: widget.NewTransport(),
		Alerts:    discardAlerts{},
	}, source)
	ctrl.OnAppear()
	for _, a := range backend.Assets() {
		a.Complete()
	}
	q.Drain()
	return NewControl(ctrl, inline{}), backend
}

func TestControl_Transport(t *testing.T) {
	c, backend := newControl(t, "/srv/media/clip.mp3")
	require.InDelta(t, 1.0, backend.Rate(), 0)

	require.NoError(t, c.Pause())
	assert.InDelta(t, 0.0, backend.Rate(), 0)

	require.NoError(t, c.PlayPause())
	assert.InDelta(t, 1.0, backend.Rate(), 0)

	require.NoError(t, c.SetRate(5))
	assert.InDelta(t, 2.0, backend.Rate(), 0)

	require.NoError(t, c.SetRate(-0.5))
	assert.InDelta(t, -0.5, backend.Rate(), 0)

	require.NoError(t, c.Play())
	assert.InDelta(t, 1.0, backend.Rate(), 0)

	require.NoError(t, c.Stop())
	assert.InDelta(t, 0.0, backend.Rate(), 0)
	assert.InDelta(t, 0.0, backend.CurrentTime().Seconds(), 0)
}

func TestControl_Seek(t *testing.T) {
	c, backend := newControl(t, "/srv/media/clip.mp3")
	backend.SetCurrentTime(media.Seconds(50))

	require.NoError(t, c.Seek(10*time.Second))
	assert.InDelta(t, 60.0, backend.CurrentTime().Seconds(), 0.001)

	require.NoError(t, c.Seek(-2*time.Minute))
	assert.InDelta(t, 0.0, backend.CurrentTime().Seconds(), 0.001)

	require.NoError(t, c.Seek(10*time.Minute))
	assert.InDelta(t, 100.0, backend.CurrentTime().Seconds(), 0.001)
}

func TestControl_SetPosition(t *testing.T) {
	c, backend := newControl(t, "/srv/media/clip.mp3")

	require.NoError(t, c.SetPosition(30*time.Second))
	assert.InDelta(t, 30.0, backend.CurrentTime().Seconds(), 0.001)

	calls := len(backend.SeekCalls())
	require.NoError(t, c.SetPosition(5*time.Minute))
	require.NoError(t, c.SetPosition(-time.Second))
	assert.Len(t, backend.SeekCalls(), calls, "out of range positions are ignored")
}

func TestControl_Snapshot(t *testing.T) {
	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.mp3")
	art := filepath.Join(dir, "poster.jpg")
	require.NoError(t, os.WriteFile(art, []byte{0xFF, 0xD8}, 0o600))

	c, backend := newControl(t, clip)
	backend.SetCurrentTime(media.Seconds(12.5))

	s, err := c.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, StatusPlaying, s.Status)
	assert.InDelta(t, 1.0, s.Rate, 0)
	assert.InDelta(t, -2.0, s.MinRate, 0)
	assert.InDelta(t, 2.0, s.MaxRate, 0)
	assert.Equal(t, 12500*time.Millisecond, s.Position)
	assert.Equal(t, 100*time.Second, s.Length)
	assert.Equal(t, "file://"+clip, s.URL)
	assert.Equal(t, art, s.ArtPath)

	require.NoError(t, c.Pause())
	s, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, StatusPaused, s.Status)
}

func TestControl_SnapshotRemote(t *testing.T) {
	c, _ := newControl(t, "https://example.com/clip.mp3")

	s, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/clip.mp3", s.URL)
	assert.Empty(t, s.ArtPath)
}

func TestControl_SnapshotWithoutAsset(t *testing.T) {
	ctrl := playback.New(media.NewMock(), &mainloop.Manual{}, playback.View{
		Surface:   surface.New(),
		Transport: widget.NewTransport(),
		Alerts:    discardAlerts{},
	}, "")
	c := NewControl(ctrl, inline{})

	s, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, StatusStopped, s.Status)
	assert.Empty(t, s.URL)
}

type closedRunner struct{}

func (closedRunner) Do(context.Context, func()) error { return mainloop.ErrClosed }

func TestControl_RunnerError(t *testing.T) {
	c := NewControl(nil, closedRunner{})

	require.ErrorIs(t, c.Play(), mainloop.ErrClosed)
	_, err := c.Snapshot()
	require.True(t, errors.Is(err, mainloop.ErrClosed))
}

func TestFindArt(t *testing.T) {
	dir := t.TempDir()
	clip := filepath.Join(dir, "match.ogg")

	assert.Empty(t, FindArt(clip))

	cover := filepath.Join(dir, "cover.jpg")
	require.NoError(t, os.WriteFile(cover, nil, 0o600))
	assert.Equal(t, cover, FindArt(clip))

	own := filepath.Join(dir, "match.jpg")
	require.NoError(t, os.WriteFile(own, nil, 0o600))
	assert.Equal(t, own, FindArt(clip), "a same-name image wins")
}
