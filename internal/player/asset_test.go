package player

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/media"
)

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	p.initOutput = func() error { return nil }
	p.play = func(beep.Streamer) {}
	p.clear = func() {}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// resolve loads the required keys of a and waits for completion.
func resolve(t *testing.T, a media.Asset) {
	t.Helper()
	done := make(chan struct{})
	a.LoadValuesAsync(media.RequiredKeys, func() { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("asset keys did not settle")
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestAsset_LocalFile(t *testing.T) {
	p := newTestPlayer(t)
	path := writeWAV(t, t.TempDir(), "clip.wav", 44100, 4410)

	a := p.NewAsset(&url.URL{Path: path})
	resolve(t, a)

	assert.Equal(t, media.ReadinessReady, media.ReadinessOf(a, media.RequiredKeys))
	assert.Equal(t, path, a.(*Asset).Path())
}

func TestAsset_UnsupportedFile(t *testing.T) {
	p := newTestPlayer(t)
	path := filepath.Join(t.TempDir(), "clip.mkv")
	require.NoError(t, os.WriteFile(path, []byte("matroska"), 0o600))

	a := p.NewAsset(&url.URL{Path: path})
	resolve(t, a)

	st, err := a.StatusOfValue(media.KeyPlayable)
	assert.Equal(t, media.KeyFailed, st)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, media.ReadinessFailed, media.ReadinessOf(a, media.RequiredKeys))
}

func TestAsset_Download(t *testing.T) {
	clip := writeWAV(t, t.TempDir(), "clip.wav", 44100, 4410)
	data, err := os.ReadFile(clip)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/media/clip.wav" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	p := newTestPlayer(t)

	t.Run("ok", func(t *testing.T) {
		a := p.NewAsset(mustParse(t, srv.URL+"/media/clip.wav"))
		resolve(t, a)

		assert.Equal(t, media.ReadinessReady, media.ReadinessOf(a, media.RequiredKeys))
		local := a.(*Asset).Path()
		assert.True(t, strings.HasPrefix(local, p.tmpDir))
		assert.Equal(t, ".wav", filepath.Ext(local))
	})

	t.Run("not found", func(t *testing.T) {
		a := p.NewAsset(mustParse(t, srv.URL+"/media/missing.wav"))
		resolve(t, a)

		st, err := a.StatusOfValue(media.KeyPlayable)
		assert.Equal(t, media.KeyFailed, st)
		require.ErrorContains(t, err, "404")
		st, _ = a.StatusOfValue(media.KeyHasProtectedContent)
		assert.Equal(t, media.KeyFailed, st)
	})
}

func TestAsset_UnsupportedScheme(t *testing.T) {
	p := newTestPlayer(t)

	a := p.NewAsset(mustParse(t, "ftp://example.com/clip.wav"))
	resolve(t, a)

	_, err := a.StatusOfValue(media.KeyPlayable)
	require.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestAsset_DistinctIdentity(t *testing.T) {
	p := newTestPlayer(t)
	u := mustParse(t, "/tmp/clip.wav")

	a, b := p.NewAsset(u), p.NewAsset(u)
	assert.NotEqual(t, a.ID(), b.ID())
}
