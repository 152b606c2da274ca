package playback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/mainloop"
	"github.com/llehouerou/reel/internal/media"
	"github.com/llehouerou/reel/internal/ui/surface"
	"github.com/llehouerou/reel/internal/ui/widget"
)

const testSource = "https://example.com/clips/highlights.mp4"

type alert struct {
	title, message string
}

type recordingAlerter struct {
	alerts []alert
}

func (r *recordingAlerter) ShowAlert(title, message string) {
	r.alerts = append(r.alerts, alert{title: title, message: message})
}

type fixture struct {
	backend *media.Mock
	queue   *mainloop.Manual
	surface *surface.Surface
	ui      *widget.Transport
	alerts  *recordingAlerter
	ctrl    *Controller
}

func newFixture(source string) *fixture {
	f := &fixture{
		backend: media.NewMock(),
		queue:   &mainloop.Manual{},
		surface: surface.New(),
		ui:      widget.NewTransport(),
		alerts:  &recordingAlerter{},
	}
	f.ctrl = New(f.backend, f.queue, View{
		Surface:   f.surface,
		Transport: f.ui,
		Alerts:    f.alerts,
	}, source)
	return f
}

// appearAndLoad shows the controller and lets the first asset resolve.
func (f *fixture) appearAndLoad(t *testing.T) *media.MockAsset {
	t.Helper()
	f.ctrl.OnAppear()
	require.Len(t, f.backend.Assets(), 1)
	asset := f.backend.Assets()[0]
	asset.Complete()
	f.queue.Drain()
	return asset
}

func TestOnAppear_SubscribesAndBinds(t *testing.T) {
	f := newFixture(testSource)

	f.ctrl.OnAppear()

	assert.Equal(t, 3, f.backend.ObservationCount())
	assert.Equal(t, 1, f.backend.TimeObserverCount())
	assert.Same(t, f.backend, f.surface.Player())
	require.Len(t, f.backend.Assets(), 1)

	asset := f.backend.Assets()[0]
	assert.Equal(t, testSource, asset.Locator().String())
	assert.Equal(t, [][]media.Key{{media.KeyPlayable, media.KeyHasProtectedContent}}, asset.LoadCalls())
	assert.Same(t, asset, f.ctrl.Asset())

	// Initial values arrive synchronously: no item yet, so no valid duration.
	assert.False(t, f.ui.Play.Enabled)
	assert.False(t, f.ui.Slider.Enabled)
	assert.Equal(t, widget.IconPlay, f.ui.Play.Icon)
	assert.Empty(t, f.alerts.alerts)
}

func TestOnAppear_TwiceIsNoop(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()
	f.ctrl.OnAppear()

	assert.Equal(t, 3, f.backend.ObservationCount())
	assert.Equal(t, 1, f.backend.TimeObserverCount())
	assert.Len(t, f.backend.Assets(), 1)
}

func TestLoad_AttachesItemAndPlays(t *testing.T) {
	f := newFixture(testSource)
	asset := f.appearAndLoad(t)

	require.NotNil(t, f.ctrl.Item())
	assert.Same(t, asset, f.ctrl.Item().Asset())
	assert.Same(t, f.ctrl.Item(), f.backend.CurrentItem())
	assert.Equal(t, 1, f.backend.PlayCalls())
	assert.Equal(t, media.ReadinessReady, media.ReadinessOf(asset, media.RequiredKeys))

	assert.True(t, f.ui.Play.Enabled)
	assert.True(t, f.ui.Rewind.Enabled)
	assert.True(t, f.ui.FastForward.Enabled)
	assert.True(t, f.ui.Slider.Enabled)
	assert.True(t, f.ui.Elapsed.Enabled)
	assert.True(t, f.ui.Remaining.Enabled)
	assert.InDelta(t, 100.0, f.ui.Slider.Max, 0)
	assert.Equal(t, "1:40", f.ui.Remaining.Text)
	assert.Equal(t, widget.IconStop, f.ui.Play.Icon)
	assert.Empty(t, f.alerts.alerts)
}

func TestLoad_CompletionWaitsForUIQueue(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()
	f.backend.Assets()[0].Complete()

	assert.Nil(t, f.ctrl.Item(), "item attached before the UI queue ran")
	assert.Equal(t, 1, f.queue.Len())

	f.queue.Drain()
	assert.NotNil(t, f.ctrl.Item())
}

func TestLoad_KeyFailureShowsAlert(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()

	asset := f.backend.Assets()[0]
	asset.FailKey(media.KeyPlayable, errors.New("unsupported container"))
	asset.Complete()
	f.queue.Drain()

	assert.Nil(t, f.ctrl.Item())
	assert.Nil(t, f.backend.CurrentItem())
	assert.Zero(t, f.backend.PlayCalls())
	require.Len(t, f.alerts.alerts, 1)
	assert.Equal(t, "Error", f.alerts.alerts[0].title)
	assert.Equal(t, "Failed to load asset key 'playable': unsupported container", f.alerts.alerts[0].message)
}

func TestLoad_SecondKeyFailureReported(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()

	asset := f.backend.Assets()[0]
	asset.FailKey(media.KeyHasProtectedContent, errors.New("license server unreachable"))
	asset.Complete()
	f.queue.Drain()

	assert.Nil(t, f.ctrl.Item())
	require.Len(t, f.alerts.alerts, 1)
	assert.Contains(t, f.alerts.alerts[0].message, "hasProtectedContent")
	assert.Contains(t, f.alerts.alerts[0].message, "license server unreachable")
}

func TestLoad_StaleAssetDiscarded(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()
	first := f.backend.Assets()[0]

	second := f.backend.NewAsset(first.Locator()).(*media.MockAsset)
	f.ctrl.SetAsset(second)

	first.FailKey(media.KeyPlayable, errors.New("should never be shown"))
	first.Complete()
	f.queue.Drain()

	assert.Nil(t, f.ctrl.Item(), "stale asset produced an item")
	assert.Empty(t, f.alerts.alerts, "stale asset produced an alert")
	assert.Empty(t, f.backend.Items())

	second.Complete()
	f.queue.Drain()

	require.NotNil(t, f.ctrl.Item())
	assert.Same(t, second, f.ctrl.Item().Asset())
}

func TestLoad_AfterDisappearDiscarded(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()
	asset := f.backend.Assets()[0]

	f.ctrl.OnDisappear()
	asset.Complete()
	f.queue.Drain()

	assert.Nil(t, f.ctrl.Item())
	assert.Empty(t, f.backend.Items())
	assert.Zero(t, f.backend.PlayCalls())
	assert.Empty(t, f.alerts.alerts)
}

func TestOnAppear_MalformedLocator(t *testing.T) {
	for _, source := range []string{"", "http://", "https://[::1", "%zz"} {
		t.Run(source, func(t *testing.T) {
			f := newFixture(source)
			f.ctrl.OnAppear()

			assert.Empty(t, f.backend.Assets())
			assert.Nil(t, f.ctrl.Asset())
			require.Len(t, f.alerts.alerts, 1)
			assert.Contains(t, f.alerts.alerts[0].message, "Failed to open video source")

			// No time observer without a source; the screen still tears
			// down cleanly.
			assert.Equal(t, 3, f.backend.ObservationCount())
			assert.Zero(t, f.backend.TimeObserverCount())
			f.ctrl.OnDisappear()
			assert.Zero(t, f.backend.ObservationCount())
			assert.Zero(t, f.backend.TimeObserverCount())
		})
	}
}

func TestTogglePlayPause_RestartsAtEnd(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.ctrl.TogglePlayPause() // pause
	f.queue.Drain()
	require.InDelta(t, 0.0, f.backend.Rate(), 0)

	f.backend.SetCurrentTime(media.Seconds(100))
	f.ctrl.TogglePlayPause()
	f.queue.Drain()

	seeks := f.backend.SeekCalls()
	require.Len(t, seeks, 1)
	assert.InDelta(t, 0.0, seeks[0].To.Seconds(), 0)
	assert.Equal(t, media.Zero, seeks[0].ToleranceBefore)
	assert.Equal(t, media.Zero, seeks[0].ToleranceAfter)
	assert.InDelta(t, 0.0, f.backend.CurrentTime().Seconds(), 0)
	assert.InDelta(t, 1.0, f.backend.Rate(), 0)
	assert.Equal(t, widget.IconStop, f.ui.Play.Icon)
}

func TestTogglePlayPause_MidStream(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.backend.SetCurrentTime(media.Seconds(40))

	f.ctrl.TogglePlayPause()
	f.queue.Drain()
	assert.InDelta(t, 0.0, f.backend.Rate(), 0)
	assert.Equal(t, widget.IconPlay, f.ui.Play.Icon)

	f.ctrl.TogglePlayPause()
	f.queue.Drain()
	assert.InDelta(t, 1.0, f.backend.Rate(), 0)
	assert.Empty(t, f.backend.SeekCalls())
}

func TestTogglePlayPause_FromFastForwardPlaysNormally(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.ctrl.FastForward()
	require.InDelta(t, 2.0, f.backend.Rate(), 0)

	f.ctrl.TogglePlayPause()
	assert.InDelta(t, 1.0, f.backend.Rate(), 0)
}

func TestRewindFastForward_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		action func(*Controller)
		want   float64
	}{
		{"rewind from play", 1, (*Controller).Rewind, -1},
		{"rewind from pause", 0, (*Controller).Rewind, -2},
		{"rewind at floor", -2, (*Controller).Rewind, -2},
		{"fast forward from pause", 0, (*Controller).FastForward, 2},
		{"fast forward from play", 1, (*Controller).FastForward, 2},
		{"fast forward at cap", 2, (*Controller).FastForward, 2},
		{"fast forward from rewind", -2, (*Controller).FastForward, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testSource)
			f.backend.SetRate(tt.start)
			tt.action(f.ctrl)
			assert.InDelta(t, tt.want, f.backend.Rate(), 0)
		})
	}
}

func TestSeek_IsExact(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)

	f.ctrl.Seek(42.5)

	seeks := f.backend.SeekCalls()
	require.Len(t, seeks, 1)
	assert.InDelta(t, 42.5, seeks[0].To.Seconds(), 0)
	assert.Equal(t, media.Zero, seeks[0].ToleranceBefore)
	assert.Equal(t, media.Zero, seeks[0].ToleranceAfter)
}

func TestSeekBy_ClampsToSlider(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.ui.Slider.SetValue(97)

	f.ctrl.SeekBy(5)
	assert.InDelta(t, 100.0, f.backend.CurrentTime().Seconds(), 0)

	f.ctrl.SeekBy(-150)
	assert.InDelta(t, 0.0, f.backend.CurrentTime().Seconds(), 0)
}

func TestSeekFraction(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)

	f.ctrl.SeekFraction(0.3)
	assert.InDelta(t, 30.0, f.backend.CurrentTime().Seconds(), 1e-9)
}

func TestSeekBy_DisabledSliderIgnored(t *testing.T) {
	f := newFixture(testSource)
	f.ctrl.OnAppear()

	f.ctrl.SeekBy(5)
	f.ctrl.SeekFraction(0.5)
	assert.Empty(t, f.backend.SeekCalls())
}

func TestDurationChange_InvalidThenValid(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.backend.SetCurrentTime(media.Seconds(30))

	f.backend.SetItemDuration(media.Invalid)
	f.queue.Drain()

	assert.False(t, f.ui.Play.Enabled)
	assert.False(t, f.ui.Rewind.Enabled)
	assert.False(t, f.ui.FastForward.Enabled)
	assert.False(t, f.ui.Slider.Enabled)
	assert.False(t, f.ui.Elapsed.Enabled)
	assert.False(t, f.ui.Remaining.Enabled)
	assert.InDelta(t, 0.0, f.ui.Slider.Value, 0)
	assert.Equal(t, "0:00", f.ui.Remaining.Text)

	f.backend.SetItemDuration(media.Zero)
	f.queue.Drain()
	assert.False(t, f.ui.Play.Enabled, "zero duration must disable controls")

	f.backend.SetItemDuration(media.Seconds(125))
	f.queue.Drain()

	assert.True(t, f.ui.Play.Enabled)
	assert.True(t, f.ui.Slider.Enabled)
	assert.InDelta(t, 125.0, f.ui.Slider.Max, 0)
	assert.InDelta(t, 30.0, f.ui.Slider.Value, 0)
	assert.Equal(t, "2:05", f.ui.Remaining.Text)
}

func TestStatusFailed_ShowsAlert(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)

	f.backend.FailItem(errors.New("decoder error"))
	f.queue.Drain()

	require.Len(t, f.alerts.alerts, 1)
	assert.Equal(t, "Failed to play media item: player item failed: decoder error", f.alerts.alerts[0].message)
}

func TestPeriodicTick_UpdatesSliderAndLabels(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.backend.SetCurrentTime(media.Seconds(65))

	f.backend.Tick()
	assert.Equal(t, "0:00", f.ui.Elapsed.Text, "tick applied before the UI queue ran")
	f.queue.Drain()

	assert.InDelta(t, 65.0, f.ui.Slider.Value, 0)
	assert.Equal(t, "1:05", f.ui.Elapsed.Text)
	assert.Equal(t, "0:35", f.ui.Remaining.Text)
}

func TestOnDisappear_TeardownSymmetry(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	require.InDelta(t, 1.0, f.backend.Rate(), 0)

	f.ctrl.OnDisappear()

	assert.Zero(t, f.backend.ObservationCount())
	assert.Zero(t, f.backend.TimeObserverCount())
	assert.InDelta(t, 0.0, f.backend.Rate(), 0)
	assert.False(t, f.ctrl.Visible())
	assert.Equal(t, 1, f.backend.PauseCalls())

	// Changes queued before teardown never reach the widgets.
	icon := f.ui.Play.Icon
	f.queue.Drain()
	f.backend.SetRate(1)
	f.backend.Tick()
	f.queue.Drain()
	assert.Equal(t, icon, f.ui.Play.Icon)

	assert.NotPanics(t, f.ctrl.OnDisappear)
	assert.Zero(t, f.backend.ObservationCount())
	assert.Equal(t, 1, f.backend.PauseCalls())
}

func TestOnDisappear_ThenAppearAgain(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.ctrl.OnDisappear()

	f.ctrl.OnAppear()

	assert.Equal(t, 3, f.backend.ObservationCount())
	assert.Equal(t, 1, f.backend.TimeObserverCount())
	require.Len(t, f.backend.Assets(), 2)

	f.backend.Assets()[1].Complete()
	f.queue.Drain()
	require.NotNil(t, f.ctrl.Item())
	assert.Same(t, f.backend.Assets()[1], f.ctrl.Item().Asset())
}

func TestParseLocator(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://example.com/v.mp4", false},
		{"file:///home/me/clip.flac", false},
		{"/home/me/clip.mp3", false},
		{"", true},
		{"http://", true},
		{"https://[::1", true},
		{"%zz", true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := ParseLocator(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedLocator)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, u)
		})
	}
}

func TestQueries(t *testing.T) {
	f := newFixture(testSource)
	assert.Empty(t, f.ctrl.Title())

	f.appearAndLoad(t)
	f.backend.SetCurrentTime(media.Seconds(12))

	assert.True(t, f.ctrl.Playing())
	assert.InDelta(t, 1.0, f.ctrl.Rate(), 0)
	assert.InDelta(t, 12.0, f.ctrl.Position(), 0)
	assert.InDelta(t, 100.0, f.ctrl.Duration(), 0)
	assert.Equal(t, testSource, f.ctrl.Title())
}

func TestPlayPause_Explicit(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)
	f.ctrl.FastForward()

	f.ctrl.Pause()
	assert.InDelta(t, 0.0, f.backend.Rate(), 0, "pause works at any rate")

	f.ctrl.Play()
	assert.InDelta(t, 1.0, f.backend.Rate(), 0)
	assert.Empty(t, f.backend.SeekCalls())

	f.backend.SetCurrentTime(media.Seconds(100))
	f.ctrl.Play()
	require.Len(t, f.backend.SeekCalls(), 1)
	assert.InDelta(t, 0.0, f.backend.SeekCalls()[0].To.Seconds(), 0)
}

func TestSetRate_Clamped(t *testing.T) {
	f := newFixture(testSource)
	f.appearAndLoad(t)

	f.ctrl.SetRate(8)
	assert.InDelta(t, f.ctrl.MaxRate(), f.backend.Rate(), 0)

	f.ctrl.SetRate(-8)
	assert.InDelta(t, f.ctrl.MinRate(), f.backend.Rate(), 0)

	f.ctrl.SetRate(0.5)
	assert.InDelta(t, 0.5, f.backend.Rate(), 0)
}
