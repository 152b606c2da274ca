// Package player implements media.Backend on the beep speaker.
package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/media"
)

// SpeakerRate is the output sample rate. Items at other rates are
// resampled.
const SpeakerRate = beep.SampleRate(44100)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SpeakerRate, SpeakerRate.N(time.Second/10))
	})
	return speakerErr
}

// Player is a media.Backend playing one item at a time.
type Player struct {
	ctx    context.Context
	cancel context.CancelFunc
	client *http.Client
	tmpDir string
	log    logrus.FieldLogger

	// Output hooks, replaced in tests.
	initOutput func() error
	play       func(beep.Streamer)
	clear      func()

	mu      sync.Mutex
	item    *Item
	rs      *rateStreamer
	timeObs map[*media.TimeObserver]struct{}

	observers media.Observers
}

// New creates a player. Remote sources are downloaded into a private temp
// directory removed by Close.
func New() (*Player, error) {
	dir, err := os.MkdirTemp("", "reel-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Player{
		ctx:        ctx,
		cancel:     cancel,
		client:     &http.Client{},
		tmpDir:     dir,
		log:        logrus.StandardLogger(),
		initOutput: initSpeaker,
		play:       func(s beep.Streamer) { speaker.Play(s) },
		clear:      speaker.Clear,
		timeObs:    make(map[*media.TimeObserver]struct{}),
	}, nil
}

// SetLogger replaces the logger.
func (p *Player) SetLogger(log logrus.FieldLogger) { p.log = log }

// Close stops playback, cancels pending downloads and removes temp files.
func (p *Player) Close() error {
	p.cancel()

	p.mu.Lock()
	for o := range p.timeObs {
		o.Cancel()
	}
	clear(p.timeObs)
	item, rs := p.item, p.rs
	p.item, p.rs = nil, nil
	p.mu.Unlock()

	if rs != nil {
		p.clear()
	}
	if item != nil {
		item.close()
	}
	return os.RemoveAll(p.tmpDir)
}

func (p *Player) NewAsset(locator *url.URL) media.Asset {
	return newAsset(p.ctx, locator, p.client, p.tmpDir)
}

func (p *Player) NewItem(a media.Asset) media.Item {
	it := &Item{asset: a}

	pa, ok := a.(*Asset)
	if !ok {
		it.fail(fmt.Errorf("asset %T not created by this player", a))
		return it
	}
	path := pa.Path()
	if path == "" {
		it.fail(errors.New("asset not resolved"))
		return it
	}

	stream, format, err := openStream(path)
	if err != nil {
		it.fail(err)
		return it
	}
	it.stream = stream
	it.format = format
	it.title = readTitle(path)
	it.status = media.StatusReadyToPlay
	return it
}

func (p *Player) ReplaceCurrentItem(mi media.Item) {
	it, _ := mi.(*Item)

	p.mu.Lock()
	old, oldRS := p.item, p.rs
	wasPlaying := oldRS != nil && oldRS.Rate() != 0
	p.item, p.rs = it, nil

	if it != nil && it.status == media.StatusReadyToPlay {
		if err := p.initOutput(); err != nil {
			it.fail(fmt.Errorf("audio output: %w", err))
		} else {
			ratio := float64(it.format.SampleRate) / float64(SpeakerRate)
			var rs *rateStreamer
			rs = newRateStreamer(it.stream, ratio, func() { p.boundary(rs) })
			p.rs = rs
		}
	}
	rs := p.rs
	p.mu.Unlock()

	if oldRS != nil {
		p.clear()
	}
	if old != nil && old != it {
		old.close()
	}
	if rs != nil {
		p.play(rs)
	}

	if it != nil {
		entry := p.log.WithFields(logrus.Fields{
			"asset":  it.asset.ID(),
			"status": it.status,
		})
		if it.err != nil {
			entry.WithError(it.err).Warn("player item failed")
		} else {
			entry.Debug("player item replaced")
		}
	}

	p.observers.Notify(media.CurrentChange(p, media.PropItemStatus))
	p.observers.Notify(media.CurrentChange(p, media.PropItemDuration))
	if wasPlaying {
		p.observers.Notify(media.RateChange(0))
	}
}

func (p *Player) CurrentItem() media.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.item == nil {
		return nil
	}
	return p.item
}

func (p *Player) Play() { p.SetRate(1) }

func (p *Player) Pause() { p.SetRate(0) }

func (p *Player) Rate() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rs == nil {
		return 0
	}
	return p.rs.Rate()
}

// SetRate changes the rate of the current item. Without one it does
// nothing.
func (p *Player) SetRate(rate float64) {
	p.mu.Lock()
	rs := p.rs
	p.mu.Unlock()
	if rs == nil {
		return
	}

	before := rs.Rate()
	rs.SetRate(rate)
	if after := rs.Rate(); after != before {
		p.observers.Notify(media.RateChange(after))
	}
}

func (p *Player) boundary(rs *rateStreamer) {
	p.mu.Lock()
	current := p.rs == rs
	p.mu.Unlock()
	if current {
		p.observers.Notify(media.RateChange(0))
	}
}

func (p *Player) CurrentTime() media.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rs == nil {
		return media.Zero
	}
	return media.FromDuration(p.item.format.SampleRate.D(p.rs.Position()))
}

// Seek moves to the sample nearest to. Seeking is sample-accurate, so the
// tolerances are not needed.
func (p *Player) Seek(to, _, _ media.Time) {
	if !to.IsNumeric() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rs == nil {
		return
	}
	if err := p.rs.Seek(p.item.format.SampleRate.N(to.Duration())); err != nil {
		p.log.WithError(err).Warn("seek failed")
	}
}

func (p *Player) AddPeriodicTimeObserver(interval time.Duration, q media.Queue, fn func(media.Time)) *media.TimeObserver {
	o := media.NewTimeObserver(interval, q, fn)

	p.mu.Lock()
	p.timeObs[o] = struct{}{}
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-o.Done():
				return
			case <-ticker.C:
				o.Deliver(p.CurrentTime())
			}
		}
	}()
	return o
}

func (p *Player) RemoveTimeObserver(o *media.TimeObserver) {
	if o == nil {
		return
	}
	p.mu.Lock()
	delete(p.timeObs, o)
	p.mu.Unlock()
	o.Cancel()
}

func (p *Player) Observe(prop media.Property, q media.Queue, fn func(media.Change)) *media.Observation {
	return p.observers.Add(prop, q, fn, media.CurrentChange(p, prop))
}

func (p *Player) Unobserve(o *media.Observation) { p.observers.Remove(o) }

// Title names the current item.
func (p *Player) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.item == nil {
		return ""
	}
	return p.item.title
}

var (
	_ media.Backend   = (*Player)(nil)
	_ media.Describer = (*Player)(nil)
)
