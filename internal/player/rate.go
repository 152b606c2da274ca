package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

const resampleQuality = 4

// rateStreamer plays src at a signed rate. Positive rates go through a
// resampler, negative rates step backwards through src emitting silence
// and a zero rate emits silence. Hitting either end of src resets the rate
// to zero and calls onBoundary from a new goroutine.
//
// It never drains, so the speaker keeps it across pauses.
type rateStreamer struct {
	mu         sync.Mutex
	src        beep.StreamSeeker
	ratio      float64 // source sample rate over speaker sample rate
	rate       float64
	res        *beep.Resampler
	onBoundary func()
}

func newRateStreamer(src beep.StreamSeeker, ratio float64, onBoundary func()) *rateStreamer {
	return &rateStreamer{src: src, ratio: ratio, onBoundary: onBoundary}
}

func (r *rateStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.rate > 0:
		if r.res == nil {
			r.res = beep.ResampleRatio(resampleQuality, r.rate*r.ratio, r.src)
		}
		n, ok = r.res.Stream(samples)
		clear(samples[n:])
		if !ok || r.src.Position() >= r.src.Len() {
			r.hitBoundary()
		}
	case r.rate < 0:
		clear(samples)
		step := int(-r.rate * r.ratio * float64(len(samples)))
		pos := r.src.Position() - step
		if pos <= 0 {
			pos = 0
		}
		_ = r.src.Seek(pos)
		if pos == 0 {
			r.hitBoundary()
		}
	default:
		clear(samples)
	}
	return len(samples), true
}

func (r *rateStreamer) Err() error { return nil }

// hitBoundary must be called with r.mu held.
func (r *rateStreamer) hitBoundary() {
	if r.rate == 0 {
		return
	}
	r.rate = 0
	r.res = nil
	if r.onBoundary != nil {
		go r.onBoundary()
	}
}

// Rate returns the current playback rate.
func (r *rateStreamer) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rate
}

// SetRate changes the playback rate. Starting forward playback from the
// end, or backward playback from the start, is refused and reported as
// false.
func (r *rateStreamer) SetRate(rate float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, n := r.src.Position(), r.src.Len()
	if (rate > 0 && pos >= n) || (rate < 0 && pos <= 0) {
		r.rate = 0
		r.res = nil
		return false
	}
	switch {
	case rate <= 0:
		r.res = nil
	case r.res != nil:
		r.res.SetRatio(rate * r.ratio)
	}
	r.rate = rate
	return true
}

// Position returns the source position in samples.
func (r *rateStreamer) Position() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Position()
}

// Len returns the source length in samples.
func (r *rateStreamer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Len()
}

// Seek moves to sample p, clamped to the source bounds.
func (r *rateStreamer) Seek(p int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p = min(max(p, 0), r.src.Len())
	// The resampler buffers source samples, so it restarts after a seek.
	r.res = nil
	return r.src.Seek(p)
}
