package media

import (
	"sync"
	"sync/atomic"
	"time"
)

// Observation is the handle returned by Backend.Observe.
type Observation struct {
	id     uint64
	prop   Property
	queue  Queue
	fn     func(Change)
	active atomic.Bool
}

// Property returns the observed property.
func (o *Observation) Property() Property { return o.prop }

// Active reports whether the observation still delivers changes.
func (o *Observation) Active() bool { return o.active.Load() }

// Observers is a registry of property observations shared by backends.
type Observers struct {
	mu     sync.Mutex
	nextID uint64
	list   []*Observation
}

// Add registers fn for p and delivers initial to it before returning.
func (r *Observers) Add(p Property, q Queue, fn func(Change), initial Change) *Observation {
	r.mu.Lock()
	r.nextID++
	o := &Observation{id: r.nextID, prop: p, queue: q, fn: fn}
	o.active.Store(true)
	r.list = append(r.list, o)
	r.mu.Unlock()

	fn(initial)
	return o
}

// Remove cancels o. Changes already queued for o are dropped.
// It reports whether o was registered.
func (r *Observers) Remove(o *Observation) bool {
	if o == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.list {
		if cur == o {
			o.active.Store(false)
			r.list = append(r.list[:i], r.list[i+1:]...)
			return true
		}
	}
	return false
}

// Notify posts c to every observation of c.Property through its queue.
func (r *Observers) Notify(c Change) {
	r.mu.Lock()
	targets := make([]*Observation, 0, len(r.list))
	for _, o := range r.list {
		if o.prop == c.Property {
			targets = append(targets, o)
		}
	}
	r.mu.Unlock()

	for _, o := range targets {
		o.queue.Dispatch(func() {
			if o.active.Load() {
				o.fn(c)
			}
		})
	}
}

// Len returns the number of registered observations.
func (r *Observers) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.list)
}

// TimeObserver is the handle returned by Backend.AddPeriodicTimeObserver.
type TimeObserver struct {
	interval time.Duration
	queue    Queue
	fn       func(Time)
	active   atomic.Bool
	done     chan struct{}
}

// NewTimeObserver creates an active periodic observer. Backends drive it
// by calling Deliver at every interval.
func NewTimeObserver(interval time.Duration, q Queue, fn func(Time)) *TimeObserver {
	o := &TimeObserver{
		interval: interval,
		queue:    q,
		fn:       fn,
		done:     make(chan struct{}),
	}
	o.active.Store(true)
	return o
}

// Interval returns the callback period.
func (o *TimeObserver) Interval() time.Duration { return o.interval }

// Active reports whether the observer still delivers ticks.
func (o *TimeObserver) Active() bool { return o.active.Load() }

// Done is closed when the observer is cancelled.
func (o *TimeObserver) Done() <-chan struct{} { return o.done }

// Deliver posts t to the callback through the observer's queue.
func (o *TimeObserver) Deliver(t Time) {
	if !o.active.Load() {
		return
	}
	o.queue.Dispatch(func() {
		if o.active.Load() {
			o.fn(t)
		}
	})
}

// Cancel stops the observer. It reports false if it was already cancelled.
func (o *TimeObserver) Cancel() bool {
	if !o.active.CompareAndSwap(true, false) {
		return false
	}
	close(o.done)
	return true
}
