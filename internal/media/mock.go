package media

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// MockAsset is an asset whose key resolution completes only when the test
// calls Complete.
type MockAsset struct {
	id        uuid.UUID
	locator   *url.URL
	results   map[Key]keyResult
	failures  map[Key]error
	pending   []func()
	loadCalls [][]Key
}

// NewMockAsset creates a mock asset for locator.
func NewMockAsset(locator *url.URL) *MockAsset {
	return &MockAsset{
		id:       uuid.New(),
		locator:  locator,
		results:  make(map[Key]keyResult),
		failures: make(map[Key]error),
	}
}

func (a *MockAsset) ID() uuid.UUID { return a.id }

func (a *MockAsset) Locator() *url.URL { return a.locator }

func (a *MockAsset) LoadValuesAsync(keys []Key, done func()) {
	a.loadCalls = append(a.loadCalls, append([]Key(nil), keys...))
	for _, k := range keys {
		if a.results[k].status == KeyUnknown {
			a.results[k] = keyResult{status: KeyLoading}
		}
	}
	a.pending = append(a.pending, done)
}

func (a *MockAsset) StatusOfValue(key Key) (KeyStatus, error) {
	res := a.results[key]
	return res.status, res.err
}

// Test helpers

// FailKey makes key fail with err when the asset completes.
func (a *MockAsset) FailKey(key Key, err error) { a.failures[key] = err }

// LoadCalls returns the keys passed to each LoadValuesAsync call.
func (a *MockAsset) LoadCalls() [][]Key { return a.loadCalls }

// Pending reports whether a completion is waiting.
func (a *MockAsset) Pending() bool { return len(a.pending) > 0 }

// Complete settles every loading key and runs the pending completions on
// the calling goroutine.
func (a *MockAsset) Complete() {
	for k, res := range a.results {
		if res.status != KeyLoading {
			continue
		}
		if err, ok := a.failures[k]; ok {
			a.results[k] = keyResult{status: KeyFailed, err: err}
		} else {
			a.results[k] = keyResult{status: KeyLoaded}
		}
	}
	pending := a.pending
	a.pending = nil
	for _, done := range pending {
		done()
	}
}

// MockItem is an Item with settable fields.
type MockItem struct {
	asset    Asset
	status   ItemStatus
	duration Time
	err      error
}

func (it *MockItem) Asset() Asset { return it.asset }

func (it *MockItem) Status() ItemStatus { return it.status }

func (it *MockItem) Duration() Time { return it.duration }

func (it *MockItem) Err() error { return it.err }

// SeekCall records a Seek invocation.
type SeekCall struct {
	To, ToleranceBefore, ToleranceAfter Time
}

// Mock is a test double for Backend. It is not safe for concurrent use.
type Mock struct {
	rate          float64
	current       Time
	item          Item
	itemDuration  Time
	observers     Observers
	timeObservers []*TimeObserver
	assets        []*MockAsset
	items         []*MockItem
	seekCalls     []SeekCall
	playCalls     int
	pauseCalls    int
}

// NewMock creates a mock backend. New items get a 100 second duration.
func NewMock() *Mock {
	return &Mock{
		current:      Zero,
		itemDuration: Seconds(100),
	}
}

func (m *Mock) NewAsset(locator *url.URL) Asset {
	a := NewMockAsset(locator)
	m.assets = append(m.assets, a)
	return a
}

func (m *Mock) NewItem(a Asset) Item {
	it := &MockItem{asset: a, status: StatusReadyToPlay, duration: m.itemDuration}
	m.items = append(m.items, it)
	return it
}

func (m *Mock) ReplaceCurrentItem(it Item) {
	m.item = it
	m.observers.Notify(CurrentChange(m, PropItemStatus))
	m.observers.Notify(CurrentChange(m, PropItemDuration))
}

func (m *Mock) CurrentItem() Item { return m.item }

func (m *Mock) Play() {
	m.playCalls++
	m.SetRate(1)
}

func (m *Mock) Pause() {
	m.pauseCalls++
	m.SetRate(0)
}

func (m *Mock) Rate() float64 { return m.rate }

func (m *Mock) SetRate(rate float64) {
	if rate == m.rate {
		return
	}
	m.rate = rate
	m.observers.Notify(RateChange(rate))
}

func (m *Mock) CurrentTime() Time { return m.current }

func (m *Mock) Seek(to, toleranceBefore, toleranceAfter Time) {
	m.seekCalls = append(m.seekCalls, SeekCall{To: to, ToleranceBefore: toleranceBefore, ToleranceAfter: toleranceAfter})
	m.current = to
}

func (m *Mock) AddPeriodicTimeObserver(interval time.Duration, q Queue, fn func(Time)) *TimeObserver {
	o := NewTimeObserver(interval, q, fn)
	m.timeObservers = append(m.timeObservers, o)
	return o
}

func (m *Mock) RemoveTimeObserver(o *TimeObserver) {
	for i, cur := range m.timeObservers {
		if cur == o {
			o.Cancel()
			m.timeObservers = append(m.timeObservers[:i], m.timeObservers[i+1:]...)
			return
		}
	}
}

func (m *Mock) Observe(p Property, q Queue, fn func(Change)) *Observation {
	return m.observers.Add(p, q, fn, CurrentChange(m, p))
}

func (m *Mock) Unobserve(o *Observation) { m.observers.Remove(o) }

// Test helpers

// SetCurrentTime moves the playhead without recording a seek.
func (m *Mock) SetCurrentTime(t Time) { m.current = t }

// SetItemDuration sets the duration of new items and, when an item is
// current, changes its duration and notifies observers.
func (m *Mock) SetItemDuration(d Time) {
	m.itemDuration = d
	if it, ok := m.item.(*MockItem); ok {
		it.duration = d
		m.observers.Notify(DurationChange(d))
	}
}

// FailItem marks the current item failed with err and notifies observers.
func (m *Mock) FailItem(err error) {
	if it, ok := m.item.(*MockItem); ok {
		it.status = StatusFailed
		it.err = err
		m.observers.Notify(StatusChange(StatusFailed))
	}
}

// Tick delivers the current time to every periodic observer.
func (m *Mock) Tick() {
	for _, o := range m.timeObservers {
		o.Deliver(m.current)
	}
}

// Assets returns every asset created through NewAsset.
func (m *Mock) Assets() []*MockAsset { return m.assets }

// Items returns every item created through NewItem.
func (m *Mock) Items() []*MockItem { return m.items }

func (m *Mock) ObservationCount() int { return m.observers.Len() }

func (m *Mock) TimeObserverCount() int { return len(m.timeObservers) }

func (m *Mock) SeekCalls() []SeekCall { return m.seekCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)
