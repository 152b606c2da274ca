package media

import (
	"context"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Key names an asset capability that must resolve before the asset plays.
type Key string

const (
	KeyPlayable            Key = "playable"
	KeyHasProtectedContent Key = "hasProtectedContent"
)

// RequiredKeys are resolved, in order, before an asset is attached.
var RequiredKeys = []Key{KeyPlayable, KeyHasProtectedContent}

// KeyStatus is the resolution state of a single key.
type KeyStatus int

const (
	KeyUnknown KeyStatus = iota
	KeyLoading
	KeyLoaded
	KeyFailed
)

// String returns the status name.
func (s KeyStatus) String() string {
	switch s {
	case KeyUnknown:
		return "Unknown"
	case KeyLoading:
		return "Loading"
	case KeyLoaded:
		return "Loaded"
	case KeyFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Readiness summarizes the key statuses of an asset.
type Readiness int

const (
	ReadinessUnknown Readiness = iota
	ReadinessLoading
	ReadinessReady
	ReadinessFailed
)

// String returns the readiness name.
func (r Readiness) String() string {
	switch r {
	case ReadinessUnknown:
		return "Unknown"
	case ReadinessLoading:
		return "Loading"
	case ReadinessReady:
		return "Ready"
	case ReadinessFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Asset is a media source identified by a locator.
//
// Assets are compared by identity: two assets built from the same locator
// are distinct.
type Asset interface {
	ID() uuid.UUID
	Locator() *url.URL
	// LoadValuesAsync resolves keys in the background and calls done once
	// every key has settled. done runs on an arbitrary goroutine.
	LoadValuesAsync(keys []Key, done func())
	// StatusOfValue returns the status of key and, when it failed, why.
	StatusOfValue(key Key) (KeyStatus, error)
}

// ReadinessOf derives the readiness of a from the given keys.
func ReadinessOf(a Asset, keys []Key) Readiness {
	loaded := 0
	loading := false
	for _, k := range keys {
		st, _ := a.StatusOfValue(k)
		switch st {
		case KeyFailed:
			return ReadinessFailed
		case KeyLoaded:
			loaded++
		case KeyLoading:
			loading = true
		case KeyUnknown:
		}
	}
	switch {
	case loaded == len(keys):
		return ReadinessReady
	case loading:
		return ReadinessLoading
	default:
		return ReadinessUnknown
	}
}

// ResolveFunc resolves a single key. A nil error means the key loaded.
type ResolveFunc func(ctx context.Context, key Key) error

type keyResult struct {
	status KeyStatus
	err    error
}

// BaseAsset implements Asset on top of a ResolveFunc. Backends embed it.
//
// Each key resolves at most once; concurrent loads of the same key share a
// single call to the resolver.
type BaseAsset struct {
	id      uuid.UUID
	locator *url.URL
	ctx     context.Context
	resolve ResolveFunc

	group singleflight.Group

	mu      sync.Mutex
	results map[Key]keyResult
}

// NewBaseAsset creates an asset for locator whose keys are resolved by fn.
func NewBaseAsset(ctx context.Context, locator *url.URL, fn ResolveFunc) *BaseAsset {
	return &BaseAsset{
		id:      uuid.New(),
		locator: locator,
		ctx:     ctx,
		resolve: fn,
		results: make(map[Key]keyResult),
	}
}

// ID returns the asset id used in logs.
func (a *BaseAsset) ID() uuid.UUID { return a.id }

// Locator returns the asset source.
func (a *BaseAsset) Locator() *url.URL { return a.locator }

// LoadValuesAsync implements Asset.
func (a *BaseAsset) LoadValuesAsync(keys []Key, done func()) {
	keys = append([]Key(nil), keys...)

	a.mu.Lock()
	for _, k := range keys {
		if a.results[k].status == KeyUnknown {
			a.results[k] = keyResult{status: KeyLoading}
		}
	}
	a.mu.Unlock()

	go func() {
		for _, k := range keys {
			a.load(k)
		}
		if done != nil {
			done()
		}
	}()
}

func (a *BaseAsset) settled(k Key) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.results[k].status
	return st == KeyLoaded || st == KeyFailed
}

func (a *BaseAsset) load(k Key) {
	if a.settled(k) {
		return
	}

	_, _, _ = a.group.Do(string(k), func() (any, error) {
		// A call that finished between the check above and Do already
		// settled the key.
		if a.settled(k) {
			return nil, nil
		}
		err := a.resolve(a.ctx, k)
		res := keyResult{status: KeyLoaded}
		if err != nil {
			res = keyResult{status: KeyFailed, err: err}
		}
		a.mu.Lock()
		a.results[k] = res
		a.mu.Unlock()
		return nil, err
	})
}

// StatusOfValue implements Asset.
func (a *BaseAsset) StatusOfValue(key Key) (KeyStatus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := a.results[key]
	return res.status, res.err
}
