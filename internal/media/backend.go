// Package media defines the media backend abstraction the playback
// controller drives: assets and their capability keys, playable items,
// transport control and typed observations.
package media

import (
	"net/url"
	"time"
)

// Queue runs functions on a single goroutine, in submission order.
type Queue interface {
	Dispatch(fn func())
}

// Item is a playable session built from a resolved asset.
type Item interface {
	Asset() Asset
	Status() ItemStatus
	Duration() Time
	// Err explains a StatusFailed item. It is nil otherwise.
	Err() error
}

// Backend is the media player capability set.
//
// Observation callbacks deliver the current value synchronously on the
// calling goroutine and every later change through the queue given at
// registration. Periodic time callbacks always go through their queue.
type Backend interface {
	NewAsset(locator *url.URL) Asset
	NewItem(a Asset) Item
	ReplaceCurrentItem(it Item)
	CurrentItem() Item

	Play()
	Pause()
	Rate() float64
	SetRate(rate float64)

	CurrentTime() Time
	Seek(to, toleranceBefore, toleranceAfter Time)

	AddPeriodicTimeObserver(interval time.Duration, q Queue, fn func(Time)) *TimeObserver
	RemoveTimeObserver(o *TimeObserver)

	Observe(p Property, q Queue, fn func(Change)) *Observation
	Unobserve(o *Observation)
}

// Describer is implemented by backends that can name their current item.
type Describer interface {
	Title() string
}

// CurrentChange returns the current value of p on b.
func CurrentChange(b Backend, p Property) Change {
	switch p {
	case PropItemStatus:
		if it := b.CurrentItem(); it != nil {
			return StatusChange(it.Status())
		}
		return StatusChange(StatusUnknown)
	case PropItemDuration:
		if it := b.CurrentItem(); it != nil {
			return DurationChange(it.Duration())
		}
		return DurationChange(Invalid)
	case PropRate:
		return RateChange(b.Rate())
	}
	return Change{Property: p}
}
