package playback

import (
	"errors"
	"fmt"

	"github.com/llehouerou/reel/internal/media"
)

var (
	// ErrMalformedLocator is reported when the configured source cannot be
	// turned into a locator.
	ErrMalformedLocator = errors.New("malformed source locator")

	// ErrItemFailed is reported when the current item enters StatusFailed.
	ErrItemFailed = errors.New("player item failed")
)

// KeyError reports a required asset key that failed to resolve.
type KeyError struct {
	Key media.Key
	Err error
}

func (e *KeyError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("asset key %q failed to load", e.Key)
	}
	return fmt.Sprintf("asset key %q failed to load: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }
