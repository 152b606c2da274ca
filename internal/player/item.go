package player

import (
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/reel/internal/media"
)

// Item is an opened decoder for a resolved Asset.
type Item struct {
	asset  media.Asset
	title  string
	stream beep.StreamSeekCloser
	format beep.Format
	status media.ItemStatus
	err    error
}

func (it *Item) Asset() media.Asset { return it.asset }

func (it *Item) Status() media.ItemStatus { return it.status }

func (it *Item) Err() error { return it.err }

// Title names the item from its tags or file name.
func (it *Item) Title() string { return it.title }

// Duration is invalid until the item is ready or when the decoder cannot
// tell its length.
func (it *Item) Duration() media.Time {
	if it.status != media.StatusReadyToPlay || it.stream == nil || it.stream.Len() <= 0 {
		return media.Invalid
	}
	return media.FromDuration(it.format.SampleRate.D(it.stream.Len()))
}

func (it *Item) fail(err error) {
	it.status = media.StatusFailed
	it.err = err
	it.close()
}

func (it *Item) close() {
	if it.stream != nil {
		it.stream.Close()
		it.stream = nil
	}
}
