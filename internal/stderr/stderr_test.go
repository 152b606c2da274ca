//go:build !windows

package stderr

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	require.NoError(t, Start(func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	}))

	_, err := os.Stderr.WriteString("ALSA lib pcm.c: underrun\n\n   \nsecond line\n")
	require.NoError(t, err)
	Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"ALSA lib pcm.c: underrun", "second line"}, lines)
}

func TestStopWithoutStart(t *testing.T) {
	assert.NotPanics(t, Stop)
}
