package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// readTitle returns "Artist - Title" from the file tags, falling back to
// the file name.
func readTitle(path string) string {
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return fallback
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil || m.Title() == "" {
		return fallback
	}
	if m.Artist() != "" {
		return m.Artist() + " - " + m.Title()
	}
	return m.Title()
}
