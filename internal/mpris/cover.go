package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// artNames lists artwork file names in priority order. "<stem>" is the
// media file name without its extension.
var artNames = []string{
	"<stem>.jpg", "<stem>.png",
	"poster.jpg", "poster.png",
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png",
}

// FindArt looks for artwork next to the media file at path. It returns
// "" when there is none.
func FindArt(path string) string {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, name := range artNames {
		candidate := filepath.Join(dir, strings.ReplaceAll(name, "<stem>", stem))
		if candidate == path {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
