package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/samber/lo"
)

// ErrUnsupportedFormat is returned for containers no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return decodeMP3(f)
	},
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		// Some taggers prepend ID3v2 to FLAC files, which the decoder rejects.
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	},
	".ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(f)
	},
	".oga": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(f)
	},
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	".m4a": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return decodeM4A(f)
	},
	".mp4": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return decodeM4A(f)
	},
	".m4v": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return decodeM4A(f)
	},
	".aac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return decodeADTS(f)
	},
}

var mimeTypes = map[string][]string{
	".mp3":  {"audio/mpeg", "audio/mp3"},
	".flac": {"audio/flac"},
	".ogg":  {"audio/ogg", "audio/vorbis"},
	".oga":  {"audio/ogg"},
	".wav":  {"audio/wav", "audio/x-wav"},
	".m4a":  {"audio/mp4", "audio/x-m4a"},
	".mp4":  {"video/mp4", "audio/mp4"},
	".m4v":  {"video/x-m4v"},
	".aac":  {"audio/aac", "audio/aacp"},
}

// SupportedMimeTypes lists the MIME types of the decodable formats.
func SupportedMimeTypes() []string {
	types := lo.Uniq(lo.Flatten(lo.Values(mimeTypes)))
	slices.Sort(types)
	return types
}

// SupportedExtensions lists the file extensions the backend can decode.
func SupportedExtensions() []string {
	exts := lo.Keys(decoders)
	slices.Sort(exts)
	return exts
}

// openStream decodes the file at path. The returned streamer owns the file.
func openStream(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return s, format, nil
}

// probe reports whether path can be decoded.
func probe(path string) error {
	s, _, err := openStream(path)
	if err != nil {
		return err
	}
	return s.Close()
}

// skipID3v2 positions r after a leading ID3v2 tag, or at 0 without one.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < len(header) || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// The tag size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
