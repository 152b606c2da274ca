package player

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-faad2"
)

const (
	adtsHeaderLen   = 7
	aacFrameSamples = 1024
)

// adtsStreamer plays a raw AAC stream in ADTS framing (.aac files).
// ADTS has no index, so Len comes from a header scan at open and Seek
// restarts decoding from the top.
type adtsStreamer struct {
	file   io.ReadSeekCloser
	reader *faad2.ADTSReader
	chans  int
	frames int
	pos    int
	buf    []int16
	err    error
}

// decodeADTS opens an ADTS stream.
func decodeADTS(f io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	frames, err := countADTSFrames(f)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s := &adtsStreamer{file: f, frames: frames * aacFrameSamples}
	if err := s.restart(); err != nil {
		return nil, beep.Format{}, err
	}
	return s, beep.Format{
		SampleRate:  beep.SampleRate(s.reader.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}, nil
}

// countADTSFrames walks the frame headers of r and rewinds it.
func countADTSFrames(r io.ReadSeeker) (int, error) {
	header := make([]byte, adtsHeaderLen)
	n := 0
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, err
		}
		_, _, length, err := faad2.ParseADTSHeader(header)
		if err != nil {
			if n == 0 {
				return 0, fmt.Errorf("not an ADTS stream: %w", err)
			}
			// Trailing junk such as an ID3v1 tag.
			break
		}
		if int(length) < adtsHeaderLen {
			break
		}
		if _, err := r.Seek(int64(length)-adtsHeaderLen, io.SeekCurrent); err != nil {
			return 0, err
		}
		n++
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return n, nil
}

// restart reopens the decoder at the start of the file.
func (s *adtsStreamer) restart() error {
	ctx := context.Background()
	if s.reader != nil {
		s.reader.Close(ctx)
		s.reader = nil
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	reader, err := faad2.OpenADTS(ctx, s.file)
	if err != nil {
		return err
	}
	s.reader = reader
	s.chans = max(int(reader.Channels()), 1)
	s.pos = 0
	s.err = nil
	return nil
}

func (s *adtsStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	want := len(samples) * s.chans
	if cap(s.buf) < want {
		s.buf = make([]int16, want)
	}
	got, err := s.reader.Read(context.Background(), s.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	n := copy(samples, int16Frames(s.buf[:got], s.chans))
	s.pos += n
	return n, n > 0
}

func (s *adtsStreamer) Err() error { return s.err }

func (s *adtsStreamer) Len() int { return s.frames }

func (s *adtsStreamer) Position() int { return s.pos }

// Seek decodes and drops frames from the start up to p.
func (s *adtsStreamer) Seek(p int) error {
	p = min(max(p, 0), s.frames)
	if p < s.pos {
		if err := s.restart(); err != nil {
			return err
		}
	}
	skip := make([][2]float64, 4096)
	for s.pos < p {
		if _, ok := s.Stream(skip[:min(len(skip), p-s.pos)]); !ok {
			return s.err
		}
	}
	return nil
}

func (s *adtsStreamer) Close() error {
	if s.reader != nil {
		s.reader.Close(context.Background())
	}
	return s.file.Close()
}
