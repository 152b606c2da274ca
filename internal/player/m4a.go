package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the frames-per-packet default of ALAC encoders.
const alacFrameSize = 4096

// m4aStreamer plays the audio track of an MP4 container. AAC packets go
// through faad2, ALAC packets through the pure Go ALAC decoder.
type m4aStreamer struct {
	box    *m4a.Reader
	file   io.Closer
	codec  m4a.CodecType
	rate   int
	chans  int
	depth  int
	frames int

	aac  *faad2.Decoder
	alac *alac.Alac

	next    int // index of the next container sample
	pending [][2]float64
	err     error
}

// decodeM4A opens the first audio track of an MP4/M4A container.
func decodeM4A(f io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	box, err := m4a.Open(f)
	if err != nil {
		return nil, beep.Format{}, err
	}

	s := &m4aStreamer{
		box:   box,
		file:  f,
		codec: box.Codec(),
		rate:  int(box.SampleRate()),
		chans: int(box.Channels()),
		depth: int(box.SampleSize()),
	}
	s.frames = int(box.Duration().Seconds() * float64(s.rate))

	precision := 2
	switch s.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("aac decoder: %w", err)
		}
		if err := dec.Init(ctx, box.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, fmt.Errorf("aac config: %w", err)
		}
		s.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  s.rate,
			SampleSize:  s.depth,
			NumChannels: s.chans,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("alac decoder: %w", err)
		}
		s.alac = dec
		if s.depth == 24 {
			precision = 3
		}
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s track", ErrUnsupportedFormat, s.codec)
	}

	return s, beep.Format{
		SampleRate:  beep.SampleRate(s.rate),
		NumChannels: 2,
		Precision:   precision,
	}, nil
}

func (s *m4aStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	n := 0
	for n < len(samples) {
		if len(s.pending) > 0 {
			c := copy(samples[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}
		if s.next >= s.box.SampleCount() {
			break
		}
		if err := s.decodeNext(); err != nil {
			s.err = err
			break
		}
	}
	return n, n > 0
}

// decodeNext decodes one container sample into pending.
func (s *m4aStreamer) decodeNext() error {
	packet, err := s.box.ReadSample(s.next)
	if err != nil {
		return err
	}
	s.next++

	switch {
	case s.aac != nil:
		pcm, err := s.aac.Decode(context.Background(), packet)
		if err != nil {
			return err
		}
		s.pending = int16Frames(pcm, s.chans)
	case s.alac != nil:
		s.pending = littleEndianFrames(s.alac.Decode(packet), s.chans, s.depth/8)
	default:
		return errors.New("no decoder")
	}
	return nil
}

func (s *m4aStreamer) Err() error { return s.err }

func (s *m4aStreamer) Len() int { return s.frames }

func (s *m4aStreamer) Position() int {
	return int(s.box.SampleTime(s.next).Seconds()*float64(s.rate)) - len(s.pending)
}

// Seek lands on the container sample holding frame p. AAC and ALAC
// packets are independently decodable, so no priming is needed.
func (s *m4aStreamer) Seek(p int) error {
	p = min(max(p, 0), s.frames)
	at := time.Duration(float64(p) / float64(s.rate) * float64(time.Second))
	s.next = s.box.SeekToTime(at)
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aStreamer) Close() error {
	if s.aac != nil {
		s.aac.Close(context.Background())
	}
	return s.file.Close()
}

// int16Frames turns interleaved 16-bit PCM into stereo frames. Mono is
// duplicated on both sides.
func int16Frames(pcm []int16, chans int) [][2]float64 {
	chans = max(chans, 1)
	frames := make([][2]float64, len(pcm)/chans)
	for i := range frames {
		l := float64(pcm[i*chans]) / 32768
		r := l
		if chans > 1 {
			r = float64(pcm[i*chans+1]) / 32768
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// littleEndianFrames turns interleaved signed little-endian PCM of width
// bytes per sample into stereo frames.
func littleEndianFrames(data []byte, chans, width int) [][2]float64 {
	chans = max(chans, 1)
	if width != 3 {
		width = 2
	}
	scale := float64(int64(1) << (8*width - 1))
	sample := func(off int) float64 {
		var v int32
		for b := range width {
			v |= int32(data[off+b]) << (8 * b)
		}
		// Sign-extend from the sample width.
		shift := 32 - 8*width
		return float64(v<<shift>>shift) / scale
	}

	stride := width * chans
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		l := sample(off)
		r := l
		if chans > 1 {
			r = sample(off + width)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}
