// SPDX-License-Identifier: MIT
package audio

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync/atomic"
	"time"

	"spectrum/internal/log"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// FileSource replays a WAV file at real-time cadence, one frame per
// frameSize/sampleRate seconds.
type FileSource struct {
	path       string
	samples    []int16
	sampleRate float64
	loop       bool
	padder     *Padder
	slot       Slot
	pacer      *pacer

	pos      int // read position, owned by the pacer goroutine
	finished atomic.Bool
}

var _ Source = (*FileSource)(nil)

// OpenFile decodes the whole file up front. Multi-channel files are
// reduced to their first channel.
func OpenFile(path string, frameSize int, sampleRate float64, loop bool) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	samples, fileRate, err := DecodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if fileRate != sampleRate {
		log.Warnf("Audio: %s is %.0f Hz, configured rate is %.0f Hz; frequencies will be scaled", path, fileRate, sampleRate)
	}

	s := &FileSource{
		path:       path,
		samples:    samples,
		sampleRate: sampleRate,
		loop:       loop,
		padder:     NewPadder(frameSize),
	}
	s.pacer = newPacer(frameInterval(frameSize, sampleRate), s.advance)
	return s, nil
}

// DecodeWAV reads a PCM WAV stream as int16 mono samples and returns them
// with the file's sample rate.
func DecodeWAV(r io.ReadSeeker) ([]int16, float64, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("WAV file has no audio format")
	}
	return toMono16(buf), float64(buf.Format.SampleRate), nil
}

// toMono16 keeps the first channel and rescales to 16 bits.
func toMono16(buf *goaudio.IntBuffer) []int16 {
	channels := buf.Format.NumChannels
	shift := buf.SourceBitDepth - 16
	out := make([]int16, len(buf.Data)/channels)
	for i := range out {
		v := buf.Data[i*channels]
		switch {
		case buf.SourceBitDepth == 8:
			// 8-bit WAV is unsigned.
			v = (v - 128) << 8
		case shift > 0:
			v >>= shift
		case shift < 0:
			v <<= -shift
		}
		out[i] = int16(max(min(v, math.MaxInt16), math.MinInt16))
	}
	return out
}

// Start begins replay from the current position.
func (s *FileSource) Start(ctx context.Context) error {
	if len(s.samples) == 0 {
		return fmt.Errorf("%s contains no samples", s.path)
	}
	s.pacer.start(ctx)
	return nil
}

// advance publishes the next frame. At the end of a non-looping file the
// last frame stays in the slot.
func (s *FileSource) advance() {
	if s.finished.Load() {
		return
	}
	frameSize := s.padder.FrameSize()
	if s.pos >= len(s.samples) {
		if !s.loop {
			s.finished.Store(true)
			log.Infof("Audio: Reached end of %s", s.path)
			return
		}
		s.pos = 0
	}
	end := min(s.pos+frameSize, len(s.samples))
	s.slot.Store(s.padder.Pad(s.samples[s.pos:end]))
	s.pos = end
}

// FrameAt returns the padded frame starting at offset into the file, for
// rendering a single moment offline. Offsets past the end are clamped to
// the last full frame.
func (s *FileSource) FrameAt(offset time.Duration) []byte {
	start := int(offset.Seconds() * s.sampleRate)
	start = max(0, min(start, len(s.samples)-s.padder.FrameSize()))
	end := min(start+s.padder.FrameSize(), len(s.samples))
	return s.padder.Pad(s.samples[start:end])
}

// Duration returns the playing time of the decoded file.
func (s *FileSource) Duration() time.Duration {
	return time.Duration(float64(len(s.samples)) / s.sampleRate * float64(time.Second))
}

// Finished reports whether a non-looping replay reached the end.
func (s *FileSource) Finished() bool { return s.finished.Load() }

func (s *FileSource) Latest() *Frame { return s.slot.Load() }

func (s *FileSource) Close() error {
	s.pacer.stop()
	s.slot.Reset()
	return nil
}
