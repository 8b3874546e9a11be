// SPDX-License-Identifier: MIT
package audio

import (
	"context"
	"math"

	"spectrum/pkg/utils"
)

// sweepFrames is the number of frames one low-to-high sweep takes.
const sweepFrames = 200

// Synthetic generates a test signal: a tone sweeping exponentially from
// 60 Hz to 12 kHz over a steady 220 Hz bass and a quiet 3.5 kHz tone.
type Synthetic struct {
	sampleRate float64
	padder     *Padder
	slot       Slot
	pacer      *pacer

	buf    []int16
	offset int
	frame  int
}

var _ Source = (*Synthetic)(nil)

func NewSynthetic(frameSize int, sampleRate float64) *Synthetic {
	s := &Synthetic{
		sampleRate: sampleRate,
		padder:     NewPadder(frameSize),
		buf:        make([]int16, frameSize),
	}
	s.pacer = newPacer(frameInterval(frameSize, sampleRate), func() {
		s.slot.Store(s.Next())
	})
	return s
}

// Next renders the following frame of the signal. Start calls it from the
// pacer goroutine; tests call it directly.
func (s *Synthetic) Next() []byte {
	pos := float64(s.frame%sweepFrames) / sweepFrames
	sweep := 60 * math.Pow(12000.0/60, pos)

	utils.GenerateTones(s.buf, s.offset, s.sampleRate, []utils.Tone{
		{Frequency: sweep, Amplitude: 0.5},
		{Frequency: 220, Amplitude: 0.25},
		{Frequency: 3520, Amplitude: 0.05},
	})
	s.offset += len(s.buf)
	s.frame++
	return s.padder.Pad(s.buf)
}

func (s *Synthetic) Start(ctx context.Context) error {
	s.pacer.start(ctx)
	return nil
}

func (s *Synthetic) Latest() *Frame { return s.slot.Load() }

func (s *Synthetic) Close() error {
	s.pacer.stop()
	s.slot.Reset()
	return nil
}
