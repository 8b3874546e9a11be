// SPDX-License-Identifier: MIT
package audio

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"spectrum/pkg/bitint"
)

// bytesPerSample for signed 16-bit mono PCM.
const bytesPerSample = 2

// Frame is one padded capture: little-endian int16 samples followed by the
// zero filler, NextPowerOfTwo(frameSize) samples in total. A Frame is
// never modified after it is stored in a Slot.
type Frame struct {
	Data     []byte
	Seq      uint64
	Captured time.Time
}

// Samples returns the padded length in samples.
func (f *Frame) Samples() int { return len(f.Data) / bytesPerSample }

// Padder encodes capture buffers into padded frames. The filler is
// computed once for the configured frame size.
type Padder struct {
	frameSize int
	padded    int
	filler    []byte
}

func NewPadder(frameSize int) *Padder {
	return &Padder{
		frameSize: frameSize,
		padded:    bitint.NextPowerOfTwo(frameSize),
		filler:    make([]byte, bitint.Padding(frameSize)*bytesPerSample),
	}
}

// Filler returns the zero bytes appended to every frame.
func (p *Padder) Filler() []byte { return p.filler }

// FrameSize returns the number of captured samples per frame.
func (p *Padder) FrameSize() int { return p.frameSize }

// PaddedSamples returns the frame length after padding.
func (p *Padder) PaddedSamples() int { return p.padded }

// Pad encodes up to frameSize samples into a new padded buffer. Short
// input is zero-extended.
func (p *Padder) Pad(samples []int16) []byte {
	out := make([]byte, 0, p.padded*bytesPerSample)
	n := min(len(samples), p.frameSize)
	for _, s := range samples[:n] {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	for i := n; i < p.frameSize; i++ {
		out = append(out, 0, 0)
	}
	return append(out, p.filler...)
}

// Slot holds the most recent frame. Writers replace it wholesale, readers
// get the pointer that was current at the time of the call.
type Slot struct {
	latest atomic.Pointer[Frame]
	seq    atomic.Uint64
}

// Store publishes data as the latest frame and returns it.
func (s *Slot) Store(data []byte) *Frame {
	f := &Frame{Data: data, Seq: s.seq.Add(1), Captured: time.Now()}
	s.latest.Store(f)
	return f
}

// Load returns the latest frame, nil if none was stored since the last
// Reset.
func (s *Slot) Load() *Frame {
	return s.latest.Load()
}

// Reset drops the latest frame.
func (s *Slot) Reset() {
	s.latest.Store(nil)
}
