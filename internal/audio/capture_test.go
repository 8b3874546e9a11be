// SPDX-License-Identifier: MIT
package audio

import (
	"testing"

	"github.com/gordonklaus/portaudio"
)

func newTestCapture(frameSize int) *Capture {
	return &Capture{
		padder: NewPadder(frameSize),
		status: make(chan portaudio.StreamCallbackFlags, 1),
	}
}

func TestProcessInputStreamStoresPaddedFrame(t *testing.T) {
	c := newTestCapture(1000)
	in := make([]int16, 1000)
	in[0] = -2

	c.processInputStream(in, portaudio.StreamCallbackTimeInfo{}, 0)

	f := c.Latest()
	if f == nil {
		t.Fatal("expected a frame after the callback")
	}
	if len(f.Data) != 2048 {
		t.Errorf("frame is %d bytes, want 2048", len(f.Data))
	}
	if f.Data[0] != 0xfe || f.Data[1] != 0xff {
		t.Errorf("first sample encoded as %#x %#x, want little-endian -2", f.Data[0], f.Data[1])
	}
	select {
	case flags := <-c.status:
		t.Errorf("unexpected status %v for a clean buffer", flags)
	default:
	}
}

func TestProcessInputStreamStatusNeverBlocks(t *testing.T) {
	c := newTestCapture(256)
	in := make([]int16, 256)

	// The status channel holds one entry; further flags are dropped.
	for range 3 {
		c.processInputStream(in, portaudio.StreamCallbackTimeInfo{}, portaudio.InputOverflow)
	}

	if got := <-c.status; got&portaudio.InputOverflow == 0 {
		t.Errorf("status = %v, want input overflow", got)
	}
	if f := c.Latest(); f == nil || f.Seq != 3 {
		t.Errorf("expected three frames stored, latest = %+v", f)
	}
}

// TestProcessInputStreamAllocations checks the callback allocates only the
// new frame: its buffer and the Frame record.
func TestProcessInputStreamAllocations(t *testing.T) {
	c := newTestCapture(1000)
	in := make([]int16, 1000)

	allocs := testing.AllocsPerRun(100, func() {
		c.processInputStream(in, portaudio.StreamCallbackTimeInfo{}, 0)
	})

	if allocs > 2 {
		t.Errorf("Expected at most 2 allocations per callback, got %.1f", allocs)
	}
}

func TestCaptureCloseWithoutStart(t *testing.T) {
	c := newTestCapture(256)
	c.processInputStream(make([]int16, 256), portaudio.StreamCallbackTimeInfo{}, 0)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if c.Latest() != nil {
		t.Error("Close() should drop the latest frame")
	}
}
