// SPDX-License-Identifier: MIT
package audio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"testing"
)

func TestPadderFiller(t *testing.T) {
	tests := []struct {
		frameSize   int
		wantPadded  int
		wantFillLen int
	}{
		{1000, 1024, 48},
		{1024, 1024, 0},
		{2000, 2048, 96},
		{1, 1, 0},
		{3, 4, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d→%d", tt.frameSize, tt.wantPadded), func(t *testing.T) {
			p := NewPadder(tt.frameSize)
			if p.PaddedSamples() != tt.wantPadded {
				t.Errorf("PaddedSamples() = %d, want %d", p.PaddedSamples(), tt.wantPadded)
			}
			if len(p.Filler()) != tt.wantFillLen {
				t.Errorf("len(Filler()) = %d, want %d", len(p.Filler()), tt.wantFillLen)
			}
			for i, b := range p.Filler() {
				if b != 0 {
					t.Fatalf("Filler()[%d] = %d, want 0", i, b)
				}
			}
		})
	}
}

func TestPadderPad(t *testing.T) {
	p := NewPadder(1000)
	in := make([]int16, 1000)
	for i := range in {
		in[i] = int16(i - 500)
	}

	out := p.Pad(in)
	if len(out) != 1024*2 {
		t.Fatalf("len(Pad()) = %d, want %d", len(out), 2048)
	}
	for i, want := range in {
		if got := int16(binary.LittleEndian.Uint16(out[i*2:])); got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
	for i := 2000; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("filler byte %d = %d, want 0", i, out[i])
		}
	}
}

func TestPadderPadShortAndLong(t *testing.T) {
	p := NewPadder(4)
	if got := p.Pad([]int16{1, 2}); len(got) != 8 || got[4] != 0 || got[6] != 0 {
		t.Errorf("short input Pad() = %v", got)
	}
	if got := p.Pad([]int16{1, 2, 3, 4, 5, 6}); len(got) != 8 || got[6] != 4 {
		t.Errorf("long input Pad() = %v", got)
	}
}

func TestPadderFreshBuffers(t *testing.T) {
	p := NewPadder(8)
	a := p.Pad([]int16{1, 1, 1, 1, 1, 1, 1, 1})
	b := p.Pad([]int16{2, 2, 2, 2, 2, 2, 2, 2})
	if &a[0] == &b[0] {
		t.Fatal("Pad() reused its output buffer")
	}
	if a[0] != 1 {
		t.Errorf("earlier frame modified: %v", a)
	}
}

func TestSlotEmpty(t *testing.T) {
	var s Slot
	if s.Load() != nil {
		t.Error("Load() on empty slot returned a frame")
	}
	s.Store([]byte{1, 2})
	s.Reset()
	if s.Load() != nil {
		t.Error("Load() after Reset returned a frame")
	}
}

func TestSlotLatestWins(t *testing.T) {
	var s Slot
	s.Store([]byte{1})
	s.Store([]byte{2})
	last := s.Store([]byte{3})

	got := s.Load()
	if got != last || got.Data[0] != 3 {
		t.Errorf("Load() = %+v, want frame 3", got)
	}
	if got.Seq != 3 {
		t.Errorf("Seq = %d, want 3", got.Seq)
	}
}

// TestSlotNoTornReads stores frames whose bytes all carry one value while
// readers check every frame they see is uniform.
func TestSlotNoTornReads(t *testing.T) {
	const frameLen = 4096
	var s Slot
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for v := 0; v < 2000; v++ {
			data := make([]byte, frameLen)
			for i := range data {
				data[i] = byte(v)
			}
			s.Store(data)
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var lastSeq uint64
			for {
				select {
				case <-done:
					return
				default:
				}
				f := s.Load()
				if f == nil {
					continue
				}
				if f.Seq < lastSeq {
					t.Errorf("sequence went backwards: %d after %d", f.Seq, lastSeq)
					return
				}
				lastSeq = f.Seq
				first := f.Data[0]
				for i, b := range f.Data {
					if b != first {
						t.Errorf("torn frame %d: byte %d = %d, want %d", f.Seq, i, b, first)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
