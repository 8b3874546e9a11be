// SPDX-License-Identifier: MIT
package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"
)

func TestImageSurfaceFillRectClips(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.Clear(black)
	s.FillRect(8, 8, 5, 5, white)
	s.FillRect(-3, -3, 4, 4, white)

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{9, 9, white},
		{8, 8, white},
		{7, 8, black},
		{0, 0, white},
		{1, 1, black},
	}
	for _, tt := range tests {
		if got := s.Image.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestTerminalSurface(t *testing.T) {
	s := NewTerminalSurface(4, 2)
	if w, h := s.Size(); w != 4 || h != 4 {
		t.Fatalf("Size() = %dx%d, want 4x4", w, h)
	}

	s.Clear(black)
	s.FillRect(1, 3, 2, 10, white)
	if got := s.At(1, 3); got != white {
		t.Errorf("At(1, 3) = %v, want white", got)
	}
	if got := s.At(1, 2); got != black {
		t.Errorf("At(1, 2) = %v, want black", got)
	}
	if got := s.At(3, 3); got != black {
		t.Errorf("At(3, 3) = %v, want black", got)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, upperHalfBlock); n != 8 {
		t.Errorf("wrote %d cells, want 8", n)
	}
	if !strings.Contains(out, "\x1b[48;2;255;255;255m") {
		t.Error("expected a white background escape for the bottom half of the bar")
	}
	if !strings.HasPrefix(out, "\x1b[H") || !strings.HasSuffix(out, resetANSI) {
		t.Errorf("unexpected framing: %q", out)
	}
}

type fakeFrames struct {
	frame   []byte
	offsets []time.Duration
}

func (f *fakeFrames) FrameAt(offset time.Duration) []byte {
	f.offsets = append(f.offsets, offset)
	return f.frame
}

func TestSnapshot(t *testing.T) {
	cfg := newTestConfig(t)
	frames := &fakeFrames{frame: toneFrame(cfg, 1000)}

	var buf bytes.Buffer
	if err := Snapshot(cfg, frames, 100*time.Millisecond, &buf); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("snapshot is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != cfg.Display.Width || b.Dy() != cfg.Display.Height {
		t.Errorf("snapshot size %dx%d, want %dx%d", b.Dx(), b.Dy(), cfg.Display.Width, cfg.Display.Height)
	}

	// 100 ms at 2000 samples per frame leaves room for two earlier frames.
	if len(frames.offsets) != 3 {
		t.Errorf("read %d frames, want 3: %v", len(frames.offsets), frames.offsets)
	}
	if last := frames.offsets[len(frames.offsets)-1]; last != 100*time.Millisecond {
		t.Errorf("last frame at %v, want 100ms", last)
	}
}

func TestSnapshotRejectsEmptyCanvas(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Display.Height = 0
	var buf bytes.Buffer
	if err := Snapshot(cfg, &fakeFrames{}, 0, &buf); err == nil {
		t.Error("expected error for zero-height snapshot")
	}
}
