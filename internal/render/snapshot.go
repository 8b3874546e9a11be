// SPDX-License-Identifier: MIT
package render

import (
	"fmt"
	"io"
	"time"

	"spectrum/internal/audio"
	"spectrum/internal/config"
)

// snapshotWarmup is the number of frames fed before the captured one so
// the smoothed heights match what live playback would show.
const snapshotWarmup = 30

// FrameReader returns the padded frame starting at a time offset.
type FrameReader interface {
	FrameAt(offset time.Duration) []byte
}

// Snapshot renders the spectrum at offset into a PNG image of the
// configured window size.
func Snapshot(cfg *config.Config, frames FrameReader, at time.Duration, w io.Writer) error {
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}

	var source audio.StaticSource
	vis, err := New(cfg, &source)
	if err != nil {
		return err
	}
	surface := NewImageSurface(cfg.Display.Width, cfg.Display.Height)

	step := time.Duration(float64(cfg.Audio.FrameSize) / cfg.Audio.SampleRate * float64(time.Second))
	for k := snapshotWarmup; k >= 0; k-- {
		offset := at - time.Duration(k)*step
		if offset < 0 {
			continue
		}
		source.Push(frames.FrameAt(offset))
		vis.Frame(surface)
	}

	if err := surface.WritePNG(w); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
