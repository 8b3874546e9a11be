// SPDX-License-Identifier: MIT
/*
Package audio delivers padded 16-bit mono PCM frames to the renderer.

A Source produces frames on its own clock (the PortAudio callback thread,
or a ticker for file and synthetic input) and publishes each one into a
single latest-frame Slot. Readers never wait: Latest returns whatever was
stored last, or nil before the first frame.
*/
package audio

import (
	"context"
	"fmt"

	"spectrum/internal/config"
	"spectrum/internal/log"
)

// Source is a producer of padded frames.
type Source interface {
	// Start begins delivery. Frames keep arriving until Close or ctx is
	// cancelled.
	Start(ctx context.Context) error
	// Latest returns the most recent frame without blocking.
	Latest() *Frame
	// Close stops delivery and drops the latest frame.
	Close() error
}

// NewSource picks the input described by cfg: a WAV file, the synthetic
// generator, or a PortAudio input device.
func NewSource(cfg config.AudioConfig) (Source, error) {
	switch {
	case cfg.Input != "":
		log.Infof("Audio: Replaying %s", cfg.Input)
		return OpenFile(cfg.Input, cfg.FrameSize, cfg.SampleRate, cfg.Loop)
	case cfg.Synthetic:
		log.Infof("Audio: Using synthetic test signal")
		return NewSynthetic(cfg.FrameSize, cfg.SampleRate), nil
	default:
		capture, err := NewCapture(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open input device: %w", err)
		}
		return capture, nil
	}
}
