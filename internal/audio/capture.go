// SPDX-License-Identifier: MIT
package audio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"spectrum/internal/config"
	"spectrum/internal/log"

	"github.com/gordonklaus/portaudio"
)

// statusLogInterval limits how often stream status flags are reported.
const statusLogInterval = time.Second

// Capture reads mono int16 frames from a PortAudio input device.
//
// The stream callback runs on PortAudio's real-time thread. It only pads
// the buffer, swaps it into the slot and posts status flags to a channel;
// logging happens on a separate goroutine.
type Capture struct {
	device     *portaudio.DeviceInfo
	latency    time.Duration
	sampleRate float64
	padder     *Padder
	slot       Slot

	stream *portaudio.Stream
	status chan portaudio.StreamCallbackFlags
	cancel context.CancelFunc
	wg     sync.WaitGroup

	overflows  atomic.Uint64
	underflows atomic.Uint64
}

var _ Source = (*Capture)(nil)

// NewCapture selects the configured input device. The stream is opened by
// Start.
func NewCapture(cfg config.AudioConfig) (*Capture, error) {
	device, err := SelectInputDevice(cfg.Device)
	if err != nil {
		return nil, err
	}

	c := &Capture{
		device:     device,
		sampleRate: cfg.SampleRate,
		padder:     NewPadder(cfg.FrameSize),
		status:     make(chan portaudio.StreamCallbackFlags, 1),
	}
	if cfg.LowLatency {
		c.latency = device.DefaultLowInputLatency
	} else {
		c.latency = device.DefaultHighInputLatency
	}
	return c, nil
}

// Start opens and starts the input stream.
func (c *Capture) Start(ctx context.Context) error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   c.device,
			Channels: 1,
			Latency:  c.latency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   nil,
			Channels: 0,
		},
		SampleRate:      c.sampleRate,
		FramesPerBuffer: c.padder.FrameSize(),
	}

	stream, err := portaudio.OpenStream(params, c.processInputStream)
	if err != nil {
		return fmt.Errorf("failed to open stream on %s: %w", c.device.Name, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start stream on %s: %w", c.device.Name, err)
	}
	c.stream = stream

	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go c.reportStatus(ctx)

	log.Infof("Audio: Capturing from %s (%.0f Hz, %d samples/frame, padded to %d, latency %s)",
		c.device.Name, c.sampleRate, c.padder.FrameSize(), c.padder.PaddedSamples(), c.latency)
	return nil
}

// processInputStream is the PortAudio callback.
func (c *Capture) processInputStream(in []int16, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
	if flags&(portaudio.InputOverflow|portaudio.InputUnderflow) != 0 {
		select {
		case c.status <- flags:
		default:
		}
	}
	c.slot.Store(c.padder.Pad(in))
}

// reportStatus logs input overflow and underflow, at most once per
// statusLogInterval. These are not fatal; rendering continues with the
// frames that do arrive.
func (c *Capture) reportStatus(ctx context.Context) {
	defer c.wg.Done()
	var lastLog time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case flags := <-c.status:
			if flags&portaudio.InputOverflow != 0 {
				c.overflows.Add(1)
			}
			if flags&portaudio.InputUnderflow != 0 {
				c.underflows.Add(1)
			}
			if time.Since(lastLog) >= statusLogInterval {
				lastLog = time.Now()
				log.Warnf("Audio: input stream status (overflows: %d, underflows: %d)",
					c.overflows.Load(), c.underflows.Load())
			}
		}
	}
}

// Latest returns the most recent captured frame.
func (c *Capture) Latest() *Frame { return c.slot.Load() }

// Close stops the stream before closing it, so the callback is no longer
// running when the slot is dropped.
func (c *Capture) Close() error {
	if c.cancel != nil {
		c.cancel()
		c.wg.Wait()
		c.cancel = nil
	}

	var err error
	if c.stream != nil {
		if stopErr := c.stream.Stop(); stopErr != nil {
			err = fmt.Errorf("failed to stop stream: %w", stopErr)
		}
		if closeErr := c.stream.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close stream: %w", closeErr)
		}
		c.stream = nil
	}
	c.slot.Reset()
	return err
}

// Device returns the selected input device.
func (c *Capture) Device() *portaudio.DeviceInfo { return c.device }
