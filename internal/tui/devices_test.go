// SPDX-License-Identifier: MIT
package tui

import (
	"strings"
	"testing"
	"time"

	"spectrum/internal/audio"
)

func TestRenderDevices(t *testing.T) {
	devices := []audio.Device{
		{
			ID:                      0,
			Name:                    "Built-in Microphone",
			HostAPI:                 "Core Audio",
			MaxInputChannels:        1,
			DefaultSampleRate:       44100,
			DefaultLowInputLatency:  5 * time.Millisecond,
			DefaultHighInputLatency: 20 * time.Millisecond,
			IsDefaultInput:          true,
		},
		{
			ID:                1,
			Name:              "Built-in Output",
			MaxOutputChannels: 2,
			DefaultSampleRate: 48000,
		},
	}

	out := RenderDevices(devices)

	tests := []string{
		"Audio Device List",
		"[0] Built-in Microphone (Input)",
		"Host API: Core Audio",
		"Input latency: 5ms low, 20ms high",
		"[1] Built-in Output (Output)",
		"Default sample rate: 48000 Hz",
		"--device",
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Input latency") != 1 {
		t.Errorf("latency should only be listed for input devices:\n%s", out)
	}
}

func TestRenderDevicesEmpty(t *testing.T) {
	out := RenderDevices(nil)
	if !strings.Contains(out, "No audio devices found.") {
		t.Errorf("unexpected output for empty list:\n%s", out)
	}
}
