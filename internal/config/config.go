// SPDX-License-Identifier: MIT
package config

import "time"

// Defaults for the optional settings. Everything that shapes the spectrum
// itself (rates, sizes, plotted range, smoothing and bar transform) has no
// default and must come from the config file.
const (
	DefaultLogLevel    = "info"
	DefaultMode        = ModeWindow
	DefaultMapping     = "gamma"
	DefaultFFTWindow   = "blackman"
	DefaultGamma       = 1.2
	DefaultMinBinWidth = 5
	DefaultLowLatency  = true
	DefaultLoop        = true
	DefaultTargetFPS   = 60
	DefaultBackground  = "#000000"
	DefaultBarColor    = "#646464"
	DefaultBarGap      = 1
	DefaultTitle       = "spectrum"
	DefaultSnapshotOut = "spectrum.png"

	MinSampleRate = 8000   // Hz
	MaxSampleRate = 192000 // Hz
	MaxFrameSize  = 1 << 16
	MaxTargetFPS  = 240
)

// Display modes.
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
)

// Commands that run instead of the visualizer.
const (
	CommandDevices  = "devices"
	CommandSnapshot = "snapshot"
)

// Options holds command line values. Non-zero fields override the file.
type Options struct {
	ConfigPath string
	Command    string
	Device     string
	Mode       string
	Input      string
	Synthetic  bool
	LogLevel   string
	Verbose    bool
	Exit       bool // Help or version was printed; nothing to run.

	SnapshotOut string
	SnapshotAt  time.Duration
}

// NewOptions returns Options with the snapshot defaults filled in.
func NewOptions() *Options {
	return &Options{
		SnapshotOut: DefaultSnapshotOut,
	}
}

// Apply copies the set command line values over cfg.
func (cfg *Config) Apply(o *Options) {
	if o == nil {
		return
	}
	if o.Device != "" {
		cfg.Audio.Device = o.Device
	}
	// The command line input choice replaces the file's.
	if o.Input != "" {
		cfg.Audio.Input = o.Input
		cfg.Audio.Synthetic = false
	}
	if o.Synthetic {
		cfg.Audio.Synthetic = true
		cfg.Audio.Input = ""
	}
	if o.Mode != "" {
		cfg.Display.Mode = o.Mode
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
}
