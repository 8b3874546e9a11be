// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"spectrum/internal/analysis"
	"spectrum/internal/geometry"
	"spectrum/internal/log"
	"spectrum/pkg/bitint"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded once from YAML and never
// mutated after startup.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Audio    AudioConfig    `yaml:"audio"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
	Display  DisplayConfig  `yaml:"display"`
}

// AudioConfig selects the input and frames it for the FFT.
type AudioConfig struct {
	Device     string  `yaml:"device"`      // "" default input, PortAudio index, or name substring.
	Input      string  `yaml:"input"`       // WAV file replayed instead of a device.
	Synthetic  bool    `yaml:"synthetic"`   // Generated test signal instead of a device.
	Loop       bool    `yaml:"loop"`        // Restart the WAV file at its end.
	SampleRate float64 `yaml:"sample_rate"` // Hz.
	FrameSize  int     `yaml:"frame_size"`  // Samples per capture callback.
	FFTSize    int     `yaml:"fft_size"`    // Padded transform length, NextPowerOfTwo(frame_size).
	LowLatency bool    `yaml:"low_latency"` // Request the device's low input latency.
	FFTWindow  string  `yaml:"fft_window"`  // Window function name.
}

// SpectrumConfig controls the frequency axis, binning and bar transform.
type SpectrumConfig struct {
	MinPlottedFreq    float64 `yaml:"min_plotted_freq"` // Hz.
	MaxPlottedFreq    float64 `yaml:"max_plotted_freq"` // Hz.
	Mapping           string  `yaml:"mapping"`          // "gamma" or "logarithmic".
	StretchFactor     float64 `yaml:"stretch_factor"`   // Gamma.
	MinBinWidth       int     `yaml:"min_bin_width"`    // Pixels.
	SmoothingConstant float64 `yaml:"smoothing_constant"`
	DampingFactor     float64 `yaml:"damping_factor"`
	ScalingFactor     float64 `yaml:"scaling_factor"`
}

// DisplayConfig describes the drawing surface.
type DisplayConfig struct {
	Mode        string `yaml:"mode"`   // "window" or "terminal".
	Width       int    `yaml:"width"`  // Canvas width in pixels.
	Height      int    `yaml:"height"` // Canvas height in pixels.
	TargetFPS   int    `yaml:"target_fps"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Background  string `yaml:"background"`
	BarColor    string `yaml:"bar_color"`
	BarGap      int    `yaml:"bar_gap"`
	Transparent bool   `yaml:"transparent"`
	Decorated   bool   `yaml:"decorated"`
	Floating    bool   `yaml:"floating"`
	Title       string `yaml:"title"`
}

// requiredKeys have no default and must be present in the file.
var requiredKeys = []string{
	"audio.sample_rate",
	"audio.frame_size",
	"audio.fft_size",
	"spectrum.min_plotted_freq",
	"spectrum.max_plotted_freq",
	"spectrum.smoothing_constant",
	"spectrum.damping_factor",
	"spectrum.scaling_factor",
	"display.width",
	"display.height",
}

// configCandidates are searched in order when no path is given.
var configCandidates = []string{
	"spectrum.yaml",
	"configs/spectrum.yaml",
}

// ErrNoConfig is returned when no path is given and no candidate exists.
var ErrNoConfig = errors.New("no configuration file found")

func defaults() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Audio: AudioConfig{
			Loop:       DefaultLoop,
			LowLatency: DefaultLowLatency,
			FFTWindow:  DefaultFFTWindow,
		},
		Spectrum: SpectrumConfig{
			Mapping:       DefaultMapping,
			StretchFactor: DefaultGamma,
			MinBinWidth:   DefaultMinBinWidth,
		},
		Display: DisplayConfig{
			Mode:       DefaultMode,
			TargetFPS:  DefaultTargetFPS,
			Background: DefaultBackground,
			BarColor:   DefaultBarColor,
			BarGap:     DefaultBarGap,
			Floating:   true,
			Title:      DefaultTitle,
		},
	}
}

// LoadConfig reads the YAML file at path, or the first existing candidate
// when path is empty, applies environment overrides and validates the
// result.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		for _, candidate := range configCandidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return nil, fmt.Errorf("%w (searched %s)", ErrNoConfig, strings.Join(configCandidates, ", "))
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	log.Debugf("configuration: loaded %s", path)
	return cfg, nil
}

// Parse decodes YAML config data, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := checkRequired(&root, requiredKeys); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := defaults()
	if err := root.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// checkRequired reports the dotted keys missing from a decoded document.
func checkRequired(root *yaml.Node, keys []string) error {
	var missing []string
	for _, key := range keys {
		if lookup(root, strings.Split(key, ".")) == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func lookup(node *yaml.Node, path []string) *yaml.Node {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if len(path) == 0 {
		return node
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == path[0] {
			return lookup(node.Content[i+1], path[1:])
		}
	}
	return nil
}

// Validate checks ranges and cross-field consistency.
func (cfg *Config) Validate() error {
	if _, ok := log.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("log_level '%s' is not one of debug, info, warn, error", cfg.LogLevel)
	}

	a := cfg.Audio
	if a.SampleRate < MinSampleRate || a.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate %.0f outside [%d, %d]", a.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if a.FrameSize <= 0 || a.FrameSize > MaxFrameSize {
		return fmt.Errorf("audio.frame_size %d outside [1, %d]", a.FrameSize, MaxFrameSize)
	}
	if want := bitint.NextPowerOfTwo(a.FrameSize); a.FFTSize != want {
		return fmt.Errorf("audio.fft_size %d must be the next power of two of frame_size %d (%d)", a.FFTSize, a.FrameSize, want)
	}
	if _, err := analysis.ParseWindowFunc(a.FFTWindow); err != nil {
		return fmt.Errorf("audio.fft_window: %w", err)
	}
	if a.Input != "" && a.Synthetic {
		return fmt.Errorf("audio.input and audio.synthetic are mutually exclusive")
	}

	s := cfg.Spectrum
	if s.MinPlottedFreq < 0 || s.MaxPlottedFreq <= s.MinPlottedFreq {
		return fmt.Errorf("spectrum plotted range [%g, %g] is empty", s.MinPlottedFreq, s.MaxPlottedFreq)
	}
	if nyquist := a.SampleRate / 2; s.MaxPlottedFreq > nyquist {
		log.Warnf("configuration: max_plotted_freq %g above nyquist %g, clamping to the last bin", s.MaxPlottedFreq, nyquist)
	}
	if _, err := geometry.ParseMapping(s.Mapping); err != nil {
		return fmt.Errorf("spectrum.mapping: %w", err)
	}
	if !(s.StretchFactor > 0) {
		return fmt.Errorf("spectrum.stretch_factor must be positive, got %g", s.StretchFactor)
	}
	if s.MinBinWidth < 1 {
		return fmt.Errorf("spectrum.min_bin_width must be at least 1, got %d", s.MinBinWidth)
	}
	if !(s.SmoothingConstant >= 0 && s.SmoothingConstant < 1) {
		return fmt.Errorf("spectrum.smoothing_constant must be in [0, 1), got %g", s.SmoothingConstant)
	}
	for name, v := range map[string]float64{"damping_factor": s.DampingFactor, "scaling_factor": s.ScalingFactor} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("spectrum.%s must be finite", name)
		}
	}

	d := cfg.Display
	if d.Mode != ModeWindow && d.Mode != ModeTerminal {
		return fmt.Errorf("display.mode '%s' must be %s or %s", d.Mode, ModeWindow, ModeTerminal)
	}
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("display size %dx%d must not be negative", d.Width, d.Height)
	}
	if d.TargetFPS <= 0 || d.TargetFPS > MaxTargetFPS {
		return fmt.Errorf("display.target_fps %d outside [1, %d]", d.TargetFPS, MaxTargetFPS)
	}
	if d.BarGap < 0 {
		return fmt.Errorf("display.bar_gap must not be negative, got %d", d.BarGap)
	}
	if _, err := ParseColor(d.Background); err != nil {
		return fmt.Errorf("display.background: %w", err)
	}
	if _, err := ParseColor(d.BarColor); err != nil {
		return fmt.Errorf("display.bar_color: %w", err)
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// applyEnvOverrides applies SPECTRUM_* environment variables on top of the
// file values.
func (cfg *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("SPECTRUM_LOG_LEVEL"); ok {
		cfg.LogLevel = val
		log.Debugf("configuration: Overriding log_level from env: %s", val)
	}
	if val, ok := os.LookupEnv("SPECTRUM_DEVICE"); ok {
		cfg.Audio.Device = val
		log.Debugf("configuration: Overriding audio.device from env: %s", val)
	}
	if val, ok := os.LookupEnv("SPECTRUM_INPUT"); ok {
		cfg.Audio.Input = val
		log.Debugf("configuration: Overriding audio.input from env: %s", val)
	}
	if val, ok := os.LookupEnv("SPECTRUM_MODE"); ok {
		cfg.Display.Mode = val
		log.Debugf("configuration: Overriding display.mode from env: %s", val)
	}
	if val, ok := os.LookupEnv("SPECTRUM_TARGET_FPS"); ok {
		if fps, err := strconv.Atoi(val); err == nil {
			cfg.Display.TargetFPS = fps
			log.Debugf("configuration: Overriding display.target_fps from env: %d", fps)
		}
	}
}

// GeometryParams returns the geometry inputs for a spectrum of bins
// magnitudes.
func (cfg *Config) GeometryParams(bins int) geometry.Params {
	mapping, _ := geometry.ParseMapping(cfg.Spectrum.Mapping)
	return geometry.Params{
		SampleRate:  cfg.Audio.SampleRate,
		Bins:        bins,
		MinFreq:     cfg.Spectrum.MinPlottedFreq,
		MaxFreq:     cfg.Spectrum.MaxPlottedFreq,
		Mapping:     mapping,
		Gamma:       cfg.Spectrum.StretchFactor,
		Width:       cfg.Display.Width,
		MinBinWidth: cfg.Spectrum.MinBinWidth,
	}
}
