// SPDX-License-Identifier: MIT
/*
Package render draws the spectrum as bars on a Surface at display cadence.

A Visualizer is driven by its host once per refresh tick: the ebiten game
loop in window mode, a ticker in terminal mode, or a single call for a
snapshot. Each tick clears the surface, picks up the latest audio frame
without waiting for one, and draws one bar per visual bin anchored at the
bottom edge.
*/
package render

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"spectrum/internal/analysis"
	"spectrum/internal/audio"
	"spectrum/internal/config"
	"spectrum/internal/geometry"
	"spectrum/internal/log"
)

// epsilon replaces zero magnitudes before taking the logarithm.
const epsilon = 1e-12

// errorLogInterval limits repeated frame errors to one line per interval.
const errorLogInterval = 5 * time.Second

// Style holds the drawing constants.
type Style struct {
	Background color.Color
	Bar        color.Color
	BarGap     int
	Damping    float64
	Scaling    float64
}

// Visualizer owns the per-tick state: the analysis pipeline, the last
// frame it consumed and the heights computed from it.
type Visualizer struct {
	cfg         *config.Config
	source      audio.Source
	transformer *analysis.Transformer
	pipeline    *analysis.Pipeline
	style       Style

	lastSeq  uint64
	heights  []float64
	lastErr  time.Time
	rendered uint64
}

// New builds the geometry for the configured canvas and wires the
// analysis pipeline to source.
func New(cfg *config.Config, source audio.Source) (*Visualizer, error) {
	windowType, err := analysis.ParseWindowFunc(cfg.Audio.FFTWindow)
	if err != nil {
		return nil, err
	}
	transformer, err := analysis.NewTransformer(cfg.Audio.FFTSize, cfg.Audio.SampleRate, windowType)
	if err != nil {
		return nil, err
	}
	style, err := styleFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	v := &Visualizer{
		cfg:         cfg,
		source:      source,
		transformer: transformer,
		style:       style,
	}
	if err := v.build(cfg.Display.Width); err != nil {
		return nil, err
	}
	return v, nil
}

func styleFromConfig(cfg *config.Config) (Style, error) {
	bg, err := config.ParseColor(cfg.Display.Background)
	if err != nil {
		return Style{}, err
	}
	bar, err := config.ParseColor(cfg.Display.BarColor)
	if err != nil {
		return Style{}, err
	}
	style := Style{
		Background: bg,
		Bar:        bar,
		BarGap:     cfg.Display.BarGap,
		Damping:    cfg.Spectrum.DampingFactor,
		Scaling:    cfg.Spectrum.ScalingFactor,
	}
	if cfg.Display.Transparent {
		style.Background = color.Transparent
	}
	return style, nil
}

// build computes the geometry for a canvas of the given width and starts
// a fresh pipeline with no smoothing history.
func (v *Visualizer) build(width int) error {
	params := v.cfg.GeometryParams(v.transformer.Bins())
	params.Width = width
	g, err := geometry.Build(params)
	if err != nil {
		return fmt.Errorf("failed to build geometry: %w", err)
	}
	smoother, err := analysis.NewSmoother(v.cfg.Spectrum.SmoothingConstant)
	if err != nil {
		return err
	}
	pipeline, err := analysis.NewPipeline(v.transformer, smoother, g)
	if err != nil {
		return err
	}

	v.pipeline = pipeline
	v.heights = nil
	v.lastSeq = 0

	log.Debugf("Render: geometry for %dpx: bins %d..%d (%d plotted), %d bars, %s mapping",
		width, g.Slice.Start, g.Slice.End, g.Slice.Len(), g.NumBins(), params.Mapping)
	return nil
}

// Resize rebuilds the geometry for a new canvas width.
func (v *Visualizer) Resize(width int) error {
	if width == v.pipeline.Geometry().Width {
		return nil
	}
	return v.build(width)
}

// Frame draws one tick. It never blocks on the audio source: before the
// first frame it draws only the background, and when no new frame
// arrived since the last tick it redraws the previous heights.
func (v *Visualizer) Frame(s Surface) {
	s.Clear(v.style.Background)

	if f := v.source.Latest(); f != nil && (f.Seq != v.lastSeq || v.heights == nil) {
		heights, err := v.pipeline.Process(f.Data)
		if err != nil {
			v.logError(err)
		} else {
			v.heights = heights
			v.lastSeq = f.Seq
		}
	}
	if v.heights == nil {
		return
	}

	v.drawBars(s)
	v.rendered++
}

func (v *Visualizer) drawBars(s Surface) {
	g := v.pipeline.Geometry()
	_, height := s.Size()
	for k := 0; k < g.NumBins(); k++ {
		left, right := g.Bounds(k)
		width := max(right-left-v.style.BarGap, 1)

		bar := int(math.Round(BarHeight(v.heights[k], v.style.Damping, v.style.Scaling, float64(height))))
		if bar <= 0 {
			continue
		}
		s.FillRect(left, height-bar, width, bar, v.style.Bar)
	}
}

func (v *Visualizer) logError(err error) {
	if time.Since(v.lastErr) < errorLogInterval {
		return
	}
	v.lastErr = time.Now()
	log.Warnf("Render: skipping frame: %v", err)
}

// Heights returns the bin heights drawn by the last tick, nil before the
// first frame.
func (v *Visualizer) Heights() []float64 { return v.heights }

// Geometry returns the current bin layout.
func (v *Visualizer) Geometry() *geometry.Geometry { return v.pipeline.Geometry() }

// Rendered returns the number of ticks that drew bars.
func (v *Visualizer) Rendered() uint64 { return v.rendered }

// BarHeight maps a bin magnitude to a bar height in pixels:
// (log(h) - damping) * scaling, clamped to [0, maxHeight]. Zero, negative
// and NaN magnitudes are treated as epsilon.
func BarHeight(h, damping, scaling, maxHeight float64) float64 {
	if !(h > epsilon) {
		h = epsilon
	}
	bar := (math.Log(h) - damping) * scaling
	switch {
	case math.IsNaN(bar) || bar < 0:
		return 0
	case bar > maxHeight:
		return maxHeight
	default:
		return bar
	}
}
