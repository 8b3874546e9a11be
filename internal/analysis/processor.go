// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"

	"spectrum/internal/geometry"
)

// Pipeline runs the per-frame analysis: transform, smooth, bin. It owns
// the current spectrum and the smoothing history and is used from the
// render goroutine only.
type Pipeline struct {
	transformer *Transformer
	smoother    *Smoother
	geometry    *geometry.Geometry
	spectrum    []float64
	heights     []float64
}

// NewPipeline wires a transformer and smoother to a geometry built for
// the transformer's spectrum length.
func NewPipeline(t *Transformer, s *Smoother, g *geometry.Geometry) (*Pipeline, error) {
	if len(g.BinMap) != t.Bins() {
		return nil, fmt.Errorf("geometry built for %d bins, transformer produces %d", len(g.BinMap), t.Bins())
	}
	return &Pipeline{
		transformer: t,
		smoother:    s,
		geometry:    g,
		heights:     make([]float64, g.NumBins()),
	}, nil
}

// Process turns a padded frame into bin heights. The returned slice is
// reused by the next call.
func (p *Pipeline) Process(frame []byte) ([]float64, error) {
	spectrum, err := p.transformer.Transform(frame)
	if err != nil {
		return nil, err
	}
	p.spectrum = p.smoother.Smooth(spectrum)
	BinHeightsInto(p.heights, p.spectrum, p.geometry.BinMap)
	return p.heights, nil
}

// Spectrum returns the most recent smoothed spectrum, nil before the first
// frame.
func (p *Pipeline) Spectrum() []float64 { return p.spectrum }

// Reset drops the smoothing history so the next frame is used raw.
func (p *Pipeline) Reset() {
	p.smoother.Reset()
	p.spectrum = nil
}

// Geometry returns the partition the pipeline bins into.
func (p *Pipeline) Geometry() *geometry.Geometry { return p.geometry }
