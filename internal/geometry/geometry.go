// SPDX-License-Identifier: MIT
/*
Package geometry precomputes how a magnitude spectrum is laid out on a
fixed-width pixel strip.

Build runs once at startup. It selects the spectrum indices inside the
plotted frequency range, maps each one to a horizontal pixel position
and partitions those positions into visual bins of a minimum width. The
resulting Geometry is immutable and safe to share between goroutines.
*/
package geometry

import (
	"fmt"
	"math"
)

const (
	DefaultGamma       = 1.2
	DefaultMinBinWidth = 5
)

// Params describes the spectrum and the canvas it is drawn on.
type Params struct {
	SampleRate  float64 // Hz
	Bins        int     // magnitude spectrum length (fft size / 2)
	MinFreq     float64 // lowest plotted frequency, Hz
	MaxFreq     float64 // highest plotted frequency, Hz
	Mapping     Mapping
	Gamma       float64 // stretch factor, gamma mapping only
	Width       int     // canvas width in pixels
	MinBinWidth int     // pixels
}

// Geometry holds the coordinate map and bin partition for one Params.
type Geometry struct {
	Slice       Slice
	Coordinates []float64 // pixel position per slice offset
	BinMap      []int     // spectrum index -> bin id, or Unplotted
	Edges       []int     // strictly increasing bin edges, Edges[0] == 0
	Width       int
}

// Build validates p and computes its Geometry. A zero-length slice or a
// zero-width canvas yields an empty geometry with no bins.
func Build(p Params) (*Geometry, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	g := &Geometry{
		Slice:       SliceIndices(p.Bins, p.SampleRate, p.MinFreq, p.MaxFreq),
		Coordinates: []float64{},
		Edges:       []int{0},
		Width:       p.Width,
	}
	g.BinMap = make([]int, p.Bins)
	for i := range g.BinMap {
		g.BinMap[i] = Unplotted
	}

	if g.Slice.Len() == 0 || p.Width == 0 {
		return g, nil
	}

	g.Coordinates = p.Mapping.Coordinates(g.Slice.Len(), float64(p.Width), p.Gamma)
	g.BinMap, g.Edges = partition(g.Coordinates, g.Slice, p.Bins, p.Width, p.MinBinWidth)
	return g, nil
}

// NumBins returns the number of visual bins.
func (g *Geometry) NumBins() int {
	if len(g.Edges) < 2 {
		return 0
	}
	return len(g.Edges) - 1
}

// Bounds returns the left and right pixel edges of bin k.
func (g *Geometry) Bounds(k int) (int, int) {
	return g.Edges[k], g.Edges[k+1]
}

func (p Params) validate() error {
	switch {
	case p.Bins < 0:
		return fmt.Errorf("spectrum length must not be negative, got %d", p.Bins)
	case p.SampleRate <= 0 || math.IsNaN(p.SampleRate):
		return fmt.Errorf("sample rate must be positive, got %f", p.SampleRate)
	case p.Width < 0:
		return fmt.Errorf("canvas width must not be negative, got %d", p.Width)
	case p.MinBinWidth < 1:
		return fmt.Errorf("minimum bin width must be at least 1 pixel, got %d", p.MinBinWidth)
	case p.Mapping != MappingGamma && p.Mapping != MappingLogarithmic:
		return fmt.Errorf("unknown frequency mapping: %v", p.Mapping)
	case p.Mapping == MappingGamma && !(p.Gamma > 0):
		return fmt.Errorf("stretch factor must be positive, got %f", p.Gamma)
	}
	return nil
}
