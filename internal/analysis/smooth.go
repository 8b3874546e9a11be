// SPDX-License-Identifier: MIT
package analysis

import "fmt"

// Smoother blends each spectrum with the one before it:
//
//	smoothed[i] = previous[i]*ratio + current[i]*(1-ratio)
//
// The first spectrum after construction or Reset passes through unchanged.
type Smoother struct {
	ratio    float64
	previous []float64
}

// NewSmoother returns a Smoother for a ratio in [0, 1).
func NewSmoother(ratio float64) (*Smoother, error) {
	if !(ratio >= 0 && ratio < 1) {
		return nil, fmt.Errorf("smoothing ratio must be in [0, 1), got %f", ratio)
	}
	return &Smoother{ratio: ratio}, nil
}

// Smooth blends current with the previous spectrum in place, remembers the
// result and returns it. The Smoother keeps a reference to current, so
// callers must pass a fresh slice each time.
func (s *Smoother) Smooth(current []float64) []float64 {
	if s.previous != nil && len(s.previous) == len(current) {
		r := s.ratio
		for i, prev := range s.previous {
			current[i] = prev*r + current[i]*(1-r)
		}
	}
	s.previous = current
	return current
}

// Reset forgets the previous spectrum.
func (s *Smoother) Reset() {
	s.previous = nil
}

// Ratio returns the weight given to the previous spectrum.
func (s *Smoother) Ratio() float64 { return s.ratio }
