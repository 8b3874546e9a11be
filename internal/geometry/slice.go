// SPDX-License-Identifier: MIT
package geometry

import "math"

// Slice is the inclusive range of FFT bin indices that fall inside the
// plotted frequency range.
type Slice struct {
	Start int
	End   int
}

// Len returns the number of bins in the slice, 0 when End < Start.
func (s Slice) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// Contains reports whether bin index i is inside the slice.
func (s Slice) Contains(i int) bool {
	return i >= s.Start && i <= s.End
}

// SliceIndices maps the plotted bounds onto bin indices of a spectrum of
// the given length by linear interpolation over [0, nyquist].
func SliceIndices(bins int, sampleRate, minHz, maxHz float64) Slice {
	if bins <= 0 || sampleRate <= 0 {
		return Slice{Start: 0, End: -1}
	}
	nyquist := sampleRate / 2
	last := float64(bins - 1)

	start := clampIndex(int(math.Floor(last*minHz/nyquist)), bins)
	end := clampIndex(int(math.Floor(last*maxHz/nyquist)), bins)
	return Slice{Start: start, End: end}
}

func clampIndex(i, bins int) int {
	if i < 0 {
		return 0
	}
	if i > bins-1 {
		return bins - 1
	}
	return i
}
