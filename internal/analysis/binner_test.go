// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"testing"
)

func TestBinHeights(t *testing.T) {
	tests := []struct {
		name     string
		spectrum []float64
		binMap   []int
		numBins  int
		want     []float64
	}{
		{
			"Max per bin",
			[]float64{9, 0.1, 0.7, 0.3, 0.2, 0.9, 5},
			[]int{-1, 0, 0, 0, 1, 1, -1},
			2,
			[]float64{0.7, 0.9},
		},
		{
			"Empty bin stays zero",
			[]float64{1, 2, 3},
			[]int{0, 0, 2},
			3,
			[]float64{2, 0, 3},
		},
		{
			"All zero",
			[]float64{0, 0, 0, 0},
			[]int{0, 0, 1, 1},
			2,
			[]float64{0, 0},
		},
		{
			"Spectrum longer than map",
			[]float64{1, 2, 3, 4},
			[]int{0, 0},
			1,
			[]float64{2},
		},
		{
			"No bins",
			[]float64{1, 2},
			[]int{-1, -1},
			0,
			[]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BinHeights(tt.spectrum, tt.binMap, tt.numBins)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("BinHeights() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBinHeightsIdempotent(t *testing.T) {
	spectrum := []float64{0.4, 0.2, 0.8, 0.1, 0.6}
	binMap := []int{0, 0, 1, 1, 2}

	first := BinHeights(spectrum, binMap, 3)
	second := BinHeights(spectrum, binMap, 3)
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("BinHeights not idempotent: %v vs %v", first, second)
	}
	if fmt.Sprint(spectrum) != "[0.4 0.2 0.8 0.1 0.6]" {
		t.Errorf("BinHeights modified its input: %v", spectrum)
	}
}

func TestBinHeightsIntoNoAllocs(t *testing.T) {
	spectrum := make([]float64, 1024)
	binMap := make([]int, 1024)
	for i := range binMap {
		binMap[i] = i / 8
	}
	dst := make([]float64, 128)

	allocs := testing.AllocsPerRun(100, func() {
		BinHeightsInto(dst, spectrum, binMap)
	})
	if allocs > 0 {
		t.Errorf("BinHeightsInto allocated: got %.1f allocs, want 0", allocs)
	}
}
