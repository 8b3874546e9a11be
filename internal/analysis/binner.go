// SPDX-License-Identifier: MIT
package analysis

// BinHeights reduces a spectrum to one height per visual bin: the largest
// magnitude among the indices mapped to that bin. Negative bin ids are
// unplotted and skipped, spectrum indices past the end of binMap are
// ignored, and bins without members stay 0.
func BinHeights(spectrum []float64, binMap []int, numBins int) []float64 {
	heights := make([]float64, max(numBins, 0))
	BinHeightsInto(heights, spectrum, binMap)
	return heights
}

// BinHeightsInto is BinHeights writing into dst, whose length is the bin
// count.
func BinHeightsInto(dst, spectrum []float64, binMap []int) {
	clear(dst)
	n := min(len(spectrum), len(binMap))
	for i := 0; i < n; i++ {
		id := binMap[i]
		if id < 0 || id >= len(dst) {
			continue
		}
		if spectrum[i] > dst[id] {
			dst[id] = spectrum[i]
		}
	}
}
