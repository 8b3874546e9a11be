// SPDX-License-Identifier: MIT
package geometry

import "math"

// Unplotted marks a spectrum index outside the plotted slice.
const Unplotted = -1

// partition walks the slice in increasing bin order and groups adjacent
// frequencies into visual bins at least minWidth pixels wide.
//
// Bin ids are assigned when a frequency is visited and never revised. The
// frequency whose pixel commits an edge belongs to the bin that edge
// closes. A trailing open bin is closed at the right border.
func partition(coords []float64, slice Slice, bins, width, minWidth int) ([]int, []int) {
	binMap := make([]int, bins)
	for i := range binMap {
		binMap[i] = Unplotted
	}
	edges := []int{0}

	last := 0
	open := false
	for offset, x := range coords {
		px := int(math.Round(x))
		if px < 0 {
			px = 0
		} else if px > width {
			px = width
		}

		id := len(edges) - 1
		if last >= width {
			// Already closed at the border, join the last bin.
			id = len(edges) - 2
		}
		binMap[slice.Start+offset] = id

		if px-last >= minWidth {
			edges = append(edges, px)
			last = px
			open = false
		} else if last < width {
			open = true
		}
	}

	if open && last < width {
		edges = append(edges, width)
	}
	return binMap, edges
}
