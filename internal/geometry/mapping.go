// SPDX-License-Identifier: MIT
package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Mapping selects how a bin offset inside the plotted slice is placed on
// the horizontal pixel axis.
type Mapping int

const (
	// MappingGamma places offset i at width * (i/length)^(1/gamma). It
	// approximates a logarithmic axis and is not frequency-accurate.
	MappingGamma Mapping = iota
	// MappingLogarithmic picks a base B with B^width = length-1 and places
	// offset i at log_B(i).
	MappingLogarithmic
)

func (m Mapping) String() string {
	switch m {
	case MappingGamma:
		return "gamma"
	case MappingLogarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("Mapping(%d)", int(m))
	}
}

// ParseMapping converts a config name (case-insensitive) to a Mapping.
func ParseMapping(name string) (Mapping, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gamma":
		return MappingGamma, nil
	case "log", "logarithmic":
		return MappingLogarithmic, nil
	default:
		return MappingGamma, fmt.Errorf("unknown frequency mapping: '%s'", name)
	}
}

// Coordinates returns one pixel position per offset in [0, length).
// Positions are non-decreasing, start near 0 and end near width.
func (m Mapping) Coordinates(length int, width, gamma float64) []float64 {
	if length <= 0 {
		return []float64{}
	}
	coords := make([]float64, length)
	switch m {
	case MappingLogarithmic:
		logCoordinates(coords, width)
	default:
		gammaCoordinates(coords, width, gamma)
	}
	return coords
}

func gammaCoordinates(coords []float64, width, gamma float64) {
	length := float64(len(coords))
	exp := 1 / gamma
	for i := range coords {
		coords[i] = width * math.Pow(float64(i)/length, exp)
	}
}

func logCoordinates(coords []float64, width float64) {
	n := len(coords)
	// log(length-1) is 0 for two points and undefined for one.
	if n <= 2 {
		for i := range coords {
			if n > 1 {
				coords[i] = width * float64(i) / float64(n-1)
			}
		}
		return
	}

	base := math.Exp(math.Log(float64(n-1)) / width)
	logBase := math.Log(base)
	coords[0] = 0
	for i := 1; i < n; i++ {
		coords[i] = math.Log(float64(i)) / logBase
	}
}
