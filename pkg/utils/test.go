// SPDX-License-Identifier: MIT
package utils

import (
	"encoding/binary"
	"math"
)

// Tone is one sinusoidal component of a generated signal. Amplitude is a
// fraction of full scale.
type Tone struct {
	Frequency float64
	Amplitude float64
}

// GenerateTones fills dst with the sum of tones, starting at absolute
// sample index offset so consecutive calls stay phase-continuous.
// The sum is clipped to the int16 range.
func GenerateTones(dst []int16, offset int, sampleRate float64, tones []Tone) {
	for i := range dst {
		tm := float64(offset+i) / sampleRate
		var signal float64
		for _, tone := range tones {
			signal += math.Sin(2*math.Pi*tone.Frequency*tm) * tone.Amplitude
		}
		dst[i] = clip16(signal * math.MaxInt16)
	}
}

// GenerateComplexWave returns a 440 Hz fundamental with two harmonics.
func GenerateComplexWave(size int, sampleRate float64) []int16 {
	buffer := make([]int16, size)
	GenerateTones(buffer, 0, sampleRate, []Tone{
		{Frequency: 440, Amplitude: 0.45},
		{Frequency: 880, Amplitude: 0.27},
		{Frequency: 1320, Amplitude: 0.18},
	})
	return buffer
}

func GenerateSineWave(size int, sampleRate, frequency float64) []int16 {
	buffer := make([]int16, size)
	GenerateTones(buffer, 0, sampleRate, []Tone{{Frequency: frequency, Amplitude: 0.9}})
	return buffer
}

// PCM16Bytes encodes samples as little-endian signed 16-bit PCM.
func PCM16Bytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}

func clip16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
