// SPDX-License-Identifier: MIT
package analysis

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"spectrum/internal/log"
	"spectrum/pkg/bitint"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// WindowFunc defines the type for selecting an FFT window function.
type WindowFunc int

// Enum for available window functions.
const (
	BartlettHann WindowFunc = iota
	Blackman
	BlackmanNuttall
	Hann
	Hamming
	Lanczos
	Nuttall
)

var windowNames = [...]string{
	BartlettHann:    "bartletthann",
	Blackman:        "blackman",
	BlackmanNuttall: "blackmannuttall",
	Hann:            "hann",
	Hamming:         "hamming",
	Lanczos:         "lanczos",
	Nuttall:         "nuttall",
}

func (w WindowFunc) String() string {
	if w >= 0 && int(w) < len(windowNames) {
		return windowNames[w]
	}
	return fmt.Sprintf("WindowFunc(%d)", int(w))
}

// pcm16Scale normalizes signed 16-bit samples into [-1.0, 1.0).
const pcm16Scale = 1.0 / 32768.0

// Transformer turns one padded little-endian 16-bit PCM frame into a
// magnitude spectrum of size/2 bins.
//
// The windowed input and complex output buffers are reused between calls,
// so a Transformer must only be used from one goroutine. The returned
// spectrum is freshly allocated and owned by the caller.
type Transformer struct {
	fft        *fourier.FFT
	size       int
	sampleRate float64
	window     []float64
	input      []float64
	coeffs     []complex128
}

// NewTransformer prepares a real FFT of the given power-of-two size with
// precomputed window coefficients.
func NewTransformer(size int, sampleRate float64, windowType WindowFunc) (*Transformer, error) {
	if !bitint.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("fft size must be a power of 2, got %d", size)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %f", sampleRate)
	}

	coeffs := make([]float64, size)
	applyWindow(coeffs, windowType)

	log.Debugf("Analysis: Initializing Transformer (Size: %d, SampleRate: %.1f Hz, Window: %v)", size, sampleRate, windowType)

	return &Transformer{
		fft:        fourier.NewFFT(size),
		size:       size,
		sampleRate: sampleRate,
		window:     coeffs,
		input:      make([]float64, size),
		coeffs:     make([]complex128, size/2+1),
	}, nil
}

// Transform windows the frame, runs the FFT and returns 2|X_k|/N for
// k in [0, size/2). The Nyquist coefficient is dropped.
func (t *Transformer) Transform(frame []byte) ([]float64, error) {
	if len(frame) != t.size*2 {
		return nil, fmt.Errorf("frame length %d bytes does not match fft size %d samples", len(frame), t.size)
	}

	for i := range t.input {
		sample := int16(binary.LittleEndian.Uint16(frame[i*2:]))
		t.input[i] = float64(sample) * pcm16Scale * t.window[i]
	}

	t.fft.Coefficients(t.coeffs, t.input)

	scale := 2 / float64(t.size)
	spectrum := make([]float64, t.size/2)
	for i := range spectrum {
		spectrum[i] = cmplx.Abs(t.coeffs[i]) * scale
	}
	return spectrum, nil
}

// Size returns the transform length in samples.
func (t *Transformer) Size() int { return t.size }

// Bins returns the spectrum length produced by Transform.
func (t *Transformer) Bins() int { return t.size / 2 }

// FrequencyForBin returns the center frequency (Hz) of bin i, 0 when out
// of range.
func (t *Transformer) FrequencyForBin(i int) float64 {
	if i < 0 || i >= t.Bins() {
		return 0
	}
	return float64(i) * t.sampleRate / float64(t.size)
}

// BinForFrequency returns the bin whose center is nearest hz.
func (t *Transformer) BinForFrequency(hz float64) int {
	bin := int(math.Round(hz * float64(t.size) / t.sampleRate))
	return min(max(bin, 0), t.Bins()-1)
}

// ParseWindowFunc converts a string name (case-insensitive) to a WindowFunc
// enum, returns Blackman and an error if the name is unknown.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "blackman":
		return Blackman, nil
	case "bartletthann":
		return BartlettHann, nil
	case "blackmannuttall":
		return BlackmanNuttall, nil
	case "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "lanczos":
		return Lanczos, nil
	case "nuttall":
		return Nuttall, nil
	default:
		return Blackman, fmt.Errorf("unknown FFT window function name: '%s'", name)
	}
}

// applyWindow fills coeffs with the selected window. gonum's window
// functions scale in place, so the slice starts at 1.
func applyWindow(coeffs []float64, windowType WindowFunc) {
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	switch windowType {
	case BartlettHann:
		window.BartlettHann(coeffs)
	case Blackman:
		// 0.42/0.5/0.08, the alpha = 0.16 Blackman.
		window.Blackman(coeffs)
	case BlackmanNuttall:
		window.BlackmanNuttall(coeffs)
	case Hann:
		window.Hann(coeffs)
	case Hamming:
		window.Hamming(coeffs)
	case Lanczos:
		window.Lanczos(coeffs)
	case Nuttall:
		window.Nuttall(coeffs)
	default:
		log.Warnf("Analysis: Unknown window function type %d, defaulting to Blackman", windowType)
		window.Blackman(coeffs)
	}
}
