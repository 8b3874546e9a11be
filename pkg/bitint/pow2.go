// SPDX-License-Identifier: MIT
/*
Package bitint holds the power-of-two arithmetic used to size audio
frames for the FFT.

A capture callback delivers frameSize samples, which rarely is a power
of two (2000 at 44.1 kHz is a common choice). The transform needs a
power-of-two length, so frames are zero-padded up to NextPowerOfTwo:

	padded := bitint.NextPowerOfTwo(2000) // 2048
	missing := bitint.Padding(2000)       // 48 samples

NextPowerOfTwo works on size-1 so exact powers are returned unchanged:
for 8, bits.Len64(7) = 3 and 1<<3 = 8. Without the subtraction,
bits.Len64(8) = 4 would double the input.
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of two >= size.
// Sizes <= 0 return 1.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return int(1 << bits.Len64(uint64(size-1)))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Padding returns the number of zero samples needed to extend size to
// NextPowerOfTwo(size).
func Padding(size int) int {
	if size <= 0 {
		return 0
	}
	return NextPowerOfTwo(size) - size
}
