package fft

import (
	"fmt"
	"math"
)

// DFT computes the same transform as Transform by direct summation in O(n²).
// Unlike Transform, n need not be a power of two.
func DFT(buf []float64, dir Direction) error {
	if len(buf) < 2 || len(buf)%2 != 0 {
		return fmt.Errorf("%w: %d floats is not an even, non-zero count", ErrInvalidLength, len(buf))
	}
	if dir != Forward && dir != Inverse {
		return fmt.Errorf("fft: invalid direction %d", int(dir))
	}

	n := len(buf) / 2
	out := make([]float64, len(buf))
	omega := -float64(dir) * 2 * math.Pi / float64(n)

	for k := 0; k < n; k++ {
		var re, im float64
		for t := 0; t < n; t++ {
			// Reduce tk mod n first so large products keep full angle precision.
			s, c := math.Sincos(omega * float64((t*k)%n))
			xr, xi := buf[2*t], buf[2*t+1]
			re += xr*c - xi*s
			im += xr*s + xi*c
		}
		out[2*k] = re
		out[2*k+1] = im
	}

	copy(buf, out)
	return nil
}
