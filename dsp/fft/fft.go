package fft

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLength is returned when a buffer is not 2n floats long with n a
// power of two.
var ErrInvalidLength = errors.New("fft: invalid buffer length")

// Direction selects the forward or inverse transform.
type Direction int

const (
	// Forward transforms time-domain samples into a spectrum.
	Forward Direction = 1
	// Inverse transforms a spectrum back into (n-times scaled) samples.
	Inverse Direction = -1
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Transform replaces buf with its discrete Fourier transform (dir == Forward)
// or its unscaled inverse (dir == Inverse).
//
// buf holds n interleaved complex values (len(buf) == 2n) and n must be a
// power of two.
func Transform(buf []float64, dir Direction) error {
	if err := checkLen(len(buf)); err != nil {
		return err
	}
	if dir != Forward && dir != Inverse {
		return fmt.Errorf("fft: invalid direction %d", int(dir))
	}

	TransformUnchecked(buf, dir)
	return nil
}

// TransformUnchecked is Transform without argument validation.
// len(buf)/2 must be a power of two; the result is undefined otherwise.
func TransformUnchecked(buf []float64, dir Direction) {
	n := len(buf)
	if n <= 2 {
		return
	}

	bitReverse(buf)
	butterflies(buf, dir)
}

// bitReverse moves the complex value at bit-reversed index j to position i.
func bitReverse(buf []float64) {
	n := len(buf)
	half := n >> 1

	j := 0
	for i := 0; i < n; i += 2 {
		if j > i {
			buf[j], buf[i] = buf[i], buf[j]
			buf[j+1], buf[i+1] = buf[i+1], buf[j+1]
		}

		m := half
		for m >= 2 && j >= m {
			j -= m
			m >>= 1
		}
		j += m
	}
}

// butterflies runs the Danielson-Lanczos passes. Twiddles are advanced with
// the half-angle recurrence so sin is evaluated twice per stage only.
func butterflies(buf []float64, dir Direction) {
	n := len(buf)
	sign := -float64(dir)

	for mmax := 2; mmax < n; mmax <<= 1 {
		istep := mmax << 1
		theta := sign * (2 * math.Pi / float64(mmax))

		wtemp := math.Sin(0.5 * theta)
		wpr := -2.0 * wtemp * wtemp
		wpi := math.Sin(theta)
		wr, wi := 1.0, 0.0

		for m := 0; m < mmax; m += 2 {
			for i := m; i < n; i += istep {
				j := i + mmax
				tempr := wr*buf[j] - wi*buf[j+1]
				tempi := wr*buf[j+1] + wi*buf[j]
				buf[j] = buf[i] - tempr
				buf[j+1] = buf[i+1] - tempi
				buf[i] += tempr
				buf[i+1] += tempi
			}

			wtemp = wr
			wr = wtemp*wpr - wi*wpi + wr
			wi = wi*wpr + wtemp*wpi + wi
		}
	}
}

func checkLen(floats int) error {
	if floats < 2 || floats%2 != 0 {
		return fmt.Errorf("%w: %d floats is not an even, non-zero count", ErrInvalidLength, floats)
	}
	if !IsPowerOf2(floats / 2) {
		return fmt.Errorf("%w: transform size %d is not a power of two", ErrInvalidLength, floats/2)
	}
	return nil
}

// NextPowerOf2 returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
