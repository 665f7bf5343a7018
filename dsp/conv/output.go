package conv

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MinPeak seeds every peak search: the smallest normal float64. A peak that
// never rises above it marks a silent signal.
const MinPeak = 0x1p-1022

// Output is the raw result of a convolution run.
type Output struct {
	// Samples holds exactly len(dry)+len(ir)-1 values.
	Samples []float64
	// Peak is the largest absolute sample value, at least MinPeak.
	Peak float64
}

// Silent reports whether the result carries no signal worth scaling.
func (o *Output) Silent() bool {
	return !(o.Peak > MinPeak)
}

// Normalize scales Samples in place so the peak magnitude becomes 1 and
// returns them. Silent outputs are returned unchanged.
func (o *Output) Normalize() []float64 {
	return Normalize(o.Samples, o.Peak)
}

// PeakAbs returns the largest absolute value in samples, seeded at MinPeak.
func PeakAbs(samples []float64) float64 {
	if len(samples) == 0 {
		return MinPeak
	}
	return max(MinPeak, floats.Norm(samples, math.Inf(1)))
}

// Normalize divides samples in place by peak and returns them.
// A peak that is NaN, infinite, or not above MinPeak leaves samples
// untouched, so silence stays silent.
func Normalize(samples []float64, peak float64) []float64 {
	if !(peak > MinPeak) || math.IsInf(peak, 0) {
		return samples
	}
	for i := range samples {
		samples[i] /= peak
	}
	return samples
}
