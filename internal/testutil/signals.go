package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DecayingNoise generates seeded noise under an exponential envelope,
// a cheap stand-in for a room impulse response.
func DecayingNoise(seed int64, length int, tau float64) []float64 {
	out := DeterministicNoise(seed, 1, length)
	for i := range out {
		out[i] *= math.Exp(-float64(i) / tau)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Interleave packs real samples into an interleaved complex buffer of n
// values (imaginary parts zero, tail zero-padded).
func Interleave(samples []float64, n int) []float64 {
	buf := make([]float64, 2*n)
	for i := 0; i < len(samples) && i < n; i++ {
		buf[2*i] = samples[i]
	}
	return buf
}

// NaiveConvolve is the textbook convolution sum, kept free of any package
// under test so it can serve as an oracle.
func NaiveConvolve(x, h []float64) []float64 {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}
	out := make([]float64, len(x)+len(h)-1)
	for n := range out {
		var sum float64
		for k := range h {
			if i := n - k; i >= 0 && i < len(x) {
				sum += x[i] * h[k]
			}
		}
		out[n] = sum
	}
	return out
}
