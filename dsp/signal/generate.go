package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-convolve/dsp/core"
)

// DefaultSampleRate is used when no sample rate is configured.
const DefaultSampleRate = 44100.0

// Generator creates deterministic test signals and synthetic impulse
// responses.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sr float64) Option {
	return func(g *Generator) {
		g.sampleRate = sr
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: DefaultSampleRate,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the configured sample rate.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed changes the noise seed for subsequent calls.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.sampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.sampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Impulse generates a single sample of the given amplitude at delay.
func (g *Generator) Impulse(amplitude float64, samples, delay int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if delay < 0 || delay >= samples {
		return nil, fmt.Errorf("impulse delay out of range [0,%d): %d", samples, delay)
	}
	out := make([]float64, samples)
	out[delay] = amplitude
	return out, nil
}

// Room generates a synthetic room impulse response: white noise under an
// exponential envelope that falls by 60 dB after rt60 seconds. The first
// sample is a unit direct-path impulse.
func (g *Generator) Room(rt60 float64, samples int) ([]float64, error) {
	if rt60 <= 0 {
		return nil, fmt.Errorf("room rt60 must be > 0: %f", rt60)
	}
	if g.sampleRate <= 0 {
		return nil, fmt.Errorf("room sample rate must be > 0: %f", g.sampleRate)
	}
	out, err := g.WhiteNoise(1, samples)
	if err != nil {
		return nil, err
	}

	dbPerSample := -60 / (rt60 * g.sampleRate)
	for i := range out {
		out[i] *= core.DBToLinear(dbPerSample * float64(i))
	}
	out[0] = 1
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
