package conv

import (
	"github.com/cwbudde/algo-convolve/dsp/buffer"
	"github.com/cwbudde/algo-convolve/dsp/fft"
)

// Option configures an OverlapAdd engine.
type Option func(*config)

type config struct {
	fftLen  int
	backend fft.Backend
	pool    *buffer.Pool
}

// WithFFTLen requests a minimum transform size. n must be a power of two;
// sizes below the one the impulse response needs are raised to it.
// Larger sizes mean longer segments and fewer transforms.
func WithFFTLen(n int) Option {
	return func(c *config) {
		c.fftLen = n
	}
}

// WithBackend selects the FFT implementation. The default is
// fft.BackendRadix2.
func WithBackend(b fft.Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithScratchPool draws the padded copy of the dry signal from p instead of
// allocating it per run.
func WithScratchPool(p *buffer.Pool) Option {
	return func(c *config) {
		c.pool = p
	}
}

func applyOptions(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
