package buffer

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-convolve/dsp/core"
)

// MaxLen is the largest sample count a Buffer will allocate.
const MaxLen = math.MaxInt / 8

// ErrTooLarge is returned when a requested length cannot be allocated.
var ErrTooLarge = errors.New("buffer: requested length too large")

// Buffer wraps a float64 slice with reuse-friendly, growable semantics.
// DSP functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Reserve ensures capacity is at least n, preserving existing data.
func (b *Buffer) Reserve(n int) error {
	if n < 0 || n > MaxLen {
		return fmt.Errorf("%w: %d samples", ErrTooLarge, n)
	}
	if n <= cap(b.samples) {
		return nil
	}
	grown := make([]float64, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
	return nil
}

// Resize sets the length to n, reusing existing capacity when possible.
// Elements beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) error {
	if n < 0 {
		n = 0
	}
	if err := b.Reserve(n); err != nil {
		return err
	}

	oldLen := len(b.samples)
	b.samples = b.samples[:n]
	// Reused capacity may still hold samples from an earlier run.
	if n > oldLen {
		core.Zero(b.samples[oldLen:])
	}
	return nil
}

// Load replaces the contents with a copy of src.
func (b *Buffer) Load(src []float64) error {
	if err := b.Resize(0); err != nil {
		return err
	}
	return b.Append(src...)
}

// Append adds samples to the end, growing capacity geometrically.
func (b *Buffer) Append(src ...float64) error {
	need := len(b.samples) + len(src)
	if need > cap(b.samples) {
		if err := b.Reserve(max(need, 2*cap(b.samples))); err != nil {
			return err
		}
	}
	b.samples = append(b.samples, src...)
	return nil
}

// PadToMultiple zero-extends the buffer so its length is a multiple of
// block and returns the number of samples added.
func (b *Buffer) PadToMultiple(block int) (int, error) {
	if block <= 0 {
		return 0, fmt.Errorf("buffer: block must be positive, got %d", block)
	}
	rem := len(b.samples) % block
	if rem == 0 && len(b.samples) > 0 {
		return 0, nil
	}
	added := block - rem
	if err := b.Resize(len(b.samples) + added); err != nil {
		return 0, err
	}
	return added, nil
}

// Truncate shortens the buffer to n samples. It is a no-op if n >= Len().
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(b.samples) {
		b.samples = b.samples[:n]
	}
}

