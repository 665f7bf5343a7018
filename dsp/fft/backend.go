package fft

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Transformer transforms interleaved complex buffers of a fixed size in place,
// following the conventions of Transform.
type Transformer interface {
	Transform(buf []float64, dir Direction) error
	Len() int
}

// Backend names a Transformer implementation.
type Backend string

const (
	// BackendRadix2 is the in-package iterative radix-2 transform.
	BackendRadix2 Backend = "radix2"
	// BackendAlgoFFT delegates to an algo-fft complex128 plan.
	BackendAlgoFFT Backend = "algofft"
)

// New returns a Transformer of size n for the given backend.
// An empty backend selects BackendRadix2.
func New(backend Backend, n int) (Transformer, error) {
	if !IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: transform size %d is not a power of two", ErrInvalidLength, n)
	}

	switch backend {
	case "", BackendRadix2:
		return Radix2{n: n}, nil
	case BackendAlgoFFT:
		return NewAlgoFFT(n)
	default:
		return nil, fmt.Errorf("fft: unknown backend %q", backend)
	}
}

// Radix2 is a Transformer backed by Transform.
type Radix2 struct {
	n int
}

// Transform implements Transformer.
func (r Radix2) Transform(buf []float64, dir Direction) error {
	if len(buf) != 2*r.n {
		return fmt.Errorf("%w: expected %d floats, got %d", ErrInvalidLength, 2*r.n, len(buf))
	}
	return Transform(buf, dir)
}

// Len returns the transform size in complex values.
func (r Radix2) Len() int { return r.n }

// AlgoFFT adapts an algo-fft plan to the interleaved, unscaled-inverse
// conventions of this package.
type AlgoFFT struct {
	n       int
	plan    *algofft.Plan[complex128]
	scratch []complex128
}

// NewAlgoFFT creates an algo-fft backed Transformer of size n.
func NewAlgoFFT(n int) (*AlgoFFT, error) {
	a := &AlgoFFT{n: n}
	if n < 2 {
		return a, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create algo-fft plan: %w", err)
	}
	a.plan = plan
	a.scratch = make([]complex128, n)
	return a, nil
}

// Transform implements Transformer.
func (a *AlgoFFT) Transform(buf []float64, dir Direction) error {
	if len(buf) != 2*a.n {
		return fmt.Errorf("%w: expected %d floats, got %d", ErrInvalidLength, 2*a.n, len(buf))
	}
	if a.plan == nil {
		return nil
	}

	for i := range a.scratch {
		a.scratch[i] = complex(buf[2*i], buf[2*i+1])
	}

	var err error
	scale := 1.0
	switch dir {
	case Forward:
		err = a.plan.Forward(a.scratch, a.scratch)
	case Inverse:
		// algo-fft normalizes its inverse by 1/n; undo that.
		err = a.plan.Inverse(a.scratch, a.scratch)
		scale = float64(a.n)
	default:
		return fmt.Errorf("fft: invalid direction %d", int(dir))
	}
	if err != nil {
		return fmt.Errorf("fft: algo-fft %s transform failed: %w", dir, err)
	}

	for i, c := range a.scratch {
		buf[2*i] = real(c) * scale
		buf[2*i+1] = imag(c) * scale
	}
	return nil
}

// Len returns the transform size in complex values.
func (a *AlgoFFT) Len() int { return a.n }

// Split copies an interleaved buffer into separate real and imaginary slices.
// re and im must hold len(buf)/2 values.
func Split(re, im, buf []float64) {
	for i := range re {
		re[i] = buf[2*i]
		im[i] = buf[2*i+1]
	}
}

// Interleave is the inverse of Split.
func Interleave(buf, re, im []float64) {
	for i := range re {
		buf[2*i] = re[i]
		buf[2*i+1] = im[i]
	}
}

// Magnitude writes |X[k]| for split spectrum parts into dst.
func Magnitude(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}
