package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-convolve/dsp/buffer"
	"gonum.org/v1/gonum/floats"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput    = errors.New("conv: empty input")
	ErrEmptyKernel   = errors.New("conv: empty kernel")
	ErrAllocation    = errors.New("conv: cannot allocate buffer")
	ErrInvalidFFTLen = errors.New("conv: invalid FFT length")
	ErrUnknownMethod = errors.New("conv: unknown method")
)

// DirectThreshold is the longest impulse response MethodAuto convolves
// directly.
const DirectThreshold = 64

// Method selects a convolution engine.
type Method string

const (
	// MethodAuto picks Direct or OverlapAdd from the impulse response length.
	MethodAuto Method = "auto"
	// MethodDirect always uses time-domain convolution.
	MethodDirect Method = "direct"
	// MethodOverlapAdd always uses segmented FFT convolution.
	MethodOverlapAdd Method = "overlap-add"
)

// ParseMethod converts a configuration string into a Method.
// An empty string selects MethodAuto.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case "":
		return MethodAuto, nil
	case MethodAuto, MethodDirect, MethodOverlapAdd:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Resolve returns the concrete engine MethodAuto would use for an impulse
// response of kernelLen samples. Other methods are returned unchanged.
func (m Method) Resolve(kernelLen int) Method {
	if m != MethodAuto {
		return m
	}
	if kernelLen <= DirectThreshold {
		return MethodDirect
	}
	return MethodOverlapAdd
}

// Convolve convolves x with the impulse response h using the given method.
// Options apply to the overlap-add engine only.
func Convolve(x, h []float64, method Method, opts ...Option) (*Output, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(h) == 0 {
		return nil, ErrEmptyKernel
	}

	switch method.Resolve(len(h)) {
	case MethodDirect:
		return Direct(x, h)
	case MethodOverlapAdd:
		oa, err := NewOverlapAdd(h, opts...)
		if err != nil {
			return nil, err
		}
		return oa.Process(x)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, string(method))
	}
}

// Direct performs time-domain linear convolution of x and h.
// The result holds len(x)+len(h)-1 samples.
//
// This is an O(N*M) algorithm suitable for short kernels.
// For longer kernels, use OverlapAdd.
func Direct(x, h []float64) (*Output, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(h) == 0 {
		return nil, ErrEmptyKernel
	}

	n, err := outputLen(len(x), len(h))
	if err != nil {
		return nil, err
	}

	dst := make([]float64, n)
	peak := DirectTo(dst, x, h)
	return &Output{Samples: dst, Peak: peak}, nil
}

// DirectTo performs direct convolution into a pre-allocated destination and
// returns the absolute peak of the result. dst must hold at least
// len(x)+len(h)-1 samples; only that prefix is written.
func DirectTo(dst, x, h []float64) float64 {
	if len(x) == 0 || len(h) == 0 {
		return MinPeak
	}

	m := len(h)
	dst = dst[:len(x)+m-1]
	for i := range dst {
		dst[i] = 0
	}

	// Each dry sample adds a scaled copy of h starting at its own index.
	for i, xi := range x {
		floats.AddScaled(dst[i:i+m], xi, h)
	}
	return PeakAbs(dst)
}

func outputLen(n, m int) (int, error) {
	if n > buffer.MaxLen-m+1 {
		return 0, fmt.Errorf("%w: output of %d+%d-1 samples", ErrAllocation, n, m)
	}
	return n + m - 1, nil
}
