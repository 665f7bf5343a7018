// Package fft provides an in-place radix-2 Fast Fourier Transform over
// interleaved complex buffers.
//
// A buffer of n complex values is a []float64 of length 2n laid out as
// re0, im0, re1, im1, ... The transform size n must be a power of two.
//
// # Conventions
//
// [Forward] computes X[k] = sum x[t]·exp(-2πi·tk/n). [Inverse] flips the sign
// of the exponent and applies no scaling: Inverse(Forward(x)) == n·x. Callers
// that need a true inverse divide by n themselves.
//
// # Usage
//
//	buf := make([]float64, 2*n)
//	// fill buf[2*i] with real samples
//	if err := fft.Transform(buf, fft.Forward); err != nil {
//		return err
//	}
//
// For code that swaps transform implementations, use a [Transformer]:
//
//	t, err := fft.New(fft.BackendAlgoFFT, n)
//	err = t.Transform(buf, fft.Inverse)
//
// [DFT] is an O(n²) reference implementation with the same conventions,
// useful for verifying transforms on small sizes.
package fft
