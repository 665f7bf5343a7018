// Package conv computes the linear convolution of a dry signal with an
// impulse response.
//
// Two engines produce the same N+M-1 output samples:
//
//   - [Direct]: the O(N*M) time-domain sum, exact and simplest for short
//     impulse responses.
//   - [OverlapAdd]: segmented FFT convolution. The impulse response is
//     transformed once; the dry signal is cut into segments of
//     L = fftLen + 1 - M samples that are convolved in the frequency domain
//     and stitched back together by adding each segment's M-1 sample tail
//     into the next.
//
// Both report the absolute peak of the raw result in [Output], which
// [Normalize] uses to scale the signal into [-1, 1].
//
// # Usage
//
//	out, err := conv.Convolve(dry, ir, conv.MethodAuto)
//	if err != nil {
//		return err
//	}
//	wet := out.Normalize()
//
// For repeated runs with the same impulse response, build the engine once:
//
//	oa, err := conv.NewOverlapAdd(ir, conv.WithBackend(fft.BackendAlgoFFT))
//	out, err := oa.Process(dry)
//
// # Algorithm Selection
//
// [MethodAuto] uses direct convolution for impulse responses of up to
// [DirectThreshold] samples and overlap-add above that. The crossover was
// measured at roughly 64-128 samples for a 4096-sample signal.
//
// An OverlapAdd keeps per-run scratch state and must not be shared between
// goroutines. Build one per goroutine; [WithScratchPool] lets them share
// padded-input storage.
package conv
