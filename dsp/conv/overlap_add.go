package conv

import (
	"fmt"

	"github.com/cwbudde/algo-convolve/dsp/buffer"
	"github.com/cwbudde/algo-convolve/dsp/core"
	"github.com/cwbudde/algo-convolve/dsp/fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// OverlapAdd implements FFT-based convolution using the overlap-add method.
//
// The algorithm:
// 1. Transform the zero-padded kernel once (the frequency response)
// 2. Cut the dry signal into segments of SegmentLen samples
// 3. Convolve each segment in the frequency domain
// 4. Add the M-1 sample tail of each segment into the start of the next
type OverlapAdd struct {
	kernelLen int
	fftLen    int
	segLen    int

	tr   fft.Transformer
	pool *buffer.Pool

	// Frequency response, fftLen bins. Read-only after setup.
	freqRe []float64
	freqIm []float64

	// Scratch, reused across segments and runs.
	work    []float64 // 2*fftLen interleaved complex values
	re, im  []float64
	ac, bd  []float64
	ad, bc  []float64
	segOut  []float64 // fftLen real samples of the current segment
	overlap []float64 // kernelLen-1 samples carried into the next segment
}

// NewOverlapAdd creates an overlap-add convolver for the given impulse
// response. The frequency response is computed here, exactly once.
func NewOverlapAdd(kernel []float64, opts ...Option) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	cfg := applyOptions(opts)
	m := len(kernel)
	if m > buffer.MaxLen/2 {
		return nil, fmt.Errorf("%w: kernel of %d samples", ErrAllocation, m)
	}

	fftLen := max(2, fft.NextPowerOf2(m))
	if cfg.fftLen != 0 {
		if !fft.IsPowerOf2(cfg.fftLen) {
			return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidFFTLen, cfg.fftLen)
		}
		fftLen = max(fftLen, cfg.fftLen)
	}
	if 2*fftLen > buffer.MaxLen {
		return nil, fmt.Errorf("%w: transform of %d bins", ErrAllocation, fftLen)
	}

	tr, err := fft.New(cfg.backend, fftLen)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create transform: %w", err)
	}

	oa := &OverlapAdd{
		kernelLen: m,
		fftLen:    fftLen,
		segLen:    fftLen + 1 - m,
		tr:        tr,
		pool:      cfg.pool,
		freqRe:    make([]float64, fftLen),
		freqIm:    make([]float64, fftLen),
		work:      make([]float64, 2*fftLen),
		re:        make([]float64, fftLen),
		im:        make([]float64, fftLen),
		ac:        make([]float64, fftLen),
		bd:        make([]float64, fftLen),
		ad:        make([]float64, fftLen),
		bc:        make([]float64, fftLen),
		segOut:    make([]float64, fftLen),
		overlap:   make([]float64, m-1),
	}

	oa.load(kernel)
	if err := oa.tr.Transform(oa.work, fft.Forward); err != nil {
		return nil, fmt.Errorf("conv: kernel transform failed: %w", err)
	}
	fft.Split(oa.freqRe, oa.freqIm, oa.work)

	return oa, nil
}

// Process convolves x with the kernel and returns len(x)+KernelLen()-1
// samples. x is not modified.
func (oa *OverlapAdd) Process(x []float64) (*Output, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	outLen, err := outputLen(len(x), oa.kernelLen)
	if err != nil {
		return nil, err
	}

	dry, release, err := oa.paddedInput(x)
	if err != nil {
		return nil, err
	}
	defer release()

	acc := buffer.New(0)
	if err := acc.Reserve(dry.Len() + len(oa.overlap)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	core.Zero(oa.overlap)

	samples := dry.Samples()
	for start := 0; start < len(samples); start += oa.segLen {
		if err := oa.processSegment(samples[start : start+oa.segLen]); err != nil {
			return nil, err
		}
		if err := acc.Append(oa.segOut[:oa.segLen]...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
		}
	}

	if err := acc.Append(oa.overlap...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	// Drop the convolution of the zero padding.
	acc.Truncate(outLen)

	out := acc.Samples()
	return &Output{Samples: out, Peak: PeakAbs(out)}, nil
}

// processSegment convolves one segment of SegmentLen samples, folds in the
// pending overlap and leaves the segment's output in segOut. The new tail is
// saved to the overlap buffer.
func (oa *OverlapAdd) processSegment(seg []float64) error {
	oa.load(seg)
	if err := oa.tr.Transform(oa.work, fft.Forward); err != nil {
		return fmt.Errorf("conv: segment transform failed: %w", err)
	}

	fft.Split(oa.re, oa.im, oa.work)

	// (a+bi)(c+di) = (ac-bd) + (ad+bc)i
	vecmath.MulBlock(oa.ac, oa.re, oa.freqRe)
	vecmath.MulBlock(oa.bd, oa.im, oa.freqIm)
	vecmath.MulBlock(oa.ad, oa.re, oa.freqIm)
	vecmath.MulBlock(oa.bc, oa.im, oa.freqRe)
	floats.SubTo(oa.re, oa.ac, oa.bd)
	floats.AddTo(oa.im, oa.ad, oa.bc)

	fft.Interleave(oa.work, oa.re, oa.im)
	if err := oa.tr.Transform(oa.work, fft.Inverse); err != nil {
		return fmt.Errorf("conv: segment inverse transform failed: %w", err)
	}

	scale := 1 / float64(oa.fftLen)
	for i := range oa.segOut {
		oa.segOut[i] = oa.work[2*i] * scale
	}

	if len(oa.overlap) > 0 {
		floats.Add(oa.segOut[:len(oa.overlap)], oa.overlap)
		copy(oa.overlap, oa.segOut[oa.segLen:])
	}
	return nil
}

// load writes samples into the real parts of the work buffer and zeroes
// everything else.
func (oa *OverlapAdd) load(samples []float64) {
	core.Zero(oa.work)
	for i, v := range samples {
		oa.work[2*i] = v
	}
}

// paddedInput copies x into a buffer zero-padded to a whole number of
// segments. The returned release func hands pooled buffers back.
func (oa *OverlapAdd) paddedInput(x []float64) (*buffer.Buffer, func(), error) {
	var (
		dry     *buffer.Buffer
		release = func() {}
	)
	if oa.pool != nil {
		b, err := oa.pool.Get(0)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		dry = b
		release = func() { oa.pool.Put(b) }
	} else {
		dry = buffer.New(0)
	}

	if err := dry.Reserve(len(x) + oa.segLen); err != nil {
		release()
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if err := dry.Load(x); err != nil {
		release()
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if _, err := dry.PadToMultiple(oa.segLen); err != nil {
		release()
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return dry, release, nil
}

// FFTLen returns the transform size in complex bins.
func (oa *OverlapAdd) FFTLen() int { return oa.fftLen }

// SegmentLen returns the number of dry samples consumed per segment.
func (oa *OverlapAdd) SegmentLen() int { return oa.segLen }

// KernelLen returns the impulse response length.
func (oa *OverlapAdd) KernelLen() int { return oa.kernelLen }

// Segments returns how many segments a dry signal of n samples is cut into.
func (oa *OverlapAdd) Segments(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + oa.segLen - 1) / oa.segLen
}

// MagnitudeResponse returns |H[k]| for all FFTLen bins of the kernel.
func (oa *OverlapAdd) MagnitudeResponse() []float64 {
	mag := make([]float64, oa.fftLen)
	fft.Magnitude(mag, oa.freqRe, oa.freqIm)
	return mag
}
