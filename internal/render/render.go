// Package render runs the load, convolve, normalize and store pipeline for
// one or many dry/impulse-response pairs.
package render

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-convolve/dsp/buffer"
	"github.com/cwbudde/algo-convolve/dsp/conv"
	"github.com/cwbudde/algo-convolve/dsp/core"
	"github.com/cwbudde/algo-convolve/dsp/resample"
	"github.com/cwbudde/algo-convolve/internal/config"
	"github.com/cwbudde/algo-convolve/internal/wavio"
	irmeasure "github.com/cwbudde/algo-convolve/measure/ir"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// ErrJob is returned for a job with a missing path.
var ErrJob = errors.New("render: incomplete job")

// Job names the dry input, the impulse response and the output file.
type Job struct {
	Dry string `yaml:"dry"`
	IR  string `yaml:"ir"`
	Out string `yaml:"out"`
}

// Validate reports a missing path.
func (j Job) Validate() error {
	switch {
	case j.Dry == "":
		return fmt.Errorf("%w: dry path is empty", ErrJob)
	case j.IR == "":
		return fmt.Errorf("%w: ir path is empty", ErrJob)
	case j.Out == "":
		return fmt.Errorf("%w: out path is empty", ErrJob)
	}
	return nil
}

// Report describes a finished render.
type Report struct {
	Job    Job
	Method conv.Method

	DryFrames  int
	IRFrames   int
	OutFrames  int
	SampleRate int

	// Overlap-add geometry; zero for direct convolution.
	FFTLen   int
	Segments int

	// Peak is the raw convolution peak used for normalization.
	Peak    float64
	Silent  bool
	Clipped int
	// RMS of the normalized output.
	RMS float64

	// Acoustic metrics of the impulse response; RT60 is zero when the
	// response does not decay far enough to measure.
	IR irmeasure.Metrics

	Elapsed time.Duration
}

// Renderer executes jobs with a fixed configuration. It is safe for
// concurrent use; every run builds its own convolution engine.
type Renderer struct {
	cfg  *config.Config
	log  *zap.Logger
	pool *buffer.Pool
}

// New creates a Renderer. A nil logger discards all output.
func New(cfg *config.Config, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		cfg:  cfg,
		log:  log,
		pool: buffer.NewPool(),
	}
}

// Run renders a single job. Nothing is written unless both inputs load and
// the convolution succeeds.
func (r *Renderer) Run(ctx context.Context, job Job) (*Report, error) {
	start := time.Now()
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := r.log.With(zap.String("dry", job.Dry), zap.String("ir", job.IR))

	dry, err := wavio.Load(job.Dry)
	if err != nil {
		return nil, fmt.Errorf("render: load dry signal: %w", err)
	}
	logInput(log, "dry signal loaded", dry)

	ir, err := wavio.Load(job.IR)
	if err != nil {
		return nil, fmt.Errorf("render: load impulse response: %w", err)
	}
	logInput(log, "impulse response loaded", ir)
	metrics := analyzeIR(log, ir)

	rate := r.outputRate(dry)
	if dry.SampleRate != rate {
		if err := convertRate(log, "dry signal", dry, rate); err != nil {
			return nil, err
		}
	}
	if ir.SampleRate != rate {
		if err := r.matchRate(log, ir, rate); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{
		Job:        job,
		Method:     r.cfg.ConvMethod().Resolve(ir.Frames()),
		DryFrames:  dry.Frames(),
		IRFrames:   ir.Frames(),
		SampleRate: rate,
		IR:         metrics,
	}

	out, err := r.convolve(log, rep, dry.Samples, ir.Samples)
	if err != nil {
		return nil, err
	}

	rep.Peak = out.Peak
	rep.Silent = out.Silent()
	if rep.Silent {
		log.Warn("convolution result is silent, output left unscaled")
	}
	wet := out.Normalize()
	rep.OutFrames = len(wet)
	rep.RMS = floats.Norm(wet, 2) / math.Sqrt(float64(len(wet)))

	rep.Clipped, err = wavio.Store(job.Out, &wavio.Signal{
		Samples:    wet,
		SampleRate: rep.SampleRate,
		Channels:   1,
		BitDepth:   r.cfg.BitDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("render: store output: %w", err)
	}

	rep.Elapsed = time.Since(start)
	log.Info("render complete",
		zap.String("out", job.Out),
		zap.Int("samples", rep.OutFrames),
		zap.Float64("peak", rep.Peak),
		zap.Float64("rms_db", core.LinearToDB(rep.RMS)),
		zap.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

func (r *Renderer) convolve(log *zap.Logger, rep *Report, x, h []float64) (*conv.Output, error) {
	if rep.Method == conv.MethodDirect {
		log.Debug("direct convolution", zap.Int("samples", len(x)+len(h)-1))
		out, err := conv.Direct(x, h)
		if err != nil {
			return nil, fmt.Errorf("render: convolve: %w", err)
		}
		return out, nil
	}

	opts := append(r.cfg.ConvOptions(), conv.WithScratchPool(r.pool))
	oa, err := conv.NewOverlapAdd(h, opts...)
	if err != nil {
		return nil, fmt.Errorf("render: convolve: %w", err)
	}
	rep.FFTLen = oa.FFTLen()
	rep.Segments = oa.Segments(len(x))

	if oa.SegmentLen() == 1 {
		log.Warn("impulse response length is a power of two, one transform pair per sample; raise fft_len",
			zap.Int("ir_samples", oa.KernelLen()),
			zap.Int("fft_len", rep.FFTLen))
	}

	log.Debug("overlap-add convolution",
		zap.Int("fft_len", rep.FFTLen),
		zap.Int("segment_len", oa.SegmentLen()),
		zap.Int("segments", rep.Segments),
		zap.Float64("ir_gain_db", core.LinearToDB(floats.Max(oa.MagnitudeResponse()))))

	out, err := oa.Process(x)
	if err != nil {
		return nil, fmt.Errorf("render: convolve: %w", err)
	}
	return out, nil
}

// outputRate picks the configured rate, then the dry signal's rate, then
// the WAV default.
func (r *Renderer) outputRate(dry *wavio.Signal) int {
	switch {
	case r.cfg.SampleRate > 0:
		return r.cfg.SampleRate
	case dry.SampleRate > 0:
		return dry.SampleRate
	default:
		return wavio.DefaultSampleRate
	}
}

// matchRate brings ir to rate when resampling is enabled; otherwise the
// impulse response is used as is.
func (r *Renderer) matchRate(log *zap.Logger, ir *wavio.Signal, rate int) error {
	if !r.cfg.ResampleIR {
		log.Warn("sample rates differ, impulse response used as is",
			zap.Int("output_rate", rate),
			zap.Int("ir_rate", ir.SampleRate))
		return nil
	}
	return convertRate(log, "impulse response", ir, rate)
}

// convertRate resamples s to rate in place.
func convertRate(log *zap.Logger, what string, s *wavio.Signal, rate int) error {
	c, err := resample.NewForRates(float64(s.SampleRate), float64(rate),
		resample.WithQuality(resample.QualityBest))
	if err != nil {
		return fmt.Errorf("render: resample %s: %w", what, err)
	}

	out := c.Process(s.Samples)
	up, down := c.Ratio()
	log.Info(what+" resampled",
		zap.Int("from", s.SampleRate),
		zap.Int("to", rate),
		zap.String("ratio", fmt.Sprintf("%d/%d", up, down)),
		zap.Int("quality", int(c.Quality())),
		zap.Int("samples", len(out)))

	s.Samples = out
	s.SampleRate = rate
	return nil
}

func analyzeIR(log *zap.Logger, ir *wavio.Signal) irmeasure.Metrics {
	m, err := irmeasure.NewAnalyzer(float64(ir.SampleRate)).Analyze(ir.Samples)
	if err != nil {
		log.Debug("impulse response not analyzed", zap.Error(err))
		return irmeasure.Metrics{}
	}
	log.Debug("impulse response metrics",
		zap.Float64("rt60", m.RT60),
		zap.Float64("edt", m.EDT),
		zap.Float64("c80_db", m.C80),
		zap.Float64("d50", m.D50),
		zap.Float64("predelay", m.Predelay))
	return m
}

func logInput(log *zap.Logger, msg string, s *wavio.Signal) {
	log.Debug(msg,
		zap.Int("samples", s.Frames()),
		zap.Int("sample_rate", s.SampleRate),
		zap.Int("channels", s.Channels),
		zap.Int("bit_depth", s.BitDepth),
		zap.Duration("duration", s.Duration()))
}
