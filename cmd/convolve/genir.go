package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-convolve/dsp/signal"
	"github.com/cwbudde/algo-convolve/internal/wavio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type genIROptions struct {
	kind   string
	rt60   float64
	length float64
	delay  float64
	peak   float64
	seed   int64
}

func newGenIRCmd(a *app) *cobra.Command {
	o := &genIROptions{}

	cmd := &cobra.Command{
		Use:   "gen-ir <out.wav>",
		Short: "Write a synthetic impulse response",
		Long: `Write a synthetic impulse response for testing.

  room     exponentially decaying noise that falls 60 dB after --rt60 seconds
  impulse  a single sample after --delay seconds (convolution leaves the dry
           signal unchanged apart from the delay)`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			defer a.sync()
			return a.genIR(o, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.kind, "kind", "room", "impulse response kind (room, impulse)")
	flags.Float64Var(&o.rt60, "rt60", 1.2, "room decay time in seconds")
	flags.Float64Var(&o.length, "length", 1.5, "length in seconds")
	flags.Float64Var(&o.delay, "delay", 0, "impulse delay in seconds")
	flags.Float64Var(&o.peak, "peak", 0.9, "peak amplitude")
	flags.Int64Var(&o.seed, "seed", 1, "noise seed")
	return cmd
}

func (a *app) genIR(o *genIROptions, path string) error {
	rate := a.cfg.SampleRate
	if rate == 0 {
		rate = wavio.DefaultSampleRate
	}
	samples := int(math.Round(o.length * float64(rate)))

	g := signal.NewGenerator(signal.WithSampleRate(float64(rate)), signal.WithSeed(o.seed))

	var (
		ir  []float64
		err error
	)
	switch o.kind {
	case "room":
		ir, err = g.Room(o.rt60, samples)
	case "impulse":
		ir, err = g.Impulse(1, samples, int(math.Round(o.delay*float64(rate))))
	default:
		return fmt.Errorf("unknown impulse response kind %q", o.kind)
	}
	if err != nil {
		return err
	}

	ir, err = signal.Normalize(ir, o.peak)
	if err != nil {
		return err
	}
	if _, err := wavio.Store(path, &wavio.Signal{
		Samples:    ir,
		SampleRate: rate,
		Channels:   1,
		BitDepth:   a.cfg.BitDepth,
	}); err != nil {
		return err
	}

	a.log.Info("impulse response written",
		zap.String("out", path),
		zap.String("kind", o.kind),
		zap.Int("samples", len(ir)),
		zap.Int("sample_rate", rate))
	_, err = fmt.Fprintf(a.out, "%s: %d samples at %d Hz\n", path, len(ir), rate)
	return err
}
