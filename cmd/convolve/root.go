package main

import (
	"io"

	"github.com/cwbudde/algo-convolve/internal/config"
	"github.com/cwbudde/algo-convolve/internal/logging"
	"github.com/cwbudde/algo-convolve/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string
	out        io.Writer

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: config.NewViper(), out: out}

	root := &cobra.Command{
		Use:   "convolve <dry.wav> <ir.wav> <out.wav>",
		Short: "Convolution reverb for WAV files",
		Long: `Convolve a dry recording with an impulse response and write the
normalized result. Short impulse responses are convolved directly, longer
ones with segmented overlap-add FFT convolution.

Settings come from defaults, an optional YAML file (--config), CONVOLVE_*
environment variables and flags, in increasing priority.`,
		Args:              cobra.ExactArgs(3),
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.sync()
			rep, err := render.New(a.cfg, a.log).Run(cmd.Context(), render.Job{
				Dry: args[0],
				IR:  args[1],
				Out: args[2],
			})
			if err != nil {
				return err
			}
			return render.WriteSummary(a.out, rep)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.String("method", "auto", "convolution method (auto, direct, overlap-add)")
	flags.String("backend", "radix2", "FFT backend for overlap-add (radix2, algofft)")
	flags.Int("fft-len", 0, "minimum FFT length, a power of two (0 = smallest that fits the IR)")
	flags.Int("bit-depth", 16, "output PCM bit depth (16, 24, 32)")
	flags.Int("sample-rate", 0, "output sample rate; inputs are resampled to it (0 = dry signal's rate)")
	flags.Bool("resample-ir", true, "resample the impulse response to the output rate")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Int("workers", 0, "concurrent batch jobs (0 = GOMAXPROCS)")
	bindFlags(a.v, flags)

	root.AddCommand(newBatchCmd(a), newGenIRCmd(a))
	return root
}

// bindFlags maps dashed flag names onto the underscore config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	keys := map[string]string{
		"method":      "method",
		"backend":     "backend",
		"fft-len":     "fft_len",
		"bit-depth":   "bit_depth",
		"sample-rate": "sample_rate",
		"resample-ir": "resample_ir",
		"log-level":   "log_level",
		"verbose":     "verbose",
		"workers":     "workers",
	}
	for flag, key := range keys {
		// Lookup cannot fail for flags registered above.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// setup resolves the configuration and logger once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.Verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	if a.configFile != "" {
		log.Debug("using config file", zap.String("path", a.configFile))
	}
	return nil
}

func (a *app) sync() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}
