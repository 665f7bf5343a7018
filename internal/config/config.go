// Package config loads render settings from defaults, an optional YAML
// file, CONVOLVE_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-convolve/dsp/conv"
	"github.com/cwbudde/algo-convolve/dsp/fft"
	"github.com/cwbudde/algo-convolve/internal/logging"
	"github.com/cwbudde/algo-convolve/internal/wavio"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. CONVOLVE_METHOD.
const EnvPrefix = "CONVOLVE"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings for a render run.
type Config struct {
	// Engine settings
	Method  string `mapstructure:"method"`
	Backend string `mapstructure:"backend"`
	FFTLen  int    `mapstructure:"fft_len"`

	// Output format. A zero SampleRate keeps the dry signal's rate; any other
	// rate converts the dry signal before convolution.
	BitDepth   int `mapstructure:"bit_depth"`
	SampleRate int `mapstructure:"sample_rate"`

	// ResampleIR converts an impulse response to the output rate when the
	// two differ.
	ResampleIR bool `mapstructure:"resample_ir"`

	// Application settings
	LogLevel string `mapstructure:"log_level"`
	Verbose  bool   `mapstructure:"verbose"`
	Workers  int    `mapstructure:"workers"`
}

// NewViper returns a viper instance with defaults and environment binding
// in place.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults sets default configuration values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("method", string(conv.MethodAuto))
	v.SetDefault("backend", string(fft.BackendRadix2))
	v.SetDefault("fft_len", 0)
	v.SetDefault("bit_depth", wavio.DefaultBitDepth)
	v.SetDefault("sample_rate", 0)
	v.SetDefault("resample_ir", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("verbose", false)
	v.SetDefault("workers", 0)
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field for a supported value.
func (c *Config) Validate() error {
	if _, err := conv.ParseMethod(c.Method); err != nil {
		return fmt.Errorf("%w: method: %w", ErrInvalid, err)
	}

	switch fft.Backend(c.Backend) {
	case "", fft.BackendRadix2, fft.BackendAlgoFFT:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}

	if c.FFTLen < 0 || (c.FFTLen != 0 && !fft.IsPowerOf2(c.FFTLen)) {
		return fmt.Errorf("%w: fft_len %d is not a power of two", ErrInvalid, c.FFTLen)
	}

	if !wavio.SupportedBitDepth(c.BitDepth) {
		return fmt.Errorf("%w: bit_depth %d (want 16, 24 or 32)", ErrInvalid, c.BitDepth)
	}

	if c.SampleRate < 0 {
		return fmt.Errorf("%w: sample_rate must not be negative", ErrInvalid)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}

	return nil
}

// ConvMethod returns the parsed convolution method.
func (c *Config) ConvMethod() conv.Method {
	m, err := conv.ParseMethod(c.Method)
	if err != nil {
		return conv.MethodAuto
	}
	return m
}

// ConvOptions translates engine settings into overlap-add options.
func (c *Config) ConvOptions() []conv.Option {
	opts := []conv.Option{conv.WithBackend(fft.Backend(c.Backend))}
	if c.FFTLen > 0 {
		opts = append(opts, conv.WithFFTLen(c.FFTLen))
	}
	return opts
}
