package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-convolve/dsp/conv"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Method != "auto" || cfg.Backend != "radix2" || cfg.BitDepth != 16 || !cfg.ResampleIR {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ConvMethod() != conv.MethodAuto {
		t.Fatalf("ConvMethod() = %q", cfg.ConvMethod())
	}
	if n := len(cfg.ConvOptions()); n != 1 {
		t.Fatalf("ConvOptions() returned %d options, want 1", n)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CONVOLVE_METHOD", "direct")
	t.Setenv("CONVOLVE_BIT_DEPTH", "24")
	t.Setenv("CONVOLVE_WORKERS", "3")
	t.Setenv("CONVOLVE_RESAMPLE_IR", "false")

	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Method != "direct" || cfg.BitDepth != 24 || cfg.Workers != 3 || cfg.ResampleIR {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convolve.yaml")
	yaml := "method: overlap-add\nbackend: algofft\nfft_len: 8192\nsample_rate: 48000\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	v := NewViper()
	if err := ReadFile(v, path); err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.ConvMethod() != conv.MethodOverlapAdd || cfg.Backend != "algofft" || cfg.FFTLen != 8192 || cfg.SampleRate != 48000 {
		t.Fatalf("file not applied: %+v", cfg)
	}
	if n := len(cfg.ConvOptions()); n != 2 {
		t.Fatalf("ConvOptions() returned %d options, want 2", n)
	}
	// Unset keys keep their defaults.
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestReadFileMissing(t *testing.T) {
	if err := ReadFile(NewViper(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := ReadFile(NewViper(), ""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Method: "auto", Backend: "radix2", BitDepth: 16, LogLevel: "info"}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown method", func(c *Config) { c.Method = "fastest" }},
		{"unknown backend", func(c *Config) { c.Backend = "fftw" }},
		{"fft_len not power of two", func(c *Config) { c.FFTLen = 1000 }},
		{"negative fft_len", func(c *Config) { c.FFTLen = -8 }},
		{"bit depth", func(c *Config) { c.BitDepth = 8 }},
		{"negative sample rate", func(c *Config) { c.SampleRate = -1 }},
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("baseline config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
