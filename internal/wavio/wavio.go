// Package wavio loads and stores mono float signals as WAV files.
package wavio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-convolve/dsp/core"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// DefaultSampleRate is written when a signal carries no sample rate.
const DefaultSampleRate = 44100

// DefaultBitDepth is written when a signal carries no bit depth.
const DefaultBitDepth = 16

// Errors returned by Load and Store.
var (
	ErrInvalidFile = errors.New("wavio: invalid wav file")
	ErrEmptySignal = errors.New("wavio: signal has no samples")
	ErrBitDepth    = errors.New("wavio: unsupported bit depth")
	ErrInvalidRate = errors.New("wavio: invalid sample rate")
)

// Signal is a mono sample sequence plus the format it was read with.
type Signal struct {
	Samples    []float64
	SampleRate int
	// Channels is the channel count of the source file. Samples are always
	// mono; multichannel files are mixed down on load.
	Channels int
	BitDepth int
}

// Frames returns the number of samples.
func (s *Signal) Frames() int { return len(s.Samples) }

// Duration returns the playback length at SampleRate.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// Load reads a PCM WAV file and mixes it down to mono.
func Load(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	if buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d in %s", ErrInvalidRate, buf.Format.SampleRate, path)
	}

	ch := buf.Format.NumChannels
	if len(buf.Data)/ch == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySignal, path)
	}

	interleaved := make([]float64, len(buf.Data)-len(buf.Data)%ch)
	for i := range interleaved {
		interleaved[i] = float64(buf.Data[i])
	}
	mono, err := core.MixDown(interleaved, ch)
	if err != nil {
		return nil, fmt.Errorf("wavio: %s: %w", path, err)
	}

	return &Signal{
		Samples:    mono,
		SampleRate: buf.Format.SampleRate,
		Channels:   ch,
		BitDepth:   buf.SourceBitDepth,
	}, nil
}

// Store writes s as a mono PCM WAV file, creating parent directories as
// needed. Samples outside [-1, 1] are clamped; s itself is not modified.
// It returns the number of clamped samples.
func Store(path string, s *Signal) (int, error) {
	if s == nil || len(s.Samples) == 0 {
		return 0, ErrEmptySignal
	}

	rate := s.SampleRate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	if rate < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	depth := s.BitDepth
	if depth == 0 {
		depth = DefaultBitDepth
	}
	if !SupportedBitDepth(depth) {
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}

	samples := make([]float64, len(s.Samples))
	copy(samples, s.Samples)
	clipped := core.ClampSamples(samples)

	data := make([]float32, len(samples))
	for i, v := range samples {
		data[i] = float32(v)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, depth, 1, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  rate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: depth,
	}
	if err := enc.Write(buf); err != nil {
		return 0, fmt.Errorf("wavio: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("wavio: finalize %s: %w", path, err)
	}
	return clipped, nil
}

// SupportedBitDepth reports whether Store can write PCM at depth bits.
func SupportedBitDepth(depth int) bool {
	switch depth {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}
