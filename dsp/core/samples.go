package core

import "errors"

// ErrChannelCount is returned when interleaved data does not divide evenly
// into the requested number of channels.
var ErrChannelCount = errors.New("core: invalid channel count")

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// ClampSamples limits every sample to the full-scale range [-1, 1] in place
// and returns how many samples were out of range.
func ClampSamples(buf []float64) int {
	clipped := 0
	for i, v := range buf {
		c := Clamp(v, -1, 1)
		if c != v {
			clipped++
			buf[i] = c
		}
	}
	return clipped
}

// MixDown averages interleaved frames of the given channel count into a
// mono signal. A single channel is copied.
func MixDown(interleaved []float64, channels int) ([]float64, error) {
	if channels < 1 || len(interleaved)%channels != 0 {
		return nil, ErrChannelCount
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	if channels == 1 {
		copy(out, interleaved)
		return out, nil
	}

	inv := 1 / float64(channels)
	for i := range out {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		out[i] = sum * inv
	}
	return out, nil
}
