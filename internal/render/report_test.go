package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-convolve/dsp/conv"
	irmeasure "github.com/cwbudde/algo-convolve/measure/ir"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "Elapsed [mm:ss]: 0:00.000"},
		{1234 * time.Millisecond, "Elapsed [mm:ss]: 0:01.234"},
		{61500 * time.Millisecond, "Elapsed [mm:ss]: 1:01.500"},
		{12*time.Minute + 5250*time.Millisecond, "Elapsed [mm:ss]: 12:05.250"},
		{-time.Second, "Elapsed [mm:ss]: 0:00.000"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	rep := &Report{
		Job:        Job{Out: "wet.wav"},
		Method:     conv.MethodOverlapAdd,
		DryFrames:  441000,
		IRFrames:   88200,
		OutFrames:  529199,
		SampleRate: 44100,
		FFTLen:     131072,
		Segments:   11,
		Peak:       0.5,
		RMS:        0.1,
		Clipped:    0,
		IR:         irmeasure.Metrics{RT60: 1.25, Predelay: 0.012},
		Elapsed:    2500 * time.Millisecond,
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, rep); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"441,000 dry", "529,199 samples", "overlap-add", "fft 131,072 x 11 segments", "ir rt60 1.25 s, predelay 12.0 ms", "Elapsed [mm:ss]: 0:02.500"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "clipped") {
		t.Errorf("unexpected clip line:\n%s", out)
	}

	rep.Silent = true
	rep.FFTLen = 0
	buf.Reset()
	if err := WriteSummary(&buf, rep); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "silent") || strings.Contains(buf.String(), "fft") {
		t.Errorf("unexpected silent summary:\n%s", buf.String())
	}
}
