package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-convolve/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineInvalid(t *testing.T) {
	if _, err := NewGenerator().Sine(1000, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := NewGenerator(WithSampleRate(0)).Sine(1000, 1, 8); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestDefaults(t *testing.T) {
	g := NewGenerator()
	if g.SampleRate() != DefaultSampleRate {
		t.Fatalf("SampleRate() = %v, want %v", g.SampleRate(), DefaultSampleRate)
	}
	if g.Seed() != 1 {
		t.Fatalf("Seed() = %d, want 1", g.Seed())
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGenerator(WithSeed(42))
	g2 := NewGenerator(WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d]=%v outside amplitude", i, n1[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestImpulse(t *testing.T) {
	g := NewGenerator()
	out, err := g.Impulse(0.75, 8, 3)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}
	for i, v := range out {
		want := 0.0
		if i == 3 {
			want = 0.75
		}
		if v != want {
			t.Fatalf("out[%d]=%v, want %v", i, v, want)
		}
	}

	if _, err := g.Impulse(1, 8, 8); err == nil {
		t.Fatal("expected error for delay past the end")
	}
}

func TestRoomDecay(t *testing.T) {
	const sr = 1000.0
	g := NewGenerator(WithSampleRate(sr), WithSeed(7))
	ir, err := g.Room(0.5, 1000)
	if err != nil {
		t.Fatalf("Room() error = %v", err)
	}
	if len(ir) != 1000 {
		t.Fatalf("len = %d, want 1000", len(ir))
	}
	if ir[0] != 1 {
		t.Fatalf("direct path = %v, want 1", ir[0])
	}

	// After rt60 the envelope is 60 dB down.
	limit := core.DBToLinear(-60) + 1e-12
	for i := 500; i < len(ir); i++ {
		if math.Abs(ir[i]) > limit {
			t.Fatalf("ir[%d]=%v exceeds -60 dB envelope %v", i, ir[i], limit)
		}
	}

	if _, err := g.Room(0, 100); err == nil {
		t.Fatal("expected error for non-positive rt60")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}

	silent, err := Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if silent[0] != 0 || silent[1] != 0 {
		t.Fatalf("silent input changed: %v", silent)
	}

	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
}
