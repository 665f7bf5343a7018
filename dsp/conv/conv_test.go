package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-convolve/internal/testutil"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		h        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			x:        []float64{1, 2, 3},
			h:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			x:        []float64{1, 2, 3, 4, 5},
			h:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			x:        []float64{1, 2, 3, 4, 5},
			h:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			x:        []float64{1, 2, 1},
			h:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
		{
			name:     "click through short echo",
			x:        []float64{1, 0, 0, 0},
			h:        []float64{0.5, 0.25},
			expected: []float64{0.5, 0.25, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Direct(tt.x, tt.h)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, out.Samples, tt.expected, 1e-12)
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct([]float64{}, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, nil)
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
}

func TestDirectPeak(t *testing.T) {
	out, err := Direct([]float64{1, -2, 0.5}, []float64{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	// [1, -1, -1.5, 0.5]
	if out.Peak != 1.5 {
		t.Fatalf("Peak = %v, want 1.5", out.Peak)
	}
}

func TestDirectToWritesPrefixOnly(t *testing.T) {
	dst := []float64{9, 9, 9, 9, 9, 9}
	peak := DirectTo(dst, []float64{1, 2}, []float64{3, 4})

	want := []float64{3, 10, 8, 9, 9, 9}
	testutil.RequireSliceNearlyEqual(t, dst, want, 0)
	if peak != 10 {
		t.Fatalf("peak = %v, want 10", peak)
	}

	if got := DirectTo(dst, nil, []float64{1}); got != MinPeak {
		t.Fatalf("empty input peak = %v, want MinPeak", got)
	}
}

func TestDirectMatchesOracle(t *testing.T) {
	x := testutil.DeterministicNoise(1, 1, 777)
	h := testutil.DecayingNoise(2, 129, 30)

	out, err := Direct(x, h)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceRelEqual(t, out.Samples, testutil.NaiveConvolve(x, h), 1e-12)
}

func TestConvolveLengthLaw(t *testing.T) {
	methods := []Method{MethodDirect, MethodOverlapAdd, MethodAuto}
	sizes := [][2]int{{1, 1}, {1, 9}, {9, 1}, {5, 3}, {100, 64}, {100, 65}, {33, 300}}

	for _, m := range methods {
		for _, sz := range sizes {
			x := testutil.DeterministicNoise(3, 1, sz[0])
			h := testutil.DeterministicNoise(4, 1, sz[1])

			out, err := Convolve(x, h, m)
			if err != nil {
				t.Fatalf("%s N=%d M=%d: %v", m, sz[0], sz[1], err)
			}
			if want := sz[0] + sz[1] - 1; len(out.Samples) != want {
				t.Fatalf("%s N=%d M=%d: len = %d, want %d", m, sz[0], sz[1], len(out.Samples), want)
			}
		}
	}
}

func TestConvolveCommutative(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 300)
	h := testutil.DecayingNoise(6, 90, 20)

	for _, m := range []Method{MethodDirect, MethodOverlapAdd} {
		t.Run(string(m), func(t *testing.T) {
			xh, err := Convolve(x, h, m)
			if err != nil {
				t.Fatal(err)
			}
			hx, err := Convolve(h, x, m)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceRelEqual(t, xh.Samples, hx.Samples, 1e-9)
		})
	}
}

func TestConvolveIdentity(t *testing.T) {
	x := testutil.DeterministicSine(440, 44100, 0.8, 500)

	for _, m := range []Method{MethodDirect, MethodOverlapAdd} {
		t.Run(string(m), func(t *testing.T) {
			out, err := Convolve(x, []float64{1}, m)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, out.Samples, x, 1e-12)
		})
	}
}

func TestConvolveNormalizedExample(t *testing.T) {
	for _, m := range []Method{MethodDirect, MethodOverlapAdd} {
		t.Run(string(m), func(t *testing.T) {
			out, err := Convolve([]float64{1, 0, 0, 0}, []float64{0.5, 0.25}, m)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, out.Samples, []float64{0.5, 0.25, 0, 0, 0}, 1e-12)
			if math.Abs(out.Peak-0.5) > 1e-12 {
				t.Fatalf("Peak = %v, want 0.5", out.Peak)
			}
			testutil.RequireSliceNearlyEqual(t, out.Normalize(), []float64{1, 0.5, 0, 0, 0}, 1e-12)
		})
	}
}

func TestConvolveErrors(t *testing.T) {
	if _, err := Convolve(nil, []float64{1}, MethodAuto); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Convolve([]float64{1}, nil, MethodAuto); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}
	if _, err := Convolve([]float64{1}, []float64{1}, Method("fast")); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
	if _, err := Convolve([]float64{1}, make([]float64, 100), MethodOverlapAdd, WithFFTLen(100)); !errors.Is(err, ErrInvalidFFTLen) {
		t.Errorf("expected ErrInvalidFFTLen, got %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"", MethodAuto, false},
		{"auto", MethodAuto, false},
		{"direct", MethodDirect, false},
		{"overlap-add", MethodOverlapAdd, false},
		{"overlap-save", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMethodResolve(t *testing.T) {
	tests := []struct {
		method    Method
		kernelLen int
		want      Method
	}{
		{MethodAuto, 1, MethodDirect},
		{MethodAuto, DirectThreshold, MethodDirect},
		{MethodAuto, DirectThreshold + 1, MethodOverlapAdd},
		{MethodDirect, 10000, MethodDirect},
		{MethodOverlapAdd, 2, MethodOverlapAdd},
	}

	for _, tt := range tests {
		if got := tt.method.Resolve(tt.kernelLen); got != tt.want {
			t.Errorf("%s.Resolve(%d) = %s, want %s", tt.method, tt.kernelLen, got, tt.want)
		}
	}
}
