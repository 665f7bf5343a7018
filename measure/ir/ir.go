package ir

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// decayFloorDB replaces log10(0) on the decay curve.
const decayFloorDB = -200

// Metrics summarises an impulse response used as a reverb.
type Metrics struct {
	RT60     float64 // reverberation time in seconds (T30, else T20)
	EDT      float64 // early decay time in seconds (0 to -10 dB)
	C80      float64 // clarity at 80 ms in dB
	D50      float64 // definition at 50 ms (ratio 0-1)
	Predelay float64 // seconds before the first sample within 20 dB of the peak
	Peak     int     // sample index of the absolute maximum
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics. Decay and energy ratios are measured from
// the peak onwards.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peak := floats.MaxIdx(absCopy(ir))
	tail := ir[peak:]
	curve := a.decayCurve(tail)

	m := Metrics{
		EDT:      a.reverbTime(curve, 0, -10),
		C80:      a.clarity(tail, 0.080),
		D50:      a.definition(tail, 0.050),
		Predelay: float64(impulseStart(ir)) / a.SampleRate,
		Peak:     peak,
	}
	m.RT60, _ = a.rt60(curve)
	return m, nil
}

// RT60 estimates the reverberation time from T30, falling back to T20.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}
	return a.rt60(a.decayCurve(ir))
}

// DecayCurve returns the Schroeder backward integral of ir² in dB relative
// to the total energy.
func (a *Analyzer) DecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return a.decayCurve(ir), nil
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	return nil
}

func (a *Analyzer) rt60(curve []float64) (float64, error) {
	if rt := a.reverbTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.reverbTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

func (a *Analyzer) decayCurve(ir []float64) []float64 {
	curve := make([]float64, len(ir))
	var sum float64
	for i := len(ir) - 1; i >= 0; i-- {
		sum += ir[i] * ir[i]
		curve[i] = sum
	}

	total := curve[0]
	if total <= 0 {
		return curve
	}
	for i, e := range curve {
		if e <= 0 {
			curve[i] = decayFloorDB
			continue
		}
		curve[i] = 10 * math.Log10(e/total)
	}
	return curve
}

// reverbTime fits a line to the decay curve between startDB and endDB and
// extrapolates it to -60 dB. It returns 0 when the curve never reaches
// endDB or does not fall.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end-start < 1 {
		return 0
	}

	y := curve[start : end+1]
	x := make([]float64, len(y))
	floats.Span(x, 0, float64(len(y)-1))

	_, slope := stat.LinearRegression(x, y, nil, false)
	if !(slope < 0) {
		return 0
	}
	return -60 / (slope * a.SampleRate)
}

// energySplit returns the energy before and after t seconds.
func (a *Analyzer) energySplit(ir []float64, t float64) (early, late float64) {
	boundary := int(math.Round(t * a.SampleRate))
	boundary = max(0, min(boundary, len(ir)))
	early = floats.Dot(ir[:boundary], ir[:boundary])
	late = floats.Dot(ir[boundary:], ir[boundary:])
	return early, late
}

func (a *Analyzer) definition(ir []float64, t float64) float64 {
	early, late := a.energySplit(ir, t)
	if early+late <= 0 {
		return 0
	}
	return early / (early + late)
}

func (a *Analyzer) clarity(ir []float64, t float64) float64 {
	early, late := a.energySplit(ir, t)
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(early/late)
}

// impulseStart returns the first index within 20 dB of the peak.
func impulseStart(ir []float64) int {
	threshold := 0.1 * floats.Norm(ir, math.Inf(1))
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}

func absCopy(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = math.Abs(v)
	}
	return out
}
