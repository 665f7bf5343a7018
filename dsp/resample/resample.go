package resample

import (
	"errors"
	"math"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality controls the anti-aliasing filter.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// Profile holds the filter parameters of a quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the filter parameters used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality Quality
	maxDen  int
}

// Option configures a Converter.
type Option func(*config)

// WithQuality selects the anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithMaxDenominator caps the denominator when a rate ratio is approximated.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: 4096}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Converter changes the sample rate of whole signals by a rational factor
// up/down with a windowed-sinc lowpass. The filter delay is compensated, so
// sample 0 of the output lines up with sample 0 of the input.
type Converter struct {
	up, down int
	quality  Quality
	taps     []float64 // prototype at the upsampled rate, odd length
	delay    int       // group delay in upsampled samples
}

// NewRational creates a converter for the ratio up/down.
func NewRational(up, down int, opts ...Option) (*Converter, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := applyOptions(opts)
	taps := designLowpass(up, down, QualityProfile(cfg.quality))

	return &Converter{
		up:      up,
		down:    down,
		quality: cfg.quality,
		taps:    taps,
		delay:   (len(taps) - 1) / 2,
	}, nil
}

// NewForRates creates a converter from inRate to outRate, approximating
// the ratio by a fraction.
func NewForRates(inRate, outRate float64, opts ...Option) (*Converter, error) {
	if !(inRate > 0) || !(outRate > 0) || math.IsInf(inRate, 0) || math.IsInf(outRate, 0) {
		return nil, ErrInvalidRate
	}
	up, down := approximateRatio(outRate/inRate, applyOptions(opts).maxDen)
	return NewRational(up, down, opts...)
}

// Convert is a one-shot NewForRates followed by Process.
func Convert(input []float64, inRate, outRate float64, opts ...Option) ([]float64, error) {
	c, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}
	return c.Process(input), nil
}

// Process converts a complete signal. The result holds
// ceil(len(input)*up/down) samples.
func (c *Converter) Process(input []float64) []float64 {
	n := c.OutputLen(len(input))
	out := make([]float64, n)
	if c.up == 1 && c.down == 1 {
		copy(out, input)
		return out
	}

	// Output m sits at upsampled position m*down; only taps that land on
	// a non-zero (every up-th) upsampled sample contribute.
	for m := range out {
		pos := m*c.down + c.delay
		k := pos % c.up
		i := pos / c.up
		var y float64
		for ; k < len(c.taps); k += c.up {
			if i < 0 {
				break
			}
			if i < len(input) {
				y += c.taps[k] * input[i]
			}
			i--
		}
		out[m] = y
	}
	return out
}

// OutputLen returns the number of samples Process produces for n inputs.
func (c *Converter) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*c.up + c.down - 1) / c.down
}

// Ratio returns the reduced up/down conversion factors.
func (c *Converter) Ratio() (up, down int) {
	return c.up, c.down
}

// Quality returns the configured quality mode.
func (c *Converter) Quality() Quality {
	return c.quality
}

// designLowpass returns a Kaiser-windowed sinc at the upsampled rate, cut
// off below the lower of the two Nyquist frequencies and scaled to a DC
// gain of up.
func designLowpass(up, down int, p Profile) []float64 {
	n := p.TapsPerPhase*up + 1
	fc := 0.5 / float64(max(up, down)) * p.CutoffScale

	taps := make([]float64, n)
	center := float64(n-1) / 2
	var sum float64
	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiser(i, n, p.KaiserBeta)
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}
	return taps
}

// approximateRatio finds the best fraction num/den <= maxDen for v by
// continued fractions.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v
	for {
		frac := x - math.Floor(x)
		if frac == 0 {
			break
		}
		x = 1 / frac
		a := math.Floor(x)
		p2, q2 := a*p1+p0, a*q1+q0
		if q2 > float64(maxDen) {
			break
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
	}

	num, den = int(math.Round(p1)), int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 1, 1
	}
	g := gcd(num, den)
	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the modified Bessel function of order zero by its
// power series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	x2 := x * x / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}
