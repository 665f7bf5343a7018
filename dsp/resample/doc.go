// Package resample converts whole signals between sample rates, so an
// impulse response recorded at one rate can be applied to a dry signal at
// another.
//
// Conversion is rational (up/down) with a Kaiser-windowed sinc lowpass
// whose delay is compensated. Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
