// Package ir measures impulse responses before they are used as reverbs.
//
// Decay times follow ISO 3382: the squared response is integrated backwards
// (Schroeder) and a line fitted to part of the resulting dB curve is
// extrapolated to -60 dB.
//
//   - RT60: from the -5 to -35 dB range (T30), else -5 to -25 dB (T20)
//   - EDT: early decay time from the 0 to -10 dB range
//   - C80: early-to-late energy ratio at 80 ms, in dB
//   - D50: early energy fraction at 50 ms
//
// # Usage
//
//	m, err := ir.NewAnalyzer(48000).Analyze(impulseResponse)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", m.RT60, m.C80)
package ir
