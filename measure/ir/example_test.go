package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-convolve/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	// Exponential decay that reaches -60 dB after one second.
	sampleRate := 48000.0
	decayRate := 6.9078

	irData := make([]float64, int(sampleRate*3))
	for i := range irData {
		irData[i] = math.Exp(-decayRate * float64(i) / sampleRate)
	}

	metrics, err := ir.NewAnalyzer(sampleRate).Analyze(irData)
	if err != nil {
		panic(err)
	}

	fmt.Printf("RT60 = %.2f s\n", metrics.RT60)
	fmt.Printf("EDT  = %.2f s\n", metrics.EDT)
	fmt.Printf("C80  = %.1f dB\n", metrics.C80)
	fmt.Printf("D50  = %.3f\n", metrics.D50)

	// Output:
	// RT60 = 1.00 s
	// EDT  = 1.00 s
	// C80  = 3.1 dB
	// D50  = 0.499
}
