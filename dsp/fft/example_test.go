package fft_test

import (
	"fmt"

	"github.com/cwbudde/algo-convolve/dsp/fft"
)

func ExampleTransform() {
	// Four real samples packed as interleaved complex values.
	buf := []float64{1, 0, 1, 0, 1, 0, 1, 0}

	_ = fft.Transform(buf, fft.Forward)
	fmt.Printf("DC bin: %.1f\n", buf[0])

	_ = fft.Transform(buf, fft.Inverse)
	fmt.Printf("Round trip (unscaled): %.1f\n", buf[0])

	// Output:
	// DC bin: 4.0
	// Round trip (unscaled): 4.0
}
