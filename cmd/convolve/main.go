// Command convolve renders a dry recording through an impulse response.
//
// Usage:
//
//	convolve [flags] <dry.wav> <ir.wav> <out.wav>
//	convolve batch [flags] <manifest.yaml>
//	convolve gen-ir [flags] <out.wav>
//
// The result holds len(dry)+len(ir)-1 samples, is normalized to full scale
// and written as mono PCM at the dry signal's sample rate.
//
// Examples:
//
//	convolve voice.wav hall.wav voice-hall.wav
//	convolve --method direct --bit-depth 24 click.wav plate.wav out.wav
//	convolve --backend algofft --fft-len 65536 -v drums.wav church.wav wet.wav
//	convolve batch --workers 4 jobs.yaml
//	convolve gen-ir --rt60 1.8 --length 2.5 room.wav
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
