// Package buffer provides a growable float64 sample buffer and a pool for
// allocation-friendly convolution runs. All DSP functions accept raw
// []float64 slices; Buffer helps callers that grow, pad and reuse storage.
package buffer
