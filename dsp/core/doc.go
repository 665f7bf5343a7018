// Package core holds small numeric and sample-buffer helpers shared by the
// convolution engine and its I/O collaborators.
package core
