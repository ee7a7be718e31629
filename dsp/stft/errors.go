package stft

import (
	"errors"

	"github.com/cwbudde/algo-stft/dsp/buffer"
)

var (
	// ErrInsufficientData reports a compute or advance without enough
	// buffered samples.
	ErrInsufficientData = buffer.ErrInsufficientData
	// ErrOutputSize reports an output slice whose length is not OutputSize.
	ErrOutputSize = errors.New("stft: output length must equal output size")
	// ErrStepTooLarge reports a step size greater than the window size.
	ErrStepTooLarge = errors.New("stft: step size exceeds window size")
	// ErrInvalidSize reports a non-positive window or step size.
	ErrInvalidSize = errors.New("stft: window and step sizes must be positive")
	// ErrWindowLength reports window coefficients whose length differs from
	// the transform length.
	ErrWindowLength = errors.New("stft: window length must equal transform length")
	// ErrUnknownBackend is returned when a backend name cannot be parsed.
	ErrUnknownBackend = errors.New("stft: unknown transform backend")
	// ErrBackendPrecision is returned when a double-precision-only backend
	// is requested for a single-precision engine.
	ErrBackendPrecision = errors.New("stft: backend supports complex128 only")
	// ErrMixedPrecision reports an engine whose sample and transform widths
	// differ, such as float32 samples with a complex128 transform.
	ErrMixedPrecision = errors.New("stft: sample and transform precision differ")
)
