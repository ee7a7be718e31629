// Package stft computes a short-time Fourier transform over an unbounded
// stream of real samples, one spectrogram column at a time.
//
// An [Engine] buffers appended samples in a [buffer.Ring]. Once a full window
// is buffered, a column can be computed: the front window is read without
// being consumed, multiplied by the apodization window, transformed, and the
// first WindowSize/2 bins are written to the caller's slice as log-magnitude,
// magnitude, or raw complex values. MoveToNextColumn then drops StepSize
// samples, keeping WindowSize-StepSize samples of overlap for the next column.
//
// # Usage
//
//	e, err := stft.New(window.TypeHanning, 1024, 512)
//	if err != nil {
//		return err
//	}
//	column := make([]float64, e.OutputSize())
//
//	for chunk := range chunks {
//		e.AppendSamples(chunk)
//		for e.ContainsEnoughToCompute() {
//			e.ComputeColumn(column)
//			consume(column)
//			e.MoveToNextColumn()
//		}
//	}
//
// [Engine.Feed] wraps the inner loop for log-magnitude columns.
//
// # Contract violations
//
// Computing without a full window, passing an output slice whose length is
// not OutputSize, advancing past the buffered samples, and constructing with
// StepSize > WindowSize are programming errors. They panic with an error
// wrapping one of the package sentinels ([ErrInsufficientData],
// [ErrOutputSize], [ErrStepTooLarge], ...), so tests can recover and match
// them with errors.Is. User-supplied configuration should be checked with
// [Config.Validate] first.
//
// # Precision
//
// Engine is generic over the sample type F and the complex type C of the
// transform: [Engine64] (float64, complex128) and [Engine32] (float32,
// complex64). The precision is fixed per engine, and mixed pairs such as
// float32 with complex128 are rejected with [ErrMixedPrecision].
//
// An Engine is not safe for concurrent use.
package stft
