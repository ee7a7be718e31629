package stft

import (
	"fmt"
	"reflect"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stft/dsp/buffer"
	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// Engine is a streaming short-time Fourier transform.
//
// Samples are appended in arbitrary chunks. Each computed column covers the
// WindowSize oldest buffered samples; MoveToNextColumn advances by StepSize.
//
// F and C must have the same width: float64 with complex128 or float32 with
// complex64. Constructors panic with [ErrMixedPrecision] otherwise.
type Engine[F core.Float, C algofft.Complex] struct {
	windowSize int
	stepSize   int
	windowType window.Type
	custom     bool

	transform Transform[C]
	window    []F
	ring      *buffer.Ring[F]

	frame      []F
	complexIn  []C
	complexOut []C
	re, im     []float64
	mag        []float64
}

// Engine64 processes float64 samples with a complex128 transform.
type Engine64 = Engine[float64, complex128]

// Engine32 processes float32 samples with a complex64 transform.
type Engine32 = Engine[float32, complex64]

// NewT creates an engine using window t, a window of windowSize samples and a
// hop of stepSize samples, backed by an algo-fft plan.
//
// It panics if either size is non-positive, stepSize > windowSize, or F and
// C differ in width. Plan creation failures are returned.
func NewT[F core.Float, C algofft.Complex](t window.Type, windowSize, stepSize int) (*Engine[F, C], error) {
	checkPrecision[F, C]()
	checkSizes(windowSize, stepSize)

	tr, err := NewPlan[C](windowSize)
	if err != nil {
		return nil, err
	}

	return NewWithTransform[F](t, tr, stepSize), nil
}

// New creates a float64 engine. See [NewT].
func New(t window.Type, windowSize, stepSize int) (*Engine64, error) {
	return NewT[float64, complex128](t, windowSize, stepSize)
}

// New32 creates a float32 engine. See [NewT].
func New32(t window.Type, windowSize, stepSize int) (*Engine32, error) {
	return NewT[float32, complex64](t, windowSize, stepSize)
}

// NewWithTransform creates an engine around an existing transform. The window
// size is tr.Len(). Engines of equal window size may share tr when they run
// on the same goroutine.
func NewWithTransform[F core.Float, C algofft.Complex](t window.Type, tr Transform[C], stepSize int) *Engine[F, C] {
	checkSizes(tr.Len(), stepSize)

	e := newEngine[F](window.GenerateT[F](t, tr.Len()), tr, stepSize)
	e.windowType = t

	return e
}

// NewWithWindow creates an engine with caller-supplied window coefficients.
// coeffs is copied; nil means no window. It panics unless len(coeffs) is 0 or
// tr.Len().
func NewWithWindow[F core.Float, C algofft.Complex](coeffs []F, tr Transform[C], stepSize int) *Engine[F, C] {
	checkSizes(tr.Len(), stepSize)

	if len(coeffs) != 0 && len(coeffs) != tr.Len() {
		panic(fmt.Errorf("%w: got %d, want %d", ErrWindowLength, len(coeffs), tr.Len()))
	}

	var w []F
	if len(coeffs) != 0 {
		w = append([]F(nil), coeffs...)
	}

	e := newEngine(w, tr, stepSize)
	e.windowType = window.TypeNone
	e.custom = w != nil

	return e
}

// NewFromConfig validates cfg and creates an engine with its backend.
func NewFromConfig[F core.Float, C algofft.Complex](cfg Config) (*Engine[F, C], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("stft: invalid config: %w", err)
	}

	tr, err := NewBackendTransform[C](cfg.Backend, cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	return NewWithTransform[F](cfg.Window, tr, cfg.StepSize), nil
}

func newEngine[F core.Float, C algofft.Complex](coeffs []F, tr Transform[C], stepSize int) *Engine[F, C] {
	checkPrecision[F, C]()

	n := tr.Len()
	half := n / 2

	return &Engine[F, C]{
		windowSize: n,
		stepSize:   stepSize,
		transform:  tr,
		window:     coeffs,
		ring:       buffer.NewRing[F](2 * n),
		frame:      make([]F, n),
		complexIn:  make([]C, n),
		complexOut: make([]C, n),
		re:         make([]float64, half),
		im:         make([]float64, half),
		mag:        make([]float64, half),
	}
}

func checkPrecision[F core.Float, C algofft.Complex]() {
	f, c := reflect.TypeFor[F]().Bits(), reflect.TypeFor[C]().Bits()
	if 2*f != c {
		panic(fmt.Errorf("%w: float%d samples with complex%d transform", ErrMixedPrecision, f, c))
	}
}

func checkSizes(windowSize, stepSize int) {
	if windowSize <= 0 || stepSize <= 0 {
		panic(fmt.Errorf("%w: window %d, step %d", ErrInvalidSize, windowSize, stepSize))
	}

	if stepSize > windowSize {
		panic(fmt.Errorf("%w: step %d > window %d", ErrStepTooLarge, stepSize, windowSize))
	}
}

// OutputSize returns the number of bins per column, WindowSize/2. The Nyquist
// bin is not included.
func (e *Engine[F, C]) OutputSize() int {
	return e.windowSize / 2
}

// WindowSize returns the number of samples per column.
func (e *Engine[F, C]) WindowSize() int {
	return e.windowSize
}

// StepSize returns the number of samples dropped by MoveToNextColumn.
func (e *Engine[F, C]) StepSize() int {
	return e.stepSize
}

// WindowType returns the window type the engine was built with. ok is false
// for engines built from custom coefficients.
func (e *Engine[F, C]) WindowType() (t window.Type, ok bool) {
	return e.windowType, !e.custom
}

// Window returns a copy of the window coefficients, or nil when no window is
// applied.
func (e *Engine[F, C]) Window() []F {
	if e.window == nil {
		return nil
	}

	return append([]F(nil), e.window...)
}

// Len returns the number of buffered samples.
func (e *Engine[F, C]) Len() int {
	return e.ring.Len()
}

// IsEmpty reports whether no samples are buffered.
func (e *Engine[F, C]) IsEmpty() bool {
	return e.ring.Len() == 0
}

// AppendSamples buffers samples. Non-finite values are accepted and propagate
// into the columns that cover them.
func (e *Engine[F, C]) AppendSamples(samples []F) {
	e.ring.PushBack(samples)
}

// ContainsEnoughToCompute reports whether a full window is buffered.
func (e *Engine[F, C]) ContainsEnoughToCompute() bool {
	return e.ring.Len() >= e.windowSize
}

// ComputeColumn writes the clamped log10 magnitude of the current column to
// out. Magnitudes below 1 map to 0.
func (e *Engine[F, C]) ComputeColumn(out []F) {
	e.checkOutput(len(out))
	e.computeMagnitudes()

	for i, m := range e.mag {
		out[i] = F(core.Log10Positive(m))
	}
}

// ComputeMagnitudeColumn writes the magnitude of the current column to out.
func (e *Engine[F, C]) ComputeMagnitudeColumn(out []F) {
	e.checkOutput(len(out))

	if dst, ok := any(out).([]float64); ok {
		e.forward()
		e.magnitudesInto(dst)

		return
	}

	e.computeMagnitudes()

	for i, m := range e.mag {
		out[i] = F(m)
	}
}

// ComputeComplexColumn writes the complex bins of the current column to out.
func (e *Engine[F, C]) ComputeComplexColumn(out []C) {
	e.checkOutput(len(out))
	e.forward()
	copy(out, e.complexOut)
}

// MoveToNextColumn drops StepSize samples from the front of the buffer. It
// panics if fewer are buffered.
func (e *Engine[F, C]) MoveToNextColumn() {
	e.ring.DropFront(e.stepSize)
}

// Feed appends samples, then computes, emits, and advances past every column
// that has become available. column must have length OutputSize and is
// reused for each call to emit. Feed returns the number of emitted columns.
func (e *Engine[F, C]) Feed(samples, column []F, emit func(column []F)) int {
	e.checkOutput(len(column))
	e.AppendSamples(samples)

	n := 0
	for e.ContainsEnoughToCompute() {
		e.ComputeColumn(column)

		if emit != nil {
			emit(column)
		}

		e.MoveToNextColumn()
		n++
	}

	return n
}

// Reset discards all buffered samples. Scratch storage is kept.
func (e *Engine[F, C]) Reset() {
	e.ring.Reset()
}

func (e *Engine[F, C]) checkOutput(n int) {
	if n != e.OutputSize() {
		panic(fmt.Errorf("%w: got %d, want %d", ErrOutputSize, n, e.OutputSize()))
	}
}

// forward runs the pipeline for the current column and leaves the spectrum in
// complexOut.
func (e *Engine[F, C]) forward() {
	if !e.ContainsEnoughToCompute() {
		panic(fmt.Errorf("%w: need %d samples, have %d", ErrInsufficientData, e.windowSize, e.ring.Len()))
	}

	e.ring.PeekFront(e.frame)

	if e.window != nil {
		// Lengths are fixed at construction.
		_ = window.ApplyCoefficientsInPlace(e.frame, e.window)
	}

	for i, v := range e.frame {
		e.complexIn[i] = C(complex(float64(v), 0))
	}

	if err := e.transform.Forward(e.complexOut, e.complexIn); err != nil {
		panic(fmt.Errorf("stft: forward transform: %w", err))
	}
}

func (e *Engine[F, C]) computeMagnitudes() {
	e.forward()
	e.magnitudesInto(e.mag)
}

func (e *Engine[F, C]) magnitudesInto(dst []float64) {
	for i, c := range e.complexOut[:len(dst)] {
		z := complex128(c)
		e.re[i] = real(z)
		e.im[i] = imag(z)
	}

	vecmath.Magnitude(dst, e.re, e.im)
}
