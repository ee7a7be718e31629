package stft

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/window"
)

const (
	defaultWindowSize = 1024
	defaultStepSize   = 512
)

// Config holds engine construction parameters.
type Config struct {
	Window     window.Type
	WindowSize int
	StepSize   int
	Backend    Backend
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a Hanning window of 1024 samples advanced by 512,
// transformed with the algo-fft backend.
func DefaultConfig() Config {
	return Config{
		Window:     window.TypeHanning,
		WindowSize: defaultWindowSize,
		StepSize:   defaultStepSize,
		Backend:    BackendAlgoFFT,
	}
}

// ApplyOptions applies opts on top of DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithWindow selects the apodization window.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithWindowSize sets the window (and transform) length. Non-positive values
// are ignored.
func WithWindowSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.WindowSize = n
		}
	}
}

// WithStepSize sets the hop between columns. Non-positive values are ignored.
func WithStepSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.StepSize = n
		}
	}
}

// WithBackend selects the transform implementation.
func WithBackend(b Backend) Option {
	return func(cfg *Config) {
		cfg.Backend = b
	}
}

// Validate reports every problem with cfg, joined. A nil result means the
// constructors will not panic for this configuration.
func (c Config) Validate() error {
	var errs []error

	if c.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %d", ErrInvalidSize, c.WindowSize))
	}

	if c.StepSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: step size %d", ErrInvalidSize, c.StepSize))
	}

	if c.WindowSize > 0 && c.StepSize > c.WindowSize {
		errs = append(errs, fmt.Errorf("%w: step %d > window %d", ErrStepTooLarge, c.StepSize, c.WindowSize))
	}

	if _, err := c.Window.MarshalText(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Backend.MarshalText(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
