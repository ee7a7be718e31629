package stft

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-stft/dsp/window"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window != window.TypeHanning || cfg.WindowSize != 1024 || cfg.StepSize != 512 || cfg.Backend != BackendAlgoFFT {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithWindow(window.TypeNuttall),
		WithWindowSize(256),
		WithStepSize(64),
		WithBackend(BackendGonum),
		nil,
	)

	want := Config{Window: window.TypeNuttall, WindowSize: 256, StepSize: 64, Backend: BackendGonum}
	if cfg != want {
		t.Fatalf("ApplyOptions()=%+v want %+v", cfg, want)
	}

	ignored := ApplyOptions(WithWindowSize(0), WithStepSize(-3))
	if ignored.WindowSize != 1024 || ignored.StepSize != 512 {
		t.Fatalf("non-positive sizes were applied: %+v", ignored)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		targets []error
	}{
		{"StepTooLarge", Config{WindowSize: 8, StepSize: 9}, []error{ErrStepTooLarge}},
		{"ZeroSizes", Config{WindowSize: 0, StepSize: 0}, []error{ErrInvalidSize}},
		{"BadWindow", Config{Window: window.Type(42), WindowSize: 8, StepSize: 4}, []error{window.ErrUnknownType}},
		{"BadBackend", Config{WindowSize: 8, StepSize: 4, Backend: Backend(7)}, []error{ErrUnknownBackend}},
		{
			"Several",
			Config{Window: window.Type(-1), WindowSize: 4, StepSize: 8, Backend: Backend(7)},
			[]error{ErrStepTooLarge, window.ErrUnknownType, ErrUnknownBackend},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			for _, target := range tt.targets {
				if !errors.Is(err, target) {
					t.Fatalf("Validate()=%v, want %v", err, target)
				}
			}
		})
	}
}

func TestNewFromConfigReturnsErrors(t *testing.T) {
	_, err := NewFromConfig[float64, complex128](Config{WindowSize: 8, StepSize: 16})
	if !errors.Is(err, ErrStepTooLarge) {
		t.Fatalf("err=%v, want ErrStepTooLarge", err)
	}

	_, err = NewFromConfig[float32, complex64](ApplyOptions(WithBackend(BackendGoDSP)))
	if !errors.Is(err, ErrBackendPrecision) {
		t.Fatalf("err=%v, want ErrBackendPrecision", err)
	}

	e, err := NewFromConfig[float32, complex64](ApplyOptions(WithWindowSize(64), WithStepSize(32)))
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}

	if e.WindowSize() != 64 || e.StepSize() != 32 || e.OutputSize() != 32 {
		t.Fatalf("unexpected engine geometry %d/%d/%d", e.WindowSize(), e.StepSize(), e.OutputSize())
	}
}
