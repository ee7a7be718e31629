// Package config loads the stft command configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// DefaultPath is read when LoadConfig is called with an empty path and the
// file exists.
const DefaultPath = "stft.yaml"

// Output modes.
const (
	ModeLog       = "log"
	ModeMagnitude = "magnitude"
	ModeComplex   = "complex"
)

const (
	defaultChunkSize       = 3000
	defaultOutputPrecision = 6
	maxOutputPrecision     = 17
)

// Config is the command configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
}

// AnalysisConfig describes the engine.
type AnalysisConfig struct {
	Window     window.Type  `yaml:"window"`
	WindowSize int          `yaml:"window_size"`
	StepSize   int          `yaml:"step_size"`
	Precision  int          `yaml:"precision"` // 32 or 64
	Backend    stft.Backend `yaml:"backend"`
}

// InputConfig controls how decoded audio is fed to the engine.
type InputConfig struct {
	ChunkSize int `yaml:"chunk_size"` // samples per AppendSamples call
}

// OutputConfig controls column formatting.
type OutputConfig struct {
	Mode      string `yaml:"mode"`
	Precision int    `yaml:"precision"` // decimal digits
}

// Default returns the built-in configuration.
func Default() Config {
	engine := stft.DefaultConfig()

	return Config{
		LogLevel: "info",
		Analysis: AnalysisConfig{
			Window:     engine.Window,
			WindowSize: engine.WindowSize,
			StepSize:   engine.StepSize,
			Precision:  64,
			Backend:    engine.Backend,
		},
		Input:  InputConfig{ChunkSize: defaultChunkSize},
		Output: OutputConfig{Mode: ModeLog, Precision: defaultOutputPrecision},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path,
// and STFT_* environment variables, in that order, then validates it. An
// empty path reads DefaultPath if present.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides copies STFT_* variables into cfg.
func (c *Config) applyEnvOverrides() error {
	var errs []error

	if val, ok := os.LookupEnv("STFT_LOG_LEVEL"); ok {
		c.LogLevel = val
	}

	if val, ok := os.LookupEnv("STFT_WINDOW"); ok {
		if err := c.Analysis.Window.UnmarshalText([]byte(val)); err != nil {
			errs = append(errs, fmt.Errorf("STFT_WINDOW: %w", err))
		}
	}

	if val, ok := os.LookupEnv("STFT_BACKEND"); ok {
		if err := c.Analysis.Backend.UnmarshalText([]byte(val)); err != nil {
			errs = append(errs, fmt.Errorf("STFT_BACKEND: %w", err))
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"STFT_WINDOW_SIZE", &c.Analysis.WindowSize},
		{"STFT_STEP_SIZE", &c.Analysis.StepSize},
		{"STFT_PRECISION", &c.Analysis.Precision},
	}

	for _, v := range ints {
		val, ok := os.LookupEnv(v.name)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.name, err))
			continue
		}

		*v.dst = n
	}

	return errors.Join(errs...)
}

// Validate reports every problem with the configuration, joined.
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if err := c.Engine().Validate(); err != nil {
		errs = append(errs, err)
	}

	switch c.Analysis.Precision {
	case 64:
	case 32:
		if c.Analysis.Backend != stft.BackendAlgoFFT {
			errs = append(errs, fmt.Errorf("analysis.backend %s: %w", c.Analysis.Backend, stft.ErrBackendPrecision))
		}
	default:
		errs = append(errs, fmt.Errorf("analysis.precision must be 32 or 64, got %d", c.Analysis.Precision))
	}

	if c.Input.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("input.chunk_size must be positive, got %d", c.Input.ChunkSize))
	}

	switch c.Output.Mode {
	case ModeLog, ModeMagnitude, ModeComplex:
	default:
		errs = append(errs, fmt.Errorf("output.mode must be log, magnitude or complex, got %q", c.Output.Mode))
	}

	if c.Output.Precision < 0 || c.Output.Precision > maxOutputPrecision {
		errs = append(errs, fmt.Errorf("output.precision must be in [0, %d], got %d", maxOutputPrecision, c.Output.Precision))
	}

	return errors.Join(errs...)
}

// Engine returns the engine construction parameters.
func (c *Config) Engine() stft.Config {
	return stft.Config{
		Window:     c.Analysis.Window,
		WindowSize: c.Analysis.WindowSize,
		StepSize:   c.Analysis.StepSize,
		Backend:    c.Analysis.Backend,
	}
}

// ParseLogLevel parses a logrus level name (trace, debug, info, warn, error,
// fatal, panic), ignoring case and surrounding space.
func ParseLogLevel(s string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}
