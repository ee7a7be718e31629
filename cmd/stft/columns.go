package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/window"
	"github.com/cwbudde/algo-stft/internal/config"
)

type columnsFlags struct {
	window     string
	windowSize int
	stepSize   int
	precision  int
	backend    string
	mode       string
	chunkSize  int
	output     string
}

func newColumnsCmd(root *rootOptions) *cobra.Command {
	flags := &columnsFlags{}

	cmd := &cobra.Command{
		Use:   "columns [file.wav]",
		Short: "Write STFT columns of a WAV file as CSV",
		Long: "Decodes an integer PCM WAV file (stdin when no file is given), downmixes it to mono\n" +
			"and writes one CSV row per spectrogram column: the column index followed by\n" +
			"window-size/2 bins.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(root.configPath)
			if err != nil {
				return err
			}

			if err := flags.apply(cmd, cfg, root.logLevel); err != nil {
				return err
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			in, name, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := openOutput(cmd, flags.output)
			if err != nil {
				return err
			}

			n, err := runColumns(cmd.Context(), cfg, in, out, logger.WithField("input", name))
			if closeErr := out.Close(); err == nil {
				err = closeErr
			}

			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"input":   name,
				"columns": n,
			}).Info("Analysis complete")

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.window, "window", "", "window type: hanning, hamming, blackman, nuttall or none")
	f.IntVar(&flags.windowSize, "window-size", 0, "samples per column")
	f.IntVar(&flags.stepSize, "step-size", 0, "samples between column starts")
	f.IntVar(&flags.precision, "precision", 0, "engine precision in bits: 32 or 64")
	f.StringVar(&flags.backend, "backend", "", "FFT backend: algofft, gonum or godsp")
	f.StringVar(&flags.mode, "mode", "", "output values: log, magnitude or complex")
	f.IntVar(&flags.chunkSize, "chunk-size", 0, "mono samples decoded per append")
	f.StringVarP(&flags.output, "output", "o", "", "CSV output file (default stdout)")

	return cmd
}

// apply copies explicitly set flags over cfg and revalidates it.
func (f *columnsFlags) apply(cmd *cobra.Command, cfg *config.Config, logLevel string) error {
	changed := cmd.Flags().Changed

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if changed("window") {
		t, err := window.ParseType(f.window)
		if err != nil {
			return err
		}

		cfg.Analysis.Window = t
	}

	if changed("backend") {
		b, err := stft.ParseBackend(f.backend)
		if err != nil {
			return err
		}

		cfg.Analysis.Backend = b
	}

	if changed("window-size") {
		cfg.Analysis.WindowSize = f.windowSize
	}

	if changed("step-size") {
		cfg.Analysis.StepSize = f.stepSize
	}

	if changed("precision") {
		cfg.Analysis.Precision = f.precision
	}

	if changed("mode") {
		cfg.Output.Mode = f.mode
	}

	if changed("chunk-size") {
		cfg.Input.ChunkSize = f.chunkSize
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

func openInput(cmd *cobra.Command, args []string) (io.ReadSeekCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		// The WAV decoder needs to seek, so stdin is read into memory.
		f, err := os.CreateTemp("", "stft-stdin-*.wav")
		if err != nil {
			return nil, "", err
		}

		if err := os.Remove(f.Name()); err != nil {
			_ = f.Close()
			return nil, "", err
		}

		if _, err := io.Copy(f, cmd.InOrStdin()); err != nil {
			_ = f.Close()
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, "", err
		}

		return f, "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", err
	}

	return f, args[0], nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}

	return os.Create(path)
}

// runColumns streams the WAV in r through an engine built from cfg and
// writes CSV rows to w. It returns the number of columns written.
func runColumns(ctx context.Context, cfg *config.Config, r io.ReadSeeker, w io.Writer, logger logrus.FieldLogger) (int, error) {
	src, err := newPCMReader(r, cfg.Input.ChunkSize)
	if err != nil {
		return 0, err
	}

	logger.WithFields(logrus.Fields{
		"sample_rate": src.SampleRate(),
		"channels":    src.Channels(),
		"window":      cfg.Analysis.Window,
		"window_size": cfg.Analysis.WindowSize,
		"step_size":   cfg.Analysis.StepSize,
		"backend":     cfg.Analysis.Backend,
		"precision":   cfg.Analysis.Precision,
	}).Debug("Decoding WAV input")

	if cfg.Analysis.Precision == 32 {
		return analyze[float32, complex64](ctx, cfg, src, w, 32)
	}

	return analyze[float64, complex128](ctx, cfg, src, w, 64)
}

func analyze[F core.Float, C algofft.Complex](
	ctx context.Context, cfg *config.Config, src *pcmReader, w io.Writer, bits int,
) (int, error) {
	e, err := stft.NewFromConfig[F, C](cfg.Engine())
	if err != nil {
		return 0, err
	}

	out := newCSVWriter(w, cfg.Output.Precision, bits)
	out.header(e.OutputSize())

	var (
		chunk  = make([]F, 0, cfg.Input.ChunkSize)
		column = make([]F, e.OutputSize())
		bins   = make([]C, e.OutputSize())
		n      int
	)

	emit := func(column []F) {
		writeRealRow(out, n, column)
		n++
	}

	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		mono, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return n, err
		}

		chunk = core.EnsureLen(chunk, len(mono))
		for i, v := range mono {
			chunk[i] = F(v)
		}

		switch cfg.Output.Mode {
		case config.ModeLog:
			e.Feed(chunk, column, emit)
		case config.ModeMagnitude:
			e.AppendSamples(chunk)

			for e.ContainsEnoughToCompute() {
				e.ComputeMagnitudeColumn(column)
				emit(column)
				e.MoveToNextColumn()
			}
		case config.ModeComplex:
			e.AppendSamples(chunk)

			for e.ContainsEnoughToCompute() {
				e.ComputeComplexColumn(bins)
				writeComplexRow(out, n, bins)
				n++
				e.MoveToNextColumn()
			}
		}

		if out.err != nil {
			return n, out.err
		}
	}

	return n, out.flush()
}

// csvWriter formats columns as comma-separated rows. The first write error
// is kept and later writes are skipped.
type csvWriter struct {
	w         *bufio.Writer
	precision int
	bits      int
	scratch   []byte
	err       error
}

func newCSVWriter(w io.Writer, precision, bits int) *csvWriter {
	return &csvWriter{w: bufio.NewWriter(w), precision: precision, bits: bits}
}

func (c *csvWriter) header(bins int) {
	row := append(c.scratch[:0], "column"...)
	for i := range bins {
		row = append(row, ",bin"...)
		row = strconv.AppendInt(row, int64(i), 10)
	}

	c.write(row)
}

func (c *csvWriter) write(row []byte) {
	c.scratch = append(row, '\n')
	if c.err != nil {
		return
	}

	_, c.err = c.w.Write(c.scratch)
}

func (c *csvWriter) flush() error {
	if c.err != nil {
		return c.err
	}

	return c.w.Flush()
}

func writeRealRow[F core.Float](c *csvWriter, index int, values []F) {
	row := strconv.AppendInt(c.scratch[:0], int64(index), 10)
	for _, v := range values {
		row = append(row, ',')
		row = strconv.AppendFloat(row, float64(v), 'f', c.precision, c.bits)
	}

	c.write(row)
}

func writeComplexRow[C algofft.Complex](c *csvWriter, index int, values []C) {
	row := strconv.AppendInt(c.scratch[:0], int64(index), 10)
	for _, v := range values {
		row = append(row, ',')
		row = append(row, strconv.FormatComplex(complex128(v), 'f', c.precision, 2*c.bits)...)
	}

	c.write(row)
}
