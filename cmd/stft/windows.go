package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/dsp/window"
)

func newWindowsCmd() *cobra.Command {
	var (
		size     int
		periodic bool
	)

	cmd := &cobra.Command{
		Use:   "windows [window-name ...]",
		Short: "Print spectral properties of the analysis windows",
		Long:  "Without arguments, prints every supported window type.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return fmt.Errorf("--size must be positive, got %d", size)
			}

			types := window.Types()
			if len(args) > 0 {
				types = make([]window.Type, 0, len(args))

				for _, name := range args {
					t, err := window.ParseType(name)
					if err != nil {
						return err
					}

					types = append(types, t)
				}
			}

			var opts []window.Option
			if periodic {
				opts = append(opts, window.WithPeriodic())
			}

			return printAnalysis(cmd.OutOrStdout(), types, size, opts)
		},
	}

	cmd.Flags().IntVar(&size, "size", 1024, "window length in samples")
	cmd.Flags().BoolVar(&periodic, "periodic", false, "use the periodic (FFT) form instead of the symmetric one")

	return cmd
}

func analyzeWindow(t window.Type, size int, opts []window.Option) window.Analysis {
	if len(opts) == 0 || t == window.TypeNone {
		return window.AnalyzeType(t, size)
	}

	return window.Analyze(window.Generate(t, size, opts...))
}

func printAnalysis(w io.Writer, types []window.Type, size int, opts []window.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\t1st Min [bins]\tScallop [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t--------------\t------------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range types {
		a := analyzeWindow(t, size, opts)

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%.2f\t%.4f\t%.4f\n",
			t,
			size,
			a.CoherentGain,
			a.ENBW,
			a.Bandwidth3dB,
			a.HighestSidelobedB,
			a.FirstMinimumBins,
			a.ScallopLossdB,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}
