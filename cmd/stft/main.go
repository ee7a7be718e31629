// Command stft computes short-time Fourier transform columns of WAV files
// and prints spectral properties of the supported analysis windows.
//
// Usage:
//
//	stft columns [flags] [file.wav]
//	stft windows [flags] [window-name ...]
//
// Examples:
//
//	stft columns --window hann --window-size 2048 --step-size 512 speech.wav
//	stft columns --mode complex --output bins.csv < tone.wav
//	stft windows --size 4096 blackman nuttall
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
