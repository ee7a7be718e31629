package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/window"
	"github.com/cwbudde/algo-stft/internal/testutil"
)

func ExampleEngine() {
	e, err := stft.New(window.TypeNone, 8, 4)
	if err != nil {
		panic(err)
	}

	// One full cycle per window puts all energy into bin 1.
	e.AppendSamples(testutil.BinSine[float64](1, 8, 1, 8))

	column := make([]float64, e.OutputSize())

	e.ComputeMagnitudeColumn(column)
	fmt.Printf("%.3f\n", column)

	e.ComputeColumn(column)
	fmt.Printf("%.3f\n", column)

	e.MoveToNextColumn()
	fmt.Println(e.Len(), e.ContainsEnoughToCompute())
	// Output:
	// [0.000 4.000 0.000 0.000]
	// [0.000 0.602 0.000 0.000]
	// 4 false
}

func ExampleEngine_Feed() {
	e, err := stft.New(window.TypeHanning, 8, 4)
	if err != nil {
		panic(err)
	}

	column := make([]float64, e.OutputSize())
	n := e.Feed(make([]float64, 16), column, func([]float64) {})

	fmt.Println(n, e.Len())
	// Output:
	// 3 4
}

func ExampleParseBackend() {
	b, err := stft.ParseBackend("Gonum")
	fmt.Println(b, err)
	// Output:
	// gonum <nil>
}
