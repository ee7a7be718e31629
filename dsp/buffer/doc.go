// Package buffer provides the sample FIFO that streaming analysis is built
// on.
//
// [Ring] separates reading from consuming: PeekFront copies samples from the
// front without removing them and DropFront discards them. An STFT reads a
// full window, then drops only the hop, so the overlap between consecutive
// frames stays buffered.
package buffer
