package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

var errInvalidWAV = errors.New("not a valid WAV file")

// pcmReader decodes integer PCM WAV data in chunks and downmixes each chunk
// to mono samples in [-1, 1].
type pcmReader struct {
	dec      *wav.Decoder
	buf      *audio.IntBuffer
	channels int
	scale    float64
	offset   float64
	mono     []float64
}

func newPCMReader(r io.ReadSeeker, chunkSize int) (*pcmReader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errInvalidWAV
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("unsupported WAV encoding %d, only integer PCM is supported", dec.WavAudioFormat)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)

	if channels <= 0 || bitDepth <= 0 {
		return nil, fmt.Errorf("%w: %d channels, %d bits", errInvalidWAV, channels, bitDepth)
	}

	p := &pcmReader{
		dec:      dec,
		channels: channels,
		scale:    float64(int64(1) << (bitDepth - 1)),
		mono:     make([]float64, chunkSize),
		buf: &audio.IntBuffer{
			Format:         dec.Format(),
			Data:           make([]int, chunkSize*channels),
			SourceBitDepth: bitDepth,
		},
	}

	// 8-bit WAV samples are unsigned.
	if bitDepth == 8 {
		p.offset = 128
	}

	return p, nil
}

// SampleRate returns the file's sample rate in Hz.
func (p *pcmReader) SampleRate() int {
	return int(p.dec.SampleRate)
}

// Channels returns the number of interleaved channels in the file.
func (p *pcmReader) Channels() int {
	return p.channels
}

// Next returns the next chunk of mono samples. The slice is reused by the
// following call. Next returns io.EOF once the data chunk is exhausted.
func (p *pcmReader) Next() ([]float64, error) {
	n, err := p.dec.PCMBuffer(p.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode PCM: %w", err)
	}

	frames := n / p.channels
	if frames == 0 {
		return nil, io.EOF
	}

	return downmix(p.mono[:frames], p.buf.Data[:frames*p.channels], p.channels, p.offset, p.scale), nil
}

// downmix averages interleaved integer frames into dst, mapping each sample
// to (v - offset) / scale.
func downmix(dst []float64, data []int, channels int, offset, scale float64) []float64 {
	gain := 1 / (scale * float64(channels))

	for i := range dst {
		sum := 0.0
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += float64(v) - offset
		}

		dst[i] = sum * gain
	}

	return dst
}
