package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cwbudde/algo-fdn/dsp/signal"
	"github.com/cwbudde/algo-fdn/internal/host"
)

const bytesPerFrame = 2 * 4 // stereo float32

// stream adapts a host.Runner to the io.Reader pulled by the audio device.
// Output is interleaved little-endian float32 stereo.
type stream struct {
	mu     sync.Mutex
	runner *host.Runner
	src    signal.Source
	gain   float64

	inL, inR   []float64
	outL, outR []float64
	frames     int64
}

func newStream(runner *host.Runner, src signal.Source, gain float64) *stream {
	return &stream{runner: runner, src: src, gain: gain}
}

// Read renders len(p)/8 frames. A trailing partial frame is left zeroed.
func (s *stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) / bytesPerFrame
	if cap(s.inL) < n {
		s.inL = make([]float64, n)
		s.inR = make([]float64, n)
		s.outL = make([]float64, n)
		s.outR = make([]float64, n)
	}
	inL, inR := s.inL[:n], s.inR[:n]
	outL, outR := s.outL[:n], s.outR[:n]

	s.src.Fill(inL, inR)
	s.runner.Process(inL, inR, outL, outR)

	for i := range n {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(float32(outL[i]*s.gain)))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(float32(outR[i]*s.gain)))
	}
	clear(p[n*bytesPerFrame:])
	s.frames += int64(n)

	return len(p), nil
}

// Frames returns the number of frames rendered so far.
func (s *stream) Frames() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
