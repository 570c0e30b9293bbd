// Package signal provides endless stereo test sources for driving a
// processor in real time.
package signal

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

// Source fills stereo blocks. Successive calls continue where the previous
// one stopped.
type Source interface {
	Fill(left, right []float64)
}

// Option configures the generator-backed sources.
type Option func(*config)

type config struct {
	seed      int64
	amplitude float64
}

// WithSeed sets the noise seed (default 1).
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithAmplitude sets the peak level (default 1).
func WithAmplitude(amp float64) Option {
	return func(c *config) { c.amplitude = amp }
}

func applyOptions(opts []Option) config {
	c := config{seed: 1, amplitude: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// ImpulseTrain emits a click at the start of every period.
type ImpulseTrain struct {
	period    int
	amplitude float64
	pos       int
}

// NewImpulseTrain returns a click every periodSeconds at the configured
// sample rate.
func NewImpulseTrain(periodSeconds float64, procOpts []core.ProcessorOption, opts ...Option) (*ImpulseTrain, error) {
	cfg := core.ApplyProcessorOptions(procOpts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !core.IsFinitePositive(periodSeconds) {
		return nil, fmt.Errorf("impulse train period must be > 0: %f", periodSeconds)
	}
	c := applyOptions(opts)
	return &ImpulseTrain{
		period:    max(int(periodSeconds*cfg.SampleRate), 1),
		amplitude: c.amplitude,
	}, nil
}

// Period returns the click spacing in samples.
func (s *ImpulseTrain) Period() int { return s.period }

func (s *ImpulseTrain) Fill(left, right []float64) {
	for i := range left {
		v := 0.0
		if s.pos == 0 {
			v = s.amplitude
		}
		left[i], right[i] = v, v
		if s.pos++; s.pos >= s.period {
			s.pos = 0
		}
	}
}

// NoiseBurst emits decorrelated white noise for the first burst samples of
// every period.
type NoiseBurst struct {
	period, burst int
	amplitude     float64
	rng           *rand.Rand
	pos           int
}

// NewNoiseBurst returns burstSeconds of noise every periodSeconds.
func NewNoiseBurst(periodSeconds, burstSeconds float64, procOpts []core.ProcessorOption, opts ...Option) (*NoiseBurst, error) {
	cfg := core.ApplyProcessorOptions(procOpts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !core.IsFinitePositive(periodSeconds) {
		return nil, fmt.Errorf("noise burst period must be > 0: %f", periodSeconds)
	}
	if !core.IsFinitePositive(burstSeconds) || burstSeconds > periodSeconds {
		return nil, fmt.Errorf("noise burst length must be in (0, period]: %f", burstSeconds)
	}
	c := applyOptions(opts)
	return &NoiseBurst{
		period:    max(int(periodSeconds*cfg.SampleRate), 1),
		burst:     max(int(burstSeconds*cfg.SampleRate), 1),
		amplitude: c.amplitude,
		rng:       rand.New(rand.NewSource(c.seed)),
	}, nil
}

func (s *NoiseBurst) Fill(left, right []float64) {
	for i := range left {
		if s.pos < s.burst {
			left[i] = (s.rng.Float64()*2 - 1) * s.amplitude
			right[i] = (s.rng.Float64()*2 - 1) * s.amplitude
		} else {
			left[i], right[i] = 0, 0
		}
		if s.pos++; s.pos >= s.period {
			s.pos = 0
		}
	}
}

// Loop repeats a stereo buffer. An empty loop is silent.
type Loop struct {
	left, right []float64
	pos         int
}

// NewLoop returns a Loop over left and right, which must match in length.
func NewLoop(left, right []float64) (*Loop, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("loop channel lengths differ: %d != %d", len(left), len(right))
	}
	return &Loop{left: left, right: right}, nil
}

func (s *Loop) Fill(left, right []float64) {
	if len(s.left) == 0 {
		clear(left)
		clear(right)
		return
	}
	for i := range left {
		left[i], right[i] = s.left[s.pos], s.right[s.pos]
		if s.pos++; s.pos >= len(s.left) {
			s.pos = 0
		}
	}
}
