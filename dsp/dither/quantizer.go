package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultBitDepth = 16
	defaultSeed     = 1
	minBitDepth     = 2
	maxBitDepth     = 32
)

type config struct {
	bitDepth int
	typ      Type
	seed     uint64
}

// Option configures a Quantizer.
type Option func(*config) error

// WithBitDepth sets the target bit depth (2 to 32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithType sets the noise distribution (default Triangular).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type: %d", int(t))
		}
		cfg.typ = t
		return nil
	}
}

// WithSeed seeds the noise source. Equal seeds give identical output.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Quantizer maps samples in [-1, 1] to signed integers of a fixed bit depth.
// Out-of-range input saturates.
type Quantizer struct {
	bitDepth int
	typ      Type
	rng      *rand.Rand

	scale  float64
	lo, hi int
}

// NewQuantizer returns a 16-bit triangular quantizer unless opts say
// otherwise.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := config{bitDepth: defaultBitDepth, typ: Triangular, seed: defaultSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	peak := int64(1)<<(cfg.bitDepth-1) - 1
	return &Quantizer{
		bitDepth: cfg.bitDepth,
		typ:      cfg.typ,
		rng:      rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)),
		scale:    float64(peak),
		lo:       int(-peak - 1),
		hi:       int(peak),
	}, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither distribution.
func (q *Quantizer) Type() Type { return q.typ }

// ProcessInteger quantizes one sample. NaN maps to zero.
func (q *Quantizer) ProcessInteger(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	v := x*q.scale + q.noise()
	if v >= float64(q.hi) {
		return q.hi
	}
	if v <= float64(q.lo) {
		return q.lo
	}
	return int(math.Round(v))
}

// Process quantizes src into dst.
func (q *Quantizer) Process(dst []int, src []float64) {
	for i, x := range src {
		dst[i] = q.ProcessInteger(x)
	}
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.rng.Float64() - 0.5
	case Triangular:
		return q.rng.Float64() - q.rng.Float64()
	default:
		return 0
	}
}
