package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/buffer"
	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/delay"
	"github.com/cwbudde/algo-fdn/internal/fastmath"
)

const (
	// NumLines is the number of delay lines in the network.
	NumLines = 8

	// DefaultLineCapacity is the per-line sample capacity of the arena.
	DefaultLineCapacity = 240000

	// DefaultArenaSize is the arena length New requires with default options.
	DefaultArenaSize = NumLines * DefaultLineCapacity

	// DefaultShifterWindow is the sweep window of the shimmer shifters.
	DefaultShifterWindow = 1600

	// delayHeadroom separates the base delay ceiling from the capacity so
	// positive modulation never reads past the oldest sample.
	delayHeadroom = 10000

	minLineCapacity = delayHeadroom + 2*int(massiveDepth)

	// delaySeconds is the length of line 0 at size 1.
	delaySeconds = 0.15

	inputGain  = 0.25
	outputGain = 0.25
)

// lineRatios are the relative line lengths before skew is applied.
var lineRatios = [NumLines]float64{1.0, 1.137, 1.289, 1.458, 1.632, 1.815, 2.053, 2.311}

// ErrArenaTooSmall is returned when the supplied arena cannot hold every
// delay line.
var ErrArenaTooSmall = buffer.ErrArenaTooSmall

// Option configures a FeedbackDelayNetwork.
type Option func(*config)

type config struct {
	mode          Mode
	lineCapacity  int
	shifterWindow int
}

func defaultConfig() config {
	return config{
		mode:          Studio,
		lineCapacity:  DefaultLineCapacity,
		shifterWindow: DefaultShifterWindow,
	}
}

// WithMode selects the voicing before the first block.
func WithMode(m Mode) Option {
	return func(cfg *config) { cfg.mode = m }
}

// WithLineCapacity sets the per-line capacity in samples. The base delay
// ceiling stays 10000 samples below it.
func WithLineCapacity(samples int) Option {
	return func(cfg *config) { cfg.lineCapacity = samples }
}

// WithShifterDelay sets the sweep window of the shimmer shifters in samples.
func WithShifterDelay(samples int) Option {
	return func(cfg *config) { cfg.shifterWindow = samples }
}

// ArenaSize returns the arena length needed for a per-line capacity.
func ArenaSize(lineCapacity int) int {
	return NumLines * lineCapacity
}

// FeedbackDelayNetwork is a stereo-in, stereo-out eight-line FDN reverb.
//
// Per sample, the input is summed to mono and diffused, every line is read
// at its modulated delay, the reads are mixed through a Householder
// reflection, scaled by per-line feedback, re-injected with the diffused
// input, shaped by the voicing's tone filter, optionally pitch-shifted and
// soft-limited before being written back. Outputs are alternating-sign sums
// of the pre-mix reads.
//
// The delay memory is borrowed from the caller's arena and never
// reallocated. ProcessBlock does not allocate.
type FeedbackDelayNetwork struct {
	sampleRate    float64
	lineCapacity  int
	maxBaseDelay  float64
	shifterWindow int

	mode    Mode
	voicing voicing
	started bool

	lines     [NumLines]delay.Line
	diffusers DiffuserChain
	bank      lineBank

	params    Params
	baseDelay [NumLines]float64
	feedback  [NumLines]float64
	inject    [NumLines]bool

	reads [NumLines]float64
	mixed [NumLines]float64
}

// New creates a network at sampleRate backed by arena, which must hold at
// least ArenaSize(lineCapacity) samples.
func New(sampleRate float64, arena []float64, opts ...Option) (*FeedbackDelayNetwork, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(cfg.mode))
	}
	if cfg.lineCapacity < minLineCapacity {
		return nil, fmt.Errorf("fdn line capacity must be >= %d: %d", minLineCapacity, cfg.lineCapacity)
	}

	f := &FeedbackDelayNetwork{
		lineCapacity:  cfg.lineCapacity,
		shifterWindow: cfg.shifterWindow,
		mode:          cfg.mode,
	}
	if err := f.Init(sampleRate, arena); err != nil {
		return nil, err
	}

	return f, nil
}

// Init binds the network to arena, clears all state and re-arms mode
// selection. The configured mode, capacity and shifter window are kept.
func (f *FeedbackDelayNetwork) Init(sampleRate float64, arena []float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("fdn sample rate must be positive and finite: %f", sampleRate)
	}
	if f.lineCapacity == 0 {
		f.lineCapacity = DefaultLineCapacity
	}
	if f.shifterWindow == 0 {
		f.shifterWindow = DefaultShifterWindow
	}

	regions, err := buffer.FromSlice(arena).Partition(NumLines, f.lineCapacity)
	if err != nil {
		return fmt.Errorf("fdn arena: %w", err)
	}

	for k := range f.lines {
		if err := f.lines[k].Bind(regions[k]); err != nil {
			return err
		}
		f.lines[k].Reset()
	}

	f.sampleRate = sampleRate
	f.maxBaseDelay = float64(f.lineCapacity - delayHeadroom)

	if err := f.bank.init(sampleRate, f.shifterWindow); err != nil {
		return fmt.Errorf("fdn shifter: %w", err)
	}
	f.diffusers.Init()

	f.voicing = voicingFor(f.mode)
	f.started = false

	p := DefaultParams()
	f.applyParams(&p)

	return nil
}

// SetMode selects the voicing. It fails with ErrModeLocked once a block
// has been processed; call Init or Reset to switch modes.
func (f *FeedbackDelayNetwork) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	if f.started {
		return ErrModeLocked
	}

	f.mode = m
	f.voicing = voicingFor(m)
	f.applyParams(&f.params)

	return nil
}

// Mode returns the active voicing.
func (f *FeedbackDelayNetwork) Mode() Mode { return f.mode }

// SampleRate returns sample rate in Hz.
func (f *FeedbackDelayNetwork) SampleRate() float64 { return f.sampleRate }

// LineCapacity returns the per-line capacity in samples.
func (f *FeedbackDelayNetwork) LineCapacity() int { return f.lineCapacity }

// MaxBaseDelay returns the ceiling applied to every unmodulated delay.
func (f *FeedbackDelayNetwork) MaxBaseDelay() float64 { return f.maxBaseDelay }

// ModDepth returns the modulation depth of the active voicing in samples.
func (f *FeedbackDelayNetwork) ModDepth() float64 { return f.voicing.depth() }

// Params returns the sanitized parameters of the last block.
func (f *FeedbackDelayNetwork) Params() Params { return f.params }

// BaseDelay returns the unmodulated delay of line k in samples.
func (f *FeedbackDelayNetwork) BaseDelay(k int) float64 { return f.baseDelay[k] }

// Feedback returns the feedback gain of line k and whether the diffused
// input is injected into it.
func (f *FeedbackDelayNetwork) Feedback(k int) (gain float64, injected bool) {
	return f.feedback[k], f.inject[k]
}

// Routing returns the warp routing of the last block. It only affects
// the signal in Massive mode.
func (f *FeedbackDelayNetwork) Routing() WarpRouting { return f.bank.routing }

// Reset clears every line, filter, modulator and shifter and re-arms mode
// selection. The arena binding and parameters are kept.
func (f *FeedbackDelayNetwork) Reset() {
	for k := range f.lines {
		f.lines[k].Reset()
	}
	f.diffusers.Reset()
	f.bank.reset()
	f.started = false
}

// ProcessBlock renders len(inL) samples. p is snapshotted once at the
// start of the block; nil keeps the previous parameters. Output slices may
// alias the inputs. It panics if the four slices differ in length.
func (f *FeedbackDelayNetwork) ProcessBlock(inL, inR, outL, outR []float64, p *Params) {
	n := len(inL)
	if len(inR) != n || len(outL) != n || len(outR) != n {
		panic("reverb: ProcessBlock slice length mismatch")
	}

	f.started = true
	if p != nil {
		f.applyParams(p)
	}

	v := f.voicing
	depth := v.depth()

	for i := range n {
		diffused := f.diffusers.ProcessSample((inL[i] + inR[i]) * 0.5)

		for k := range NumLines {
			mod := v.modulation(&f.bank, k)
			f.reads[k] = f.lines[k].Read(f.baseDelay[k] + mod*depth)
		}

		Householder(f.mixed[:], f.reads[:])

		for k := range NumLines {
			next := f.mixed[k] * f.feedback[k]
			if f.inject[k] {
				next += diffused * inputGain
			}
			next = v.shape(&f.bank, k, next)
			next = v.route(&f.bank, k, next)
			f.lines[k].Write(SoftLimit(next))
		}

		r := &f.reads
		outL[i] = (r[0] - r[2] + r[4] - r[6]) * outputGain
		outR[i] = (r[1] - r[3] + r[5] - r[7]) * outputGain
	}
}

// applyParams sanitizes p and derives the block-rate delay and feedback
// settings.
func (f *FeedbackDelayNetwork) applyParams(p *Params) {
	f.params = *p
	f.params.sanitize()
	q := &f.params

	exponent := 0.5 + q.Skew
	scale := q.Size * f.sampleRate * delaySeconds
	for k := range NumLines {
		d := fastmath.Pow(lineRatios[k], exponent) * scale
		f.baseDelay[k] = min(d, f.maxBaseDelay)
		f.feedback[k], f.inject[k] = f.voicing.feedback(q.Gains[k], q.Decay)
	}

	f.voicing.prepare(&f.bank, q)
}
