package host

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

// ErrEngineUnavailable is returned for modes whose engine is not part of
// this module.
var ErrEngineUnavailable = errors.New("host: engine not available")

// EngineMode is the boot-time selection of the module.
type EngineMode int

const (
	ModeStudio EngineMode = iota
	ModeShimmer
	ModeMassive
	ModeResonator
	ModeLegacy
)

// Selector boundaries on the first slider, read once at boot.
const (
	selectShimmer   = 0.2
	selectMassive   = 0.4
	selectResonator = 0.6
	selectLegacy    = 0.8
)

// SelectMode maps the boot-time slider position to a mode:
// [0,0.2) Studio, [0.2,0.4) Shimmer, [0.4,0.6) Massive,
// [0.6,0.8) Resonator, [0.8,1] Legacy. NaN selects Studio.
func SelectMode(selector float64) EngineMode {
	switch {
	case selector >= selectLegacy:
		return ModeLegacy
	case selector >= selectResonator:
		return ModeResonator
	case selector >= selectMassive:
		return ModeMassive
	case selector >= selectShimmer:
		return ModeShimmer
	default:
		return ModeStudio
	}
}

// String returns the lower-case mode name.
func (m EngineMode) String() string {
	switch m {
	case ModeStudio:
		return "studio"
	case ModeShimmer:
		return "shimmer"
	case ModeMassive:
		return "massive"
	case ModeResonator:
		return "resonator"
	case ModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("engine(%d)", int(m))
	}
}

// ReverbMode returns the network voicing for FDN modes.
func (m EngineMode) ReverbMode() (reverb.Mode, bool) {
	switch m {
	case ModeStudio:
		return reverb.Studio, true
	case ModeShimmer:
		return reverb.Shimmer, true
	case ModeMassive:
		return reverb.Massive, true
	default:
		return 0, false
	}
}

// ParseEngineMode converts a mode name into an EngineMode.
func ParseEngineMode(name string) (EngineMode, error) {
	for m := ModeStudio; m <= ModeLegacy; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("host: unknown engine mode %q", name)
}

// Engine renders one block of wet signal. The output slices may alias the
// inputs.
type Engine interface {
	ProcessBlock(inL, inR, outL, outR []float64, p *reverb.Params)
}

// Config sizes the engine built by NewEngine.
type Config struct {
	core.ProcessorConfig
	// LineCapacity is the per-line delay capacity in samples.
	LineCapacity int
	// ShifterWindow is the shimmer shifter sweep window in samples.
	ShifterWindow int
}

// DefaultConfig returns the module's hardware settings: 48 kHz, 32-sample
// blocks and 240000-sample delay lines.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		LineCapacity:    reverb.DefaultLineCapacity,
		ShifterWindow:   reverb.DefaultShifterWindow,
	}
}

// NewEngine allocates the delay arena and builds the engine for mode.
// Resonator and Legacy return ErrEngineUnavailable.
func NewEngine(mode EngineMode, cfg Config) (Engine, error) {
	rm, ok := mode.ReverbMode()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineUnavailable, mode)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LineCapacity <= 0 {
		return nil, fmt.Errorf("host line capacity must be > 0: %d", cfg.LineCapacity)
	}

	arena := make([]float64, reverb.ArenaSize(cfg.LineCapacity))
	net, err := reverb.New(cfg.SampleRate, arena,
		reverb.WithMode(rm),
		reverb.WithLineCapacity(cfg.LineCapacity),
		reverb.WithShifterDelay(cfg.ShifterWindow),
	)
	if err != nil {
		return nil, err
	}
	return net, nil
}
