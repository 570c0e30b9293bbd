package host

import (
	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

// NumSliders is the slider count: slider 0 is the dry mix, sliders 1-8
// are the per-line gains.
const NumSliders = 1 + reverb.NumLines

const (
	sizeBase  = 0.2
	sizeRange = 3.0
	fixedSkew = 0.5

	// safeDecayScale keeps the non-Massive voicings out of self-oscillation.
	safeDecayScale = 0.98
)

// Controls is one scan of the panel: three knob/CV pairs and the sliders,
// all nominally in [0, 1].
type Controls struct {
	TimeKnob, TimeCV   float64
	ModKnob, ModCV     float64
	DecayKnob, DecayCV float64
	Sliders            [NumSliders]float64
}

// Conditioned is the result of Condition: engine parameters plus the dry
// mix applied after the engine.
type Conditioned struct {
	Params reverb.Params
	Dry    float64
	// Time, Mod and Decay are the clamped knob+CV sums before mapping.
	Time, Mod, Decay float64
}

// Condition sums every knob with its CV, clamps to [0, 1] and maps the
// result onto engine parameters for mode:
//
//	Size  = 0.2 + time*3
//	Skew  = 0.5
//	Warp  = mod
//	Decay = decay, scaled by 0.98 outside Massive
func (c *Controls) Condition(mode EngineMode) Conditioned {
	out := Conditioned{
		Time:  core.Clamp01(c.TimeKnob + c.TimeCV),
		Mod:   core.Clamp01(c.ModKnob + c.ModCV),
		Decay: core.Clamp01(c.DecayKnob + c.DecayCV),
		Dry:   core.Clamp01(c.Sliders[0]),
	}

	for k := range out.Params.Gains {
		out.Params.Gains[k] = core.Clamp01(c.Sliders[k+1])
	}
	out.Params.Size = sizeBase + out.Time*sizeRange
	out.Params.Skew = fixedSkew
	out.Params.Warp = out.Mod

	out.Params.Decay = out.Decay
	if mode != ModeMassive {
		out.Params.Decay *= safeDecayScale
	}

	return out
}
