package host

import (
	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Mixer blends the engine output with the dry input:
//
//	out = wet*(1-dry) + in*dry
//
// The dry amount ramps linearly from the previous block's value to the new
// one across each block.
type Mixer struct {
	dry      float64
	dryGain  []float64
	wetGain  []float64
	scratchL []float64
	scratchR []float64
}

// NewMixer returns a Mixer for blocks of up to maxBlock samples, starting
// at the given dry amount.
func NewMixer(maxBlock int, dry float64) *Mixer {
	maxBlock = max(maxBlock, 1)
	return &Mixer{
		dry:      core.Clamp01(dry),
		dryGain:  make([]float64, maxBlock),
		wetGain:  make([]float64, maxBlock),
		scratchL: make([]float64, maxBlock),
		scratchR: make([]float64, maxBlock),
	}
}

// Dry returns the dry amount reached at the end of the last block.
func (m *Mixer) Dry() float64 { return m.dry }

// Reset jumps to dry without a ramp.
func (m *Mixer) Reset(dry float64) { m.dry = core.Clamp01(dry) }

// Process writes the mix of wet and in into out for both channels. Any of
// the output slices may alias wet or in. It panics if the slices differ in
// length or exceed the size given to NewMixer.
func (m *Mixer) Process(outL, outR, wetL, wetR, inL, inR []float64, dry float64) {
	n := len(outL)
	if len(outR) != n || len(wetL) != n || len(wetR) != n || len(inL) != n || len(inR) != n {
		panic("host: Mixer slice length mismatch")
	}
	if n > len(m.dryGain) {
		panic("host: Mixer block larger than configured")
	}
	if n == 0 {
		return
	}

	dry = core.Clamp01(dry)
	dryGain := m.dryGain[:n]
	wetGain := m.wetGain[:n]
	step := (dry - m.dry) / float64(n)
	for i := range dryGain {
		g := m.dry + step*float64(i+1)
		dryGain[i] = g
		wetGain[i] = 1 - g
	}
	m.dry = dry

	dl := m.scratchL[:n]
	dr := m.scratchR[:n]
	vecmath.MulBlock(dl, inL, dryGain)
	vecmath.MulBlock(dr, inR, dryGain)

	vecmath.MulBlock(outL, wetL, wetGain)
	vecmath.MulBlock(outR, wetR, wetGain)
	vecmath.AddBlockInPlace(outL, dl)
	vecmath.AddBlockInPlace(outR, dr)
}
