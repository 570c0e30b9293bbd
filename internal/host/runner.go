package host

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

// Runner drives an Engine from an audio callback. A control goroutine
// publishes panel scans with Update; Process picks up the latest values at
// the start of every sub-block.
type Runner struct {
	engine    Engine
	mode      EngineMode
	blockSize int

	bus   *reverb.ControlBus
	dry   atomic.Uint64
	mixer *Mixer

	params reverb.Params
	wetL   []float64
	wetR   []float64
}

// NewRunner returns a Runner that renders in sub-blocks of blockSize
// samples, starting from reverb.DefaultParams with a fully wet mix.
func NewRunner(engine Engine, mode EngineMode, blockSize int) (*Runner, error) {
	if engine == nil {
		return nil, fmt.Errorf("host runner engine must not be nil")
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("host runner block size must be > 0: %d", blockSize)
	}

	r := &Runner{
		engine:    engine,
		mode:      mode,
		blockSize: blockSize,
		bus:       reverb.NewControlBus(reverb.DefaultParams()),
		mixer:     NewMixer(blockSize, 0),
		wetL:      make([]float64, blockSize),
		wetR:      make([]float64, blockSize),
	}
	return r, nil
}

// Mode returns the engine mode the runner conditions controls for.
func (r *Runner) Mode() EngineMode { return r.mode }

// Bus returns the parameter bus read by Process.
func (r *Runner) Bus() *reverb.ControlBus { return r.bus }

// Update conditions a panel scan and publishes it. It is safe to call from
// a goroutine other than the one calling Process.
func (r *Runner) Update(c *Controls) Conditioned {
	cond := c.Condition(r.mode)
	r.bus.Store(cond.Params)
	r.SetDry(cond.Dry)
	return cond
}

// SetDry publishes the dry mix amount.
func (r *Runner) SetDry(dry float64) {
	r.dry.Store(math.Float64bits(dry))
}

// Process renders len(inL) samples. Output slices may alias the inputs.
// It panics if the four slices differ in length.
func (r *Runner) Process(inL, inR, outL, outR []float64) {
	n := len(inL)
	if len(inR) != n || len(outL) != n || len(outR) != n {
		panic("host: Runner slice length mismatch")
	}

	for start := 0; start < n; start += r.blockSize {
		end := min(start+r.blockSize, n)
		m := end - start

		r.bus.Snapshot(&r.params)
		dry := math.Float64frombits(r.dry.Load())

		wetL, wetR := r.wetL[:m], r.wetR[:m]
		r.engine.ProcessBlock(inL[start:end], inR[start:end], wetL, wetR, &r.params)
		r.mixer.Process(outL[start:end], outR[start:end], wetL, wetR, inL[start:end], inR[start:end], dry)
	}
}
