package host

import (
	"sync"
	"testing"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdn/internal/testutil"
)

// recordingEngine copies its input to the output scaled by Decay and
// records the block sizes and parameters it saw.
type recordingEngine struct {
	blocks []int
	params []reverb.Params
}

func (e *recordingEngine) ProcessBlock(inL, inR, outL, outR []float64, p *reverb.Params) {
	e.blocks = append(e.blocks, len(inL))
	e.params = append(e.params, *p)
	for i := range inL {
		outL[i] = inL[i] * p.Decay
		outR[i] = inR[i] * p.Decay
	}
}

func TestNewRunnerValidation(t *testing.T) {
	if _, err := NewRunner(nil, ModeStudio, 32); err == nil {
		t.Fatal("expected error for nil engine")
	}
	if _, err := NewRunner(&recordingEngine{}, ModeStudio, 0); err == nil {
		t.Fatal("expected error for zero block size")
	}
}

func TestRunnerSplitsIntoBlocks(t *testing.T) {
	e := &recordingEngine{}
	r, err := NewRunner(e, ModeStudio, 32)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Ones(100)
	out := make([]float64, 100)
	r.Process(in, in, out, out)

	want := []int{32, 32, 32, 4}
	if len(e.blocks) != len(want) {
		t.Fatalf("blocks = %v, want %v", e.blocks, want)
	}
	for i := range want {
		if e.blocks[i] != want[i] {
			t.Fatalf("blocks = %v, want %v", e.blocks, want)
		}
	}
	// Default params, fully wet.
	testutil.RequireSliceNearlyEqual(t, out, testutil.DC(0.5, 100), 1e-12)
}

func TestRunnerUpdateReachesEngine(t *testing.T) {
	e := &recordingEngine{}
	r, err := NewRunner(e, ModeMassive, 32)
	if err != nil {
		t.Fatal(err)
	}

	c := Controls{TimeKnob: 1, ModKnob: 0.7, DecayKnob: 1}
	c.Sliders[0] = 0.25
	c.Sliders[3] = 0.9
	cond := r.Update(&c)

	in := testutil.Ones(32)
	outL := make([]float64, 32)
	outR := make([]float64, 32)
	r.Process(in, in, outL, outR)

	got := e.params[0]
	if got != cond.Params {
		t.Fatalf("engine params = %+v, want %+v", got, cond.Params)
	}
	if got.Decay != 1 || got.Warp != 0.7 || got.Gains[2] != 0.9 {
		t.Fatalf("unexpected conditioned params %+v", got)
	}

	// Wet is the input times decay 1, so the dry ramp leaves the sum at 1.
	testutil.RequireSliceNearlyEqual(t, outL, testutil.Ones(32), 1e-12)
}

func TestRunnerInPlace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineCapacity = 24000

	newRunner := func() *Runner {
		e, err := NewEngine(ModeShimmer, cfg)
		if err != nil {
			t.Fatal(err)
		}
		r, err := NewRunner(e, ModeShimmer, cfg.BlockSize)
		if err != nil {
			t.Fatal(err)
		}
		r.SetDry(0.3)
		return r
	}

	in := testutil.DeterministicNoise(5, 0.5, 1000)

	a := newRunner()
	wantL := make([]float64, len(in))
	wantR := make([]float64, len(in))
	a.Process(in, in, wantL, wantR)

	b := newRunner()
	l := append([]float64(nil), in...)
	r := append([]float64(nil), in...)
	b.Process(l, r, l, r)

	testutil.RequireSliceNearlyEqual(t, l, wantL, 0)
	testutil.RequireSliceNearlyEqual(t, r, wantR, 0)
}

func TestRunnerDryPassesInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineCapacity = 24000
	e, err := NewEngine(ModeStudio, cfg)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(e, ModeStudio, cfg.BlockSize)
	if err != nil {
		t.Fatal(err)
	}
	r.mixer.Reset(1)
	r.SetDry(1)

	in := testutil.DeterministicSine(440, cfg.SampleRate, 0.5, 4800)
	outL := make([]float64, len(in))
	outR := make([]float64, len(in))
	r.Process(in, in, outL, outR)

	testutil.RequireSliceNearlyEqual(t, outL, in, 1e-12)
	testutil.RequireSliceNearlyEqual(t, outR, in, 1e-12)
}

func TestRunnerConcurrentUpdate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineCapacity = 24000
	e, err := NewEngine(ModeMassive, cfg)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(e, ModeMassive, cfg.BlockSize)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		var c Controls
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			v := float64(i%100) / 100
			c.TimeKnob, c.ModKnob, c.DecayKnob = v, v, v
			for k := range c.Sliders {
				c.Sliders[k] = v
			}
			r.Update(&c)
		}
	}()

	in := testutil.DeterministicNoise(9, 0.5, 32)
	outL := make([]float64, 32)
	outR := make([]float64, 32)
	for range 500 {
		r.Process(in, in, outL, outR)
		testutil.RequireBounded(t, outL, 2)
		testutil.RequireBounded(t, outR, 2)
	}

	close(done)
	wg.Wait()
}
