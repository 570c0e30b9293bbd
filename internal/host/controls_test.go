package host

import (
	"math"
	"testing"
)

func TestControlsCondition(t *testing.T) {
	tests := []struct {
		name      string
		controls  Controls
		mode      EngineMode
		wantSize  float64
		wantWarp  float64
		wantDecay float64
	}{
		{
			name:      "knobs only",
			controls:  Controls{TimeKnob: 0.5, ModKnob: 0.25, DecayKnob: 1},
			mode:      ModeStudio,
			wantSize:  1.7,
			wantWarp:  0.25,
			wantDecay: 0.98,
		},
		{
			name:      "cv sums and clamps",
			controls:  Controls{TimeKnob: 0.8, TimeCV: 0.8, ModKnob: 0.2, ModCV: -0.5, DecayKnob: 0.6, DecayCV: 0.6},
			mode:      ModeMassive,
			wantSize:  3.2,
			wantWarp:  0,
			wantDecay: 1,
		},
		{
			name:      "shimmer safe decay",
			controls:  Controls{DecayKnob: 0.5},
			mode:      ModeShimmer,
			wantSize:  0.2,
			wantWarp:  0,
			wantDecay: 0.49,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.controls.Condition(tc.mode)
			if math.Abs(got.Params.Size-tc.wantSize) > 1e-12 {
				t.Errorf("Size = %v, want %v", got.Params.Size, tc.wantSize)
			}
			if got.Params.Skew != 0.5 {
				t.Errorf("Skew = %v, want 0.5", got.Params.Skew)
			}
			if math.Abs(got.Params.Warp-tc.wantWarp) > 1e-12 {
				t.Errorf("Warp = %v, want %v", got.Params.Warp, tc.wantWarp)
			}
			if math.Abs(got.Params.Decay-tc.wantDecay) > 1e-12 {
				t.Errorf("Decay = %v, want %v", got.Params.Decay, tc.wantDecay)
			}
		})
	}
}

func TestControlsSliders(t *testing.T) {
	var c Controls
	c.Sliders[0] = 0.3
	for k := 1; k < NumSliders; k++ {
		c.Sliders[k] = float64(k) / 8
	}
	c.Sliders[8] = 2 // out of range

	got := c.Condition(ModeStudio)
	if got.Dry != 0.3 {
		t.Fatalf("Dry = %v, want 0.3", got.Dry)
	}
	for k := range 7 {
		if want := float64(k+1) / 8; got.Params.Gains[k] != want {
			t.Fatalf("gain %d = %v, want %v", k, got.Params.Gains[k], want)
		}
	}
	if got.Params.Gains[7] != 1 {
		t.Fatalf("gain 7 = %v, want clamped 1", got.Params.Gains[7])
	}
}
