package onepole

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fdn/internal/testutil"
)

func TestSetFrequencyCoefficients(t *testing.T) {
	var f Filter
	f.SetCutoff(6000, 48000)

	a0, b1 := f.Coefficients()
	wantB1 := math.Exp(-2 * math.Pi * 6000 / 48000)
	if math.Abs(b1-wantB1) > 1e-9 {
		t.Fatalf("b1 = %v, want %v", b1, wantB1)
	}
	if math.Abs(a0+b1-1) > 1e-12 {
		t.Fatalf("a0+b1 = %v, want 1", a0+b1)
	}
}

func TestDCGainIsUnity(t *testing.T) {
	var f Filter
	f.Init(2000.0 / 48000)

	var y float64
	for i := 0; i < 4096; i++ {
		y = f.ProcessSample(1)
	}
	if math.Abs(y-1) > 1e-9 {
		t.Fatalf("DC output = %v, want 1", y)
	}
}

func TestHigherCutoffIsBrighter(t *testing.T) {
	in := testutil.DeterministicSine(8000, 48000, 1, 4800)

	energy := func(cutoff float64) float64 {
		var f Filter
		f.Init(cutoff / 48000)
		buf := append([]float64(nil), in...)
		f.ProcessInPlace(buf)
		var e float64
		for _, v := range buf[480:] {
			e += v * v
		}
		return e
	}

	dark := energy(2000)
	bright := energy(10000)
	if bright <= dark {
		t.Fatalf("10 kHz cutoff energy %v should exceed 2 kHz cutoff energy %v", bright, dark)
	}
}

func TestSetFrequencyClampsOutOfRange(t *testing.T) {
	var f Filter
	for _, fc := range []float64{-1, 0, 0.75, math.NaN()} {
		f.Init(fc)
		y := f.ProcessSample(1)
		if math.IsNaN(y) || math.IsInf(y, 0) || y < 0 || y > 1 {
			t.Fatalf("SetFrequency(%v): first output %v not in [0,1]", fc, y)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	var f Filter
	f.Init(0.1)
	f.ProcessSample(1)
	f.Reset()

	a0, _ := f.Coefficients()
	if got := f.ProcessSample(1); math.Abs(got-a0) > 1e-12 {
		t.Fatalf("after reset first output = %v, want a0 = %v", got, a0)
	}
}
