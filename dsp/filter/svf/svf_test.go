package svf

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fdn/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		wantErr    bool
	}{
		{name: "valid 48000", sampleRate: 48000},
		{name: "invalid zero", sampleRate: 0, wantErr: true},
		{name: "invalid NaN", sampleRate: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sampleRate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// rms returns the steady-state RMS of the chosen output for a sine input.
func rms(t *testing.T, freq, res, toneHz float64, pick func(*Filter) float64) float64 {
	t.Helper()
	f, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}
	f.SetFreq(freq)
	f.SetRes(res)

	in := testutil.DeterministicSine(toneHz, 48000, 1, 9600)
	var sum float64
	for i, x := range in {
		f.Process(x)
		if i >= 4800 {
			y := pick(f)
			sum += y * y
		}
	}
	return math.Sqrt(sum / 4800)
}

func TestLowPassAttenuatesHighs(t *testing.T) {
	low := func(f *Filter) float64 { return f.Low() }
	pass := rms(t, 1000, 0.1, 100, low)
	stop := rms(t, 1000, 0.1, 10000, low)
	if stop >= pass*0.1 {
		t.Fatalf("low-pass: 10 kHz rms %v should be far below 100 Hz rms %v", stop, pass)
	}
}

func TestBandPassPeaksAtCentre(t *testing.T) {
	band := func(f *Filter) float64 { return f.Band() }
	centre := rms(t, 1000, 0.5, 1000, band)
	below := rms(t, 1000, 0.5, 125, band)
	above := rms(t, 1000, 0.5, 8000, band)
	if centre <= below || centre <= above {
		t.Fatalf("band-pass rms: centre=%v below=%v above=%v", centre, below, above)
	}
}

func TestHigherResonanceNarrowsBand(t *testing.T) {
	f := &Filter{}
	f.Init(48000)
	f.SetRes(0.1)
	loose := f.Damping()
	f.SetRes(0.8)
	tight := f.Damping()
	if tight >= loose {
		t.Fatalf("damping at res 0.8 (%v) should be below res 0.1 (%v)", tight, loose)
	}
	f.SetRes(1)
	if f.Damping() < minDamping {
		t.Fatalf("damping %v below floor %v", f.Damping(), minDamping)
	}
}

func TestOutputsSumToInput(t *testing.T) {
	f, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}
	f.SetFreq(440)
	f.SetRes(0.3)

	in := testutil.DeterministicNoise(7, 1, 512)
	for i, x := range in {
		f.Process(x)
		got := f.Low() + f.Damping()*f.Band() + f.High()
		if math.Abs(got-x) > 1e-9 {
			t.Fatalf("sample %d: low+k*band+high = %v, want %v", i, got, x)
		}
	}
}

func TestFrequencyAboveNyquistStaysFinite(t *testing.T) {
	f, err := New(22050)
	if err != nil {
		t.Fatal(err)
	}
	f.SetFreq(20480)
	f.SetRes(0.8)

	out := make([]float64, 2048)
	for i, x := range testutil.DeterministicNoise(3, 1, len(out)) {
		f.Process(x)
		out[i] = f.Band()
	}
	testutil.RequireFinite(t, out)
}

func TestResetClearsState(t *testing.T) {
	f, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}
	f.Process(1)
	f.Reset()
	if f.Low() != 0 || f.Band() != 0 || f.High() != 0 {
		t.Fatal("outputs not cleared by Reset")
	}
	f.Process(0)
	if f.Low() != 0 || f.Band() != 0 {
		t.Fatal("state not cleared by Reset")
	}
}
