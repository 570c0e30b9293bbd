package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-fdn/dsp/dither"
	"github.com/cwbudde/algo-fdn/internal/host"
	"github.com/cwbudde/algo-fdn/internal/testutil"
	"github.com/cwbudde/algo-fdn/internal/wavio"
)

func TestParseGains(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64 // value of line 7
		wantErr bool
	}{
		{name: "single", in: "0.7", want: 0.7},
		{name: "per line", in: "0,0.1,0.2,0.3,0.4,0.5,0.6, 0.9", want: 0.9},
		{name: "wrong count", in: "0.1,0.2", wantErr: true},
		{name: "not a number", in: "loud", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := parseGains(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && g[7] != tc.want {
				t.Fatalf("gain 7 = %v, want %v", g[7], tc.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-out", "x.wav", "-mode", "Massive", "-dry", "0.25", "-gains", "0.8"})
	if err != nil {
		t.Fatal(err)
	}
	if o.mode != host.ModeMassive || o.controls.Sliders[0] != 0.25 || o.controls.Sliders[8] != 0.8 {
		t.Fatalf("unexpected options: %+v", o)
	}
	if o.dither != dither.Triangular {
		t.Fatalf("dither = %s, want triangular", o.dither)
	}

	o, err = parseFlags([]string{"-out", "x.wav", "-selector", "0.3"})
	if err != nil {
		t.Fatal(err)
	}
	if o.mode != host.ModeShimmer {
		t.Fatalf("selector mode = %v, want shimmer", o.mode)
	}

	for _, args := range [][]string{
		{"-mode", "studio"},
		{"-out", "x.wav", "-mode", "hall"},
		{"-out", "x.wav", "-tail", "-1"},
		{"-out", "x.wav", "-dither", "gaussian"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Fatalf("parseFlags(%v): expected error", args)
		}
	}
}

func TestRunImpulse(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ir.wav")
	o, err := parseFlags([]string{"-out", out, "-tail", "0.5", "-capacity", "24000", "-report=false"})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(o); err != nil {
		t.Fatal(err)
	}

	s, err := wavio.Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 1+24000 {
		t.Fatalf("frames = %d, want %d", s.Frames(), 1+24000)
	}
	if testutil.FirstAbove(s.Left, 1e-6) < 0 {
		t.Fatal("impulse response is silent")
	}
}

func TestPrintReport(t *testing.T) {
	o, err := parseFlags([]string{"-out", "unused.wav"})
	if err != nil {
		t.Fatal(err)
	}
	cond := o.controls.Condition(o.mode)

	s := wavio.Stereo{SampleRate: 48000, Left: testutil.Impulse(4800, 10), Right: testutil.Impulse(4800, 20)}
	var buf bytes.Buffer
	if err := printReport(&buf, o.mode, cond, s); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"Mode", "studio", "Onset", "10 samples", "RT60"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("report missing %q:\n%s", want, buf.String())
		}
	}
}
