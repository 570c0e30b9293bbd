package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

func ExampleFeedbackDelayNetwork() {
	arena := make([]float64, reverb.DefaultArenaSize)
	f, err := reverb.New(48000, arena, reverb.WithMode(reverb.Studio))
	if err != nil {
		panic(err)
	}

	p := reverb.DefaultParams()
	p.Size = 1000.0 / 7200.0 // line 0 at 1000 samples

	in := make([]float64, 2048)
	in[0] = 1
	outL := make([]float64, len(in))
	outR := make([]float64, len(in))
	for start := 0; start < len(in); start += 32 {
		end := start + 32
		f.ProcessBlock(in[start:end], in[start:end], outL[start:end], outR[start:end], &p)
	}

	for i, v := range outL {
		if v != 0 {
			fmt.Println("first echo at sample", i)
			break
		}
	}
	fmt.Printf("line 0 delay %.0f samples\n", f.BaseDelay(0))
	// Output:
	// first echo at sample 1000
	// line 0 delay 1000 samples
}

func ExampleRouteWarp() {
	for _, warp := range []float64{0.5, 0.7, 0.9} {
		r := reverb.RouteWarp(warp)
		fmt.Printf("warp %.1f: mix %.2f, %+.1f st\n", warp, r.Mix, r.TranspositionA)
	}
	// Output:
	// warp 0.5: mix 0.00, -0.3 st
	// warp 0.7: mix 0.25, +12.0 st
	// warp 0.9: mix 0.75, +19.0 st
}

func ExampleParseMode() {
	m, err := reverb.ParseMode("Massive")
	fmt.Println(m, err)

	_, err = reverb.ParseMode("cathedral")
	fmt.Println(err)
	// Output:
	// massive <nil>
	// reverb: unknown mode: "cathedral"
}
