package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(64),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=64
}

func ExampleSemitonesToRatio() {
	fmt.Printf("%.3f %.3f\n", core.SemitonesToRatio(12), core.SemitonesToRatio(19))

	// Output:
	// 2.000 2.997
}
