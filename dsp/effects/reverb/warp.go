package reverb

// Warp thresholds of the Massive voicing.
const (
	warpDetuneStart = 0.4
	warpShimmerOn   = 0.6
	warpFifthOn     = 0.85

	warpMixSlope     = 2.5
	warpDetuneSlope  = 3.0
	warpOctave       = 12.0
	warpOctaveFifth  = 19.0
	warpSecondDetune = 0.02
)

// WarpRouting is the shimmer routing derived from the warp control.
// Lines 3 and 7 are blended towards shifters A and B by Mix.
type WarpRouting struct {
	// Mix is the shifted share of lines 3 and 7, in [0, 1].
	Mix float64
	// TranspositionA drives the shifter on line 3, in semitones.
	TranspositionA float64
	// TranspositionB drives the shifter on line 7, in semitones. It sits
	// 0.02 semitones above A so the two lines beat slowly.
	TranspositionB float64
}

// Active reports whether any shifted signal reaches the network.
func (r WarpRouting) Active() bool { return r.Mix > 0 }

// RouteWarp maps warp in [0, 1] to a routing:
//
//	warp < 0.4          no shimmer, transposition held at -0.6 st
//	0.4 <= warp <= 0.6  no shimmer, transposition (warp-0.6)*3 st
//	0.6 < warp <= 0.85  mix (warp-0.6)*2.5, +12 st
//	warp > 0.85         mix (warp-0.6)*2.5, +19 st
//
// Out-of-range and NaN inputs are clamped to [0, 1] first.
func RouteWarp(warp float64) WarpRouting {
	if !(warp >= 0) {
		warp = 0
	} else if warp > 1 {
		warp = 1
	}

	var r WarpRouting
	switch {
	case warp > warpShimmerOn:
		r.Mix = min((warp-warpShimmerOn)*warpMixSlope, 1)
		r.TranspositionA = warpOctave
		if warp > warpFifthOn {
			r.TranspositionA = warpOctaveFifth
		}
	case warp >= warpDetuneStart:
		r.TranspositionA = (warp - warpShimmerOn) * warpDetuneSlope
	default:
		r.TranspositionA = (warpDetuneStart - warpShimmerOn) * warpDetuneSlope
	}
	r.TranspositionB = r.TranspositionA + warpSecondDetune

	return r
}
