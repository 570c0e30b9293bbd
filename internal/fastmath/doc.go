// Package fastmath provides the exponential and power functions used by
// per-sample coefficient updates in the reverb engine.
//
// The default build uses the standard library. Building with the
// `fastmath` tag swaps in algo-approx approximations, which trade a small
// amount of accuracy for speed in the audio callback.
//
// # Accuracy Characteristics
//
// Exp: <0.1% relative error for x in [-10, 10] with the fastmath tag.
//
// Pow: computed as Exp(y*Log(x)); inherits the error of both approximations.
package fastmath
