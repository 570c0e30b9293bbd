// Package svf provides a two-pole state-variable filter with simultaneous
// low-pass, band-pass, high-pass and notch outputs.
//
// The filter uses the trapezoidal (zero-delay feedback) integrator
// topology, so it stays stable while cutoff and resonance are modulated
// at audio rate. Resonance is given in [0,1]; values near 1 approach
// self-oscillation.
package svf
