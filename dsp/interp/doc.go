// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation (delay network reads)
//   - [Hermite4]: 4-point cubic Hermite (pitch shifter taps)
package interp
