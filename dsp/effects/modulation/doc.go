// Package modulation provides the control-rate sources that move the
// reverb's delay taps.
//
//   - LFO: slow sine oscillator with separate rate and depth.
//   - WanderPair: two detuned sines summed into a quasi-periodic drift,
//     one pair per delay line.
package modulation
