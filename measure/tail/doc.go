// Package tail measures the stereo output of a reverb excited by an
// impulse.
//
// The decay figures come from the Schroeder backward integral of the
// summed channel energy:
//
//   - RT60: Time for a -60 dB decay, extrapolated from T30 or T20
//   - EDT: Early decay time, extrapolated from the 0 to -10 dB slope
//   - Onset: First sample whose magnitude crosses a threshold
//   - Correlation: Pearson correlation of the left and right channels
//   - Centroid and dominant frequency of the early tail spectrum
//
// # Usage
//
//	a := tail.NewAnalyzer(48000)
//	m, err := a.Analyze(left, right)
//	fmt.Printf("RT60 = %.2f s, onset = %d\n", m.RT60, m.Onset)
package tail
