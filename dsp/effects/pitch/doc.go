// Package pitch provides pitch-shifting processors.
//
// Included processors:
//   - Shifter: Streaming two-tap delay-line shifter, per sample and
//     allocation-free, suited to feedback paths such as shimmer reverbs.
package pitch
