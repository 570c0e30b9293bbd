// Package reverb implements the eight-line feedback delay network reverb
// engine and its building blocks.
//
// Included processors:
//   - FeedbackDelayNetwork: Modulated eight-line FDN with Studio, Shimmer
//     and Massive voicings.
//   - Diffuser, DiffuserChain: Schroeder allpass stages that smear the
//     input before it enters the network.
//
// Helpers:
//   - Householder: Energy-preserving reflection used as the feedback matrix.
//   - SoftLimit: Cubic rational limiter applied before every line write.
//   - RouteWarp: Maps the warp control to the Massive shimmer routing.
//   - ControlBus: Lock-free parameter exchange between a control loop and
//     the audio callback.
package reverb
