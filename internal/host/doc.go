// Package host wires the reverb engines to a module's controls and audio
// callback: boot-time mode selection, knob and CV conditioning, dry/wet
// mixing and fixed-size block scheduling.
package host
