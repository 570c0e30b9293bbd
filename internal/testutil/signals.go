// Package testutil holds signal generators and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine at freqHz.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude]
// drawn from a seeded source.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse returns a unit impulse at pos. Out-of-range positions give
// silence.
func Impulse(length, pos int) []float64 {
	return ImpulseTrain(length, pos, 0)
}

// ImpulseTrain places unit impulses at first, first+period, ... A period
// of zero or less gives a single impulse.
func ImpulseTrain(length, first, period int) []float64 {
	out := make([]float64, length)
	if first < 0 {
		return out
	}
	for i := first; i < length; i += period {
		out[i] = 1
		if period <= 0 {
			break
		}
	}
	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns n samples of 1.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
