// Package dither quantizes float audio to integer PCM with optional
// dither noise.
package dither

import (
	"fmt"
	"strings"
)

// Type selects the probability distribution of the dither noise.
type Type int

const (
	// None rounds without added noise.
	None Type = iota
	// Rectangular adds uniform noise of one LSB peak to peak.
	Rectangular
	// Triangular adds TPDF noise, the difference of two uniform draws.
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rectangular", "triangular"}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("dither(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType maps a case-insensitive name to a Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t := range typeCount {
		if typeNames[t] == name {
			return t, nil
		}
	}
	return None, fmt.Errorf("dither: unknown type %q", name)
}
