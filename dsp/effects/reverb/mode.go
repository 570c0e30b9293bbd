package reverb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMode is returned for a Mode outside Studio..Massive.
	ErrUnknownMode = errors.New("reverb: unknown mode")

	// ErrModeLocked is returned by SetMode once audio has been processed.
	// Init or Reset re-arms mode selection.
	ErrModeLocked = errors.New("reverb: mode is locked after processing starts")
)

// Mode selects the voicing of the network.
type Mode int

const (
	// Studio uses a sine LFO per line and one-pole damping.
	Studio Mode = iota
	// Shimmer is Studio with lines 6 and 7 pitched up an octave.
	Shimmer
	// Massive uses wander modulation, band-pass resonators per line and
	// warp-controlled shimmer, and can self-oscillate.
	Massive
)

// Modes lists every supported mode in selector order.
var Modes = [...]Mode{Studio, Shimmer, Massive}

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Studio:
		return "studio"
	case Shimmer:
		return "shimmer"
	case Massive:
		return "massive"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= Studio && m <= Massive
}

// ParseMode converts a mode name, case-insensitively, into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "studio":
		return Studio, nil
	case "shimmer":
		return Shimmer, nil
	case "massive":
		return Massive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}
