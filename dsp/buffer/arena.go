package buffer

import (
	"errors"
	"fmt"
)

// ErrArenaTooSmall is returned when a partition does not fit in the arena.
var ErrArenaTooSmall = errors.New("buffer: arena too small for partition")

// Arena is a contiguous sample region shared by several delay lines.
type Arena struct {
	samples []float64
}

// NewArena returns a zero-filled Arena of the given length.
func NewArena(length int) *Arena {
	if length < 0 {
		length = 0
	}
	return &Arena{samples: make([]float64, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Arena and vice versa.
func FromSlice(s []float64) *Arena {
	return &Arena{samples: s}
}

// Samples returns the underlying slice.
func (a *Arena) Samples() []float64 {
	return a.samples
}

// Len returns the number of samples in the arena.
func (a *Arena) Len() int {
	return len(a.samples)
}

// Zero sets all samples to 0.
func (a *Arena) Zero() {
	for i := range a.samples {
		a.samples[i] = 0
	}
}

// Partition splits the front of the arena into n regions of regionLen
// samples each. Region i starts at i*regionLen. Every returned view has
// cap == len, so appends reallocate instead of aliasing the next region.
func (a *Arena) Partition(n, regionLen int) ([][]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("buffer partition count must be > 0: %d", n)
	}
	if regionLen <= 0 {
		return nil, fmt.Errorf("buffer partition length must be > 0: %d", regionLen)
	}
	need := n * regionLen
	if len(a.samples) < need {
		return nil, fmt.Errorf("%w: need %d samples, have %d", ErrArenaTooSmall, need, len(a.samples))
	}

	regions := make([][]float64, n)
	for i := range regions {
		lo := i * regionLen
		hi := lo + regionLen
		regions[i] = a.samples[lo:hi:hi]
	}
	return regions, nil
}
