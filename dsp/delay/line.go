package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/interp"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line that owns a fresh buffer of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// NewView returns a delay line over buf. The line does not copy buf.
func NewView(buf []float64) (*Line, error) {
	d := &Line{}
	if err := d.Bind(buf); err != nil {
		return nil, err
	}
	return d, nil
}

// Bind attaches the line to buf and rewinds the write cursor.
// The contents of buf are left as they are.
func (d *Line) Bind(buf []float64) error {
	if len(buf) == 0 {
		return fmt.Errorf("delay buffer must not be empty")
	}
	d.buffer = buf
	d.writePos = 0
	return nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// WritePos returns the index the next Write stores to.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// ReadInt reads an integer delay in samples. Read(1) is the most recent
// sample; delays wrap modulo Len.
func (d *Line) ReadInt(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Read reads a fractional delay with linear interpolation between the two
// neighbouring samples. The read position wraps modulo Len.
func (d *Line) Read(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if math.IsNaN(delay) || math.IsInf(delay, 0) {
		delay = 0
	}

	readPos := math.Mod(float64(d.writePos)-delay, float64(size))
	if readPos < 0 {
		readPos += float64(size)
	}

	idx := int(readPos)
	if idx >= size {
		idx = 0
	}
	frac := readPos - float64(idx)
	idx2 := idx + 1
	if idx2 >= size {
		idx2 = 0
	}

	return interp.Linear2(frac, d.buffer[idx], d.buffer[idx2])
}

// ReadHermite reads a fractional delay with cubic Hermite interpolation.
// Delays are clamped to [1, Len-3]. Between the newest two samples the
// newest one stands in for its missing neighbour.
func (d *Line) ReadHermite(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 1 || math.IsNaN(delay) {
		delay = 1
	}
	maxDelay := float64(size - 3)
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	xm1 := d.ReadInt(max(1, p-1))
	x0 := d.ReadInt(p)
	x1 := d.ReadInt(p + 1)
	x2 := d.ReadInt(p + 2)
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
