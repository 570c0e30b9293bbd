package reverb

const (
	// DiffuserCapacity is the ring length of every diffuser stage.
	DiffuserCapacity = 600

	diffuserGain         = 0.5
	defaultDiffuserDelay = 100

	// NumDiffusers is the number of stages in a DiffuserChain.
	NumDiffusers = 4
)

// diffuserDelays are the stage lengths of the input chain, in samples.
var diffuserDelays = [NumDiffusers]int{225, 341, 441, 556}

// Diffuser is a Schroeder allpass section with a fixed 600-sample ring
// and coefficient 0.5:
//
//	v[n] = x[n] + g*v[n-D]
//	y[n] = -x[n] + v[n-D]
//
// The zero value is silent; call Init before use.
type Diffuser struct {
	buf   [DiffuserCapacity]float64
	write int
	read  int
	delay int
}

// Init clears the ring and sets a 100-sample delay.
func (d *Diffuser) Init() {
	d.Reset()
	d.SetDelay(defaultDiffuserDelay)
}

// SetDelay sets the stage delay in samples, clamped to [1, 599].
func (d *Diffuser) SetDelay(samples int) {
	samples = min(max(samples, 1), DiffuserCapacity-1)
	d.delay = samples

	d.read = d.write - samples
	if d.read < 0 {
		d.read += DiffuserCapacity
	}
}

// Delay returns the stage delay in samples.
func (d *Diffuser) Delay() int { return d.delay }

// ProcessSample runs one sample through the stage.
func (d *Diffuser) ProcessSample(in float64) float64 {
	delayed := d.buf[d.read]
	d.buf[d.write] = in + delayed*diffuserGain

	d.write++
	if d.write == DiffuserCapacity {
		d.write = 0
	}

	d.read++
	if d.read == DiffuserCapacity {
		d.read = 0
	}

	return delayed - in
}

// Reset zeroes the ring without changing the delay.
func (d *Diffuser) Reset() {
	clear(d.buf[:])
}

// DiffuserChain is four Diffusers in series tuned to 225, 341, 441 and 556
// samples.
type DiffuserChain struct {
	stages [NumDiffusers]Diffuser
}

// Init clears every stage and applies the chain tuning.
func (c *DiffuserChain) Init() {
	for i := range c.stages {
		c.stages[i].Init()
		c.stages[i].SetDelay(diffuserDelays[i])
	}
}

// Stage returns stage i for inspection.
func (c *DiffuserChain) Stage(i int) *Diffuser { return &c.stages[i] }

// ProcessSample runs one sample through all stages in order.
func (c *DiffuserChain) ProcessSample(in float64) float64 {
	for i := range c.stages {
		in = c.stages[i].ProcessSample(in)
	}
	return in
}

// Reset clears every stage.
func (c *DiffuserChain) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}
