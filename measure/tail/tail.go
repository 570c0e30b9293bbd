package tail

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/window"
)

// Errors returned by tail analysis.
var (
	ErrEmptyResponse     = errors.New("tail: response is empty")
	ErrInvalidSampleRate = errors.New("tail: sample rate must be positive")
	ErrChannelMismatch   = errors.New("tail: left and right lengths differ")
	ErrNoDecay           = errors.New("tail: insufficient decay for RT calculation")
)

const (
	defaultOnsetThreshold = 1e-9
	defaultFFTSize        = 8192

	// schroederFloorDB is reported where the remaining energy is zero.
	schroederFloorDB = -200.0

	// truncationTail is the final share of a Schroeder curve that a fit
	// may not end in.
	truncationTail = 0.05
)

// Metrics holds the analysis of one stereo tail.
type Metrics struct {
	Onset        int     // first sample above the onset threshold, -1 if none
	OnsetSeconds float64 // Onset in seconds
	PeakIndex    int     // sample index of the largest magnitude on either channel
	Peak         float64 // largest magnitude on either channel
	RT60         float64 // seconds, from T30 or T20; 0 when the tail does not decay far enough
	EDT          float64 // seconds, 0 to -10 dB slope extrapolated to -60 dB
	T20          float64 // seconds, -5 to -25 dB slope
	T30          float64 // seconds, -5 to -35 dB slope
	Correlation  float64 // Pearson correlation of left and right in [-1, 1]
	CentroidHz   float64 // spectral centroid of the first FFT frame after onset
	DominantHz   float64 // strongest bin of the same frame
	Energy       float64 // summed energy of both channels
}

// Analyzer computes tail metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
	// OnsetThreshold is the absolute level that marks the first echo.
	OnsetThreshold float64
	// FFTSize is the spectral frame length. It is rounded down to a power
	// of two and shortened to fit the response.
	FFTSize int
	// Window shapes the spectral frame.
	Window window.Type
}

// NewAnalyzer returns an analyzer with a 1e-9 onset threshold and 8192-point
// Hann-windowed spectral frames.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{
		SampleRate:     sampleRate,
		OnsetThreshold: defaultOnsetThreshold,
		FFTSize:        defaultFFTSize,
		Window:         window.TypeHann,
	}
}

// Analyze computes all metrics for a stereo response.
func (a *Analyzer) Analyze(left, right []float64) (Metrics, error) {
	if err := a.check(left, right); err != nil {
		return Metrics{}, err
	}

	energy := channelEnergy(left, right)

	m := Metrics{Onset: a.onset(left, right)}
	if m.Onset >= 0 {
		m.OnsetSeconds = float64(m.Onset) / a.SampleRate
	}
	m.PeakIndex, m.Peak = peak(left, right)
	for _, e := range energy {
		m.Energy += e
	}

	schroeder := schroederIntegral(energy[m.PeakIndex:])
	m.EDT = a.reverbTime(schroeder, 0, -10)
	m.T20 = a.reverbTime(schroeder, -5, -25)
	m.T30 = a.reverbTime(schroeder, -5, -35)
	if m.T30 > 0 {
		m.RT60 = m.T30
	} else {
		m.RT60 = m.T20
	}

	m.Correlation = correlation(left, right)

	if m.Onset >= 0 {
		mono := make([]float64, len(left)-m.Onset)
		for i := range mono {
			mono[i] = 0.5 * (left[m.Onset+i] + right[m.Onset+i])
		}
		centroid, dominant, err := a.spectrum(mono)
		if err != nil {
			return Metrics{}, err
		}
		m.CentroidHz, m.DominantHz = centroid, dominant
	}

	return m, nil
}

// SchroederCurve returns the backward-integrated energy decay of a stereo
// response in dB relative to its total energy.
func (a *Analyzer) SchroederCurve(left, right []float64) ([]float64, error) {
	if err := a.check(left, right); err != nil {
		return nil, err
	}
	return schroederIntegral(channelEnergy(left, right)), nil
}

// RT60 returns the reverberation time from T30, falling back to T20.
func (a *Analyzer) RT60(left, right []float64) (float64, error) {
	curve, err := a.SchroederCurve(left, right)
	if err != nil {
		return 0, err
	}

	if rt := a.reverbTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.reverbTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

// Onset returns the first sample on either channel above the onset
// threshold, or -1 for a silent response.
func (a *Analyzer) Onset(left, right []float64) (int, error) {
	if err := a.check(left, right); err != nil {
		return 0, err
	}
	return a.onset(left, right), nil
}

func (a *Analyzer) check(left, right []float64) error {
	if len(left) == 0 {
		return ErrEmptyResponse
	}
	if len(left) != len(right) {
		return ErrChannelMismatch
	}
	if !(a.SampleRate > 0) || math.IsInf(a.SampleRate, 0) {
		return ErrInvalidSampleRate
	}
	return nil
}

func (a *Analyzer) onset(left, right []float64) int {
	for i := range left {
		if math.Abs(left[i]) > a.OnsetThreshold || math.Abs(right[i]) > a.OnsetThreshold {
			return i
		}
	}
	return -1
}

func peak(left, right []float64) (int, float64) {
	idx, val := 0, 0.0
	for i := range left {
		if v := math.Abs(left[i]); v > val {
			idx, val = i, v
		}
		if v := math.Abs(right[i]); v > val {
			idx, val = i, v
		}
	}
	return idx, val
}

func channelEnergy(left, right []float64) []float64 {
	e := make([]float64, len(left))
	for i := range e {
		e[i] = left[i]*left[i] + right[i]*right[i]
	}
	return e
}

// schroederIntegral turns per-sample energy into the normalized backward
// integral in dB.
//
//	S(t) = 10*log10( Σ_{τ>=t} e(τ) / Σ e(τ) )
func schroederIntegral(energy []float64) []float64 {
	out := make([]float64, len(energy))

	var sum float64
	for i := len(energy) - 1; i >= 0; i-- {
		sum += energy[i]
		out[i] = sum
	}

	if len(out) == 0 || out[0] <= 0 {
		for i := range out {
			out[i] = schroederFloorDB
		}
		return out
	}

	total := out[0]
	for i, v := range out {
		if v <= 0 {
			out[i] = schroederFloorDB
			continue
		}
		out[i] = 10 * math.Log10(v/total)
	}

	return out
}

// reverbTime fits a line to the curve between startDB and endDB and
// extrapolates it to -60 dB. It returns 0 when the curve never reaches
// endDB, does not fall, or only reaches endDB inside the truncation tail,
// where the integral of any finite response plunges towards -inf.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	startIdx, endIdx := -1, -1
	for i, v := range curve {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}
		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}
	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}
	if endIdx >= len(curve)-int(float64(len(curve))*truncationTail) {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	n := float64(endIdx - startIdx + 1)
	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}
