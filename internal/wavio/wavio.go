// Package wavio reads and writes the float stereo buffers used by the
// command-line tools. WAV is read and written; MP3 is accepted as input.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/algo-fdn/dsp/dither"
)

// ErrInvalid is returned for files the decoder cannot interpret.
var ErrInvalid = errors.New("not a valid audio file")

// Stereo is a deinterleaved float signal in [-1, 1].
type Stereo struct {
	SampleRate int
	Left       []float64
	Right      []float64
}

// Frames returns the number of sample frames.
func (s Stereo) Frames() int { return len(s.Left) }

// Pad appends n frames of silence.
func (s *Stereo) Pad(n int) {
	if n <= 0 {
		return
	}
	s.Left = append(s.Left, make([]float64, n)...)
	s.Right = append(s.Right, make([]float64, n)...)
}

// Read loads a mono or stereo PCM WAV file, or an MP3 file when the name
// ends in .mp3. Mono is copied to both channels; channels beyond the second
// are ignored. A leading ~ expands to the home directory.
func Read(path string) (Stereo, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return Stereo{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		return readMP3(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Stereo{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Stereo{}, fmt.Errorf("%s: %w", path, ErrInvalid)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Stereo{}, fmt.Errorf("%s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return Stereo{}, fmt.Errorf("%s: %w: %d channels", path, ErrInvalid, channels)
	}

	depth := int(dec.BitDepth)
	if depth < 16 || depth > 32 {
		return Stereo{}, fmt.Errorf("%s: %w: %d-bit samples", path, ErrInvalid, depth)
	}

	scale := 1 / float64(int64(1)<<(depth-1))
	frames := len(buf.Data) / channels
	s := Stereo{
		SampleRate: buf.Format.SampleRate,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}
	for i := range frames {
		l := float64(buf.Data[i*channels]) * scale
		r := l
		if channels > 1 {
			r = float64(buf.Data[i*channels+1]) * scale
		}
		s.Left[i], s.Right[i] = l, r
	}

	return s, nil
}

// Write stores s as interleaved stereo PCM WAV at the given bit depth.
// Samples saturate at full scale. Quantization uses triangular dither with
// a fixed seed unless opts choose otherwise.
func Write(path string, s Stereo, bitDepth int, opts ...dither.Option) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("wav bit depth must be 16, 24 or 32: %d", bitDepth)
	}
	if len(s.Left) != len(s.Right) {
		return fmt.Errorf("wav channel lengths differ: %d != %d", len(s.Left), len(s.Right))
	}

	q, err := dither.NewQuantizer(append(opts, dither.WithBitDepth(bitDepth))...)
	if err != nil {
		return err
	}

	data := make([]int, 2*len(s.Left))
	for i := range s.Left {
		data[2*i] = q.ProcessInteger(s.Left[i])
		data[2*i+1] = q.ProcessInteger(s.Right[i])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, s.SampleRate, bitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: s.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// readMP3 decodes path to 16-bit stereo, the only layout the decoder emits.
func readMP3(path string) (Stereo, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stereo{}, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return Stereo{}, fmt.Errorf("%s: %w: %v", path, ErrInvalid, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return Stereo{}, fmt.Errorf("%s: %w", path, err)
	}

	const bytesPerFrame = 4
	frames := len(raw) / bytesPerFrame
	if frames == 0 {
		return Stereo{}, fmt.Errorf("%s: %w: no audio frames", path, ErrInvalid)
	}

	s := Stereo{
		SampleRate: dec.SampleRate(),
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}
	for i := range frames {
		s.Left[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*bytesPerFrame:]))) / 32768
		s.Right[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*bytesPerFrame+2:]))) / 32768
	}
	return s, nil
}
