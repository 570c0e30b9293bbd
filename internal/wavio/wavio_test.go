package wavio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-fdn/dsp/dither"
	"github.com/cwbudde/algo-fdn/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	for _, bits := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "rt.wav")
		in := Stereo{
			SampleRate: 44100,
			Left:       testutil.DeterministicSine(440, 44100, 0.8, 1000),
			Right:      testutil.DeterministicNoise(1, 0.5, 1000),
		}
		in.Left[3] = 4 // clipped on write

		if err := Write(path, in, bits); err != nil {
			t.Fatal(err)
		}
		got, err := Read(path)
		if err != nil {
			t.Fatal(err)
		}

		if got.SampleRate != 44100 || got.Frames() != 1000 {
			t.Fatalf("%d-bit: read %d frames at %d Hz", bits, got.Frames(), got.SampleRate)
		}

		// Rounding, dither and the peak/full-scale mismatch stay within 3 LSB.
		tol := 3 / float64(int64(1)<<(bits-1))
		if math.Abs(got.Left[3]-1) > tol {
			t.Fatalf("%d-bit: clipped sample = %v, want 1", bits, got.Left[3])
		}
		in.Left[3] = 1
		testutil.RequireSliceNearlyEqual(t, got.Left, in.Left, tol)
		testutil.RequireSliceNearlyEqual(t, got.Right, in.Right, tol)
	}
}

func TestWriteWithoutDither(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.wav")
	in := Stereo{SampleRate: 48000, Left: []float64{0.5, -0.25}, Right: []float64{1, -1}}
	if err := Write(path, in, 16, dither.WithType(dither.None)); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	// round(0.5*32767) = 16384, read back over 32768.
	want := []float64{16384.0 / 32768, -8192.0 / 32768}
	testutil.RequireSliceNearlyEqual(t, got.Left, want, 0)
	testutil.RequireSliceNearlyEqual(t, got.Right, []float64{32767.0 / 32768, -32767.0 / 32768}, 0)
}

func TestWriteRejectsBitDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := Write(path, Stereo{SampleRate: 48000}, 12); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteRejectsChannelMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	s := Stereo{SampleRate: 48000, Left: make([]float64, 4), Right: make([]float64, 3)}
	if err := Write(path, s, 16); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF data"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestPad(t *testing.T) {
	s := Stereo{SampleRate: 48000, Left: []float64{1}, Right: []float64{1}}
	s.Pad(5)
	s.Pad(-1)
	if s.Frames() != 6 || len(s.Right) != 6 {
		t.Fatalf("frames = %d/%d, want 6", len(s.Left), len(s.Right))
	}
	if s.Left[5] != 0 {
		t.Fatalf("padding not silent: %v", s.Left[5])
	}
}

func TestReadRejectsGarbageMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.MP3")
	if err := os.WriteFile(path, []byte("not an mpeg audio stream"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected error for undecodable mp3")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
