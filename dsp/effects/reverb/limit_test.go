package reverb

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fdn/internal/testutil"
)

func TestSoftLimit(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero", in: 0, want: 0},
		{name: "knee", in: 3, want: 1},
		{name: "negative knee", in: -3, want: -1},
		{name: "above range", in: 50, want: 1},
		{name: "below range", in: -1e9, want: -1},
		{name: "unity", in: 1, want: 28.0 / 36.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SoftLimit(tc.in); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("SoftLimit(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSoftLimitBoundedAndOdd(t *testing.T) {
	prev := SoftLimit(-10)
	for x := -10.0; x <= 10; x += 0.01 {
		y := SoftLimit(x)
		if math.Abs(y) > 1 {
			t.Fatalf("SoftLimit(%v) = %v exceeds 1", x, y)
		}
		if math.Abs(y+SoftLimit(-x)) > 1e-15 {
			t.Fatalf("SoftLimit not odd at %v", x)
		}
		if y < prev-1e-15 {
			t.Fatalf("SoftLimit not monotonic at %v: %v < %v", x, y, prev)
		}
		prev = y
	}
}

func TestSoftLimitNeverGrows(t *testing.T) {
	for x := 0.0; x <= 3; x += 0.001 {
		if y := SoftLimit(x); y > x+1e-15 {
			t.Fatalf("SoftLimit(%v) = %v grows the signal", x, y)
		}
	}
}

func TestHouseholderPreservesEnergy(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		src := testutil.DeterministicNoise(seed, 1, NumLines)
		dst := make([]float64, NumLines)

		Householder(dst, src)

		in, out := testutil.Energy(src), testutil.Energy(dst)
		if math.Abs(in-out) > 1e-12 {
			t.Fatalf("seed %d: energy %v -> %v", seed, in, out)
		}
	}
}

func TestHouseholderKnownVectors(t *testing.T) {
	// The all-ones direction is negated, its complement is left alone.
	ones := testutil.Ones(NumLines)
	Householder(ones, ones)
	testutil.RequireSliceNearlyEqual(t, ones, testutil.DC(-1, NumLines), 1e-15)

	alt := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	got := make([]float64, len(alt))
	Householder(got, alt)
	testutil.RequireSliceNearlyEqual(t, got, alt, 0)

	unit := testutil.Impulse(NumLines, 0)
	Householder(unit, unit)
	want := testutil.DC(-0.25, NumLines)
	want[0] = 0.75
	testutil.RequireSliceNearlyEqual(t, unit, want, 1e-15)
}

func TestHouseholderLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Householder(make([]float64, 4), make([]float64, 8))
}

func BenchmarkSoftLimit(b *testing.B) {
	x := 0.0
	for i := 0; i < b.N; i++ {
		x += SoftLimit(float64(i&7) * 0.5)
	}
	_ = x
}
