package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"one off", []float64{1, 2, 3}, []float64{1, 2.1, 3}, 0.1},
		{"sign", []float64{-1, 1}, []float64{1, 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := MaxAbsDiff(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(d-tt.want) > 1e-12 {
				t.Fatalf("MaxAbsDiff = %v, want %v", d, tt.want)
			}
		})
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1 + 1e-10, 2}, 1e-9)
	RequireFinite(t, []float64{0, -1, math.MaxFloat64})
}
