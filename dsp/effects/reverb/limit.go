package reverb

// softLimitRange bounds the cubic rational's input. At ±3 the curve
// reaches ±1 with zero slope.
const softLimitRange = 3.0

// SoftLimit is the cubic rational saturator applied before every line
// write:
//
//	y = x*(27 + x²) / (27 + 9x²)
//
// Inputs beyond ±3 are clamped first, so |y| <= 1 for every input and
// SoftLimit(0) == 0. NaN passes through unchanged.
func SoftLimit(x float64) float64 {
	if x > softLimitRange {
		x = softLimitRange
	} else if x < -softLimitRange {
		x = -softLimitRange
	}

	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// Householder writes the reflection of src about the all-ones direction
// into dst:
//
//	dst[k] = src[k] - (2/N) * Σ src
//
// The matrix I - (2/N)·11ᵀ is orthogonal, so the Euclidean norm is
// preserved. dst and src may alias. It panics if the lengths differ.
func Householder(dst, src []float64) {
	if len(dst) != len(src) {
		panic("reverb: Householder slice length mismatch")
	}
	if len(src) == 0 {
		return
	}

	sum := 0.0
	for _, v := range src {
		sum += v
	}

	sum *= 2 / float64(len(src))
	for i, v := range src {
		dst[i] = v - sum
	}
}
