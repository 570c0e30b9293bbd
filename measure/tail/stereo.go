package tail

import "math"

// Correlation returns the Pearson correlation of left and right. A network
// with decorrelated outputs lands near 0; a mono tail gives 1.
func Correlation(left, right []float64) (float64, error) {
	if len(left) == 0 {
		return 0, ErrEmptyResponse
	}
	if len(left) != len(right) {
		return 0, ErrChannelMismatch
	}
	return correlation(left, right), nil
}

func correlation(left, right []float64) float64 {
	n := float64(len(left))

	var meanL, meanR float64
	for i := range left {
		meanL += left[i]
		meanR += right[i]
	}
	meanL /= n
	meanR /= n

	var cov, varL, varR float64
	for i := range left {
		dl := left[i] - meanL
		dr := right[i] - meanR
		cov += dl * dr
		varL += dl * dl
		varR += dr * dr
	}

	if varL == 0 || varR == 0 {
		return 0
	}
	return cov / math.Sqrt(varL*varR)
}
