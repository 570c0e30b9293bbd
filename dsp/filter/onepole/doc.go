// Package onepole provides a single-coefficient low-pass filter for
// damping feedback paths.
//
// The filter is cheap enough to retune every sample:
//
//	b1 = exp(-2*pi*f)   a0 = 1 - b1   y[n] = a0*x[n] + b1*y[n-1]
//
// where f is the cutoff divided by the sample rate.
package onepole
