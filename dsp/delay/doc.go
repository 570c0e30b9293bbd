// Package delay provides a circular delay line that runs over borrowed
// memory.
//
// A [Line] is a view: it reads and writes a caller-supplied region (for
// example one partition of a [buffer.Arena]) and never allocates on the
// audio path. Delays are measured back from the write cursor and wrap
// modulo the region length, so a delay at or beyond the capacity folds
// back into the buffer instead of failing.
package delay
