// Package buffer provides the sample arena that backs long delay memory.
//
// An Arena is allocated once at startup and carved into equal,
// non-overlapping regions. Each region is a capacity-limited view, so a
// region can never grow into its neighbour. DSP components borrow these
// views and never allocate or free delay memory themselves.
package buffer
