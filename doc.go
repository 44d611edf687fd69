// Package segkl builds and serializes segment Karhunen-Loeve mode bases
// for the ASM fitting pipeline.
//
// A KarhunenLoeve record holds the column-major flattened mode matrix of a
// single mirror segment together with the declared mode count and the exit
// pupil mask. Records are written in a fixed little-endian binary framing
// (see the bincode package) that the downstream simulation reads directly.
//
// The Segment type wraps a record with its 1-based segment id, prepending a
// u32 discriminant to the frame. Both framings are configurations of the
// same encoder; consumers that key files by segment use the tagged form.
//
// The export package implements the batch operation: read the KL and mask
// arrays from a NumPy archive and emit one file per segment.
package segkl
