package segkl

import "errors"

var (
	// ErrZeroModeCount is returned when a record declares zero modes.
	ErrZeroModeCount = errors.New("mode count must be positive")
	// ErrRaggedModes is returned when the flattened mode matrix length is
	// not a multiple of the declared mode count.
	ErrRaggedModes = errors.New("modes length not divisible by mode count")
	// ErrMaskSize is returned when the mask length does not match the
	// per-mode point count.
	ErrMaskSize = errors.New("mask length does not match point count")
	// ErrSegmentID is returned for segment ids outside 1..NumSegments.
	ErrSegmentID = errors.New("segment id out of range")
	// ErrTrailingBytes is returned when a frame decodes cleanly but the
	// input contains extra bytes after the record.
	ErrTrailingBytes = errors.New("trailing bytes after record")
)
