package segkl

import (
	"fmt"

	"github.com/glaokit/segkl/bincode"
)

// KarhunenLoeve is a segment mode basis: NMode orthogonal modes defined on
// the segment's spatial points, concatenated column-major in Modes, plus
// the exit pupil mask marking which points are physically active.
//
// A record is immutable once built: it is constructed, encoded and written,
// never updated in place.
type KarhunenLoeve struct {
	// Modes is the points x NMode matrix flattened in column-major order.
	Modes []float64
	// NMode is the declared number of modes.
	NMode int
	// Mask has one entry per spatial point.
	Mask []bool
}

// FromRowMajor builds a record from a row-major points x nMode matrix,
// flattening it column-major as the wire format requires.
func FromRowMajor(matrix []float64, nMode int, mask []bool) (KarhunenLoeve, error) {
	if nMode <= 0 {
		return KarhunenLoeve{}, ErrZeroModeCount
	}
	if len(matrix)%nMode != 0 {
		return KarhunenLoeve{}, fmt.Errorf("%w: %d modes over %d values", ErrRaggedModes, nMode, len(matrix))
	}
	kl := KarhunenLoeve{
		Modes: ColumnMajor(matrix, len(matrix)/nMode, nMode),
		NMode: nMode,
		Mask:  mask,
	}
	if err := kl.Validate(); err != nil {
		return KarhunenLoeve{}, err
	}
	return kl, nil
}

// ColumnMajor reorders a row-major rows x cols matrix into column-major
// order: column 0 top to bottom, then column 1, and so on.
func ColumnMajor(matrix []float64, rows, cols int) []float64 {
	out := make([]float64, len(matrix))
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			out[j*rows+i] = matrix[i*cols+j]
		}
	}
	return out
}

// Validate checks the record shape invariants.
func (kl KarhunenLoeve) Validate() error {
	if kl.NMode <= 0 {
		return ErrZeroModeCount
	}
	if len(kl.Modes)%kl.NMode != 0 {
		return fmt.Errorf("%w: %d modes over %d values", ErrRaggedModes, kl.NMode, len(kl.Modes))
	}
	if len(kl.Mask) != len(kl.Modes)/kl.NMode {
		return fmt.Errorf("%w: mask %d, points %d", ErrMaskSize, len(kl.Mask), len(kl.Modes)/kl.NMode)
	}
	return nil
}

// NPoint returns the number of spatial points per mode.
func (kl KarhunenLoeve) NPoint() int {
	if kl.NMode == 0 {
		return 0
	}
	return len(kl.Modes) / kl.NMode
}

// NInMask returns the number of active points in the mask.
func (kl KarhunenLoeve) NInMask() int {
	n := 0
	for _, m := range kl.Mask {
		if m {
			n++
		}
	}
	return n
}

// Masked returns the values of data at the active mask points.
// data must have one value per mask entry.
func (kl KarhunenLoeve) Masked(data []float64) []float64 {
	out := make([]float64, 0, kl.NInMask())
	for i, m := range kl.Mask {
		if m {
			out = append(out, data[i])
		}
	}
	return out
}

// EncodedSize returns the exact frame length in bytes.
func (kl KarhunenLoeve) EncodedSize() int {
	return 8 + 8*len(kl.Modes) + 8 + 8 + len(kl.Mask)
}

// MarshalBinary implements encoding.BinaryMarshaler.
// The frame is deterministic: equal records produce identical bytes.
func (kl KarhunenLoeve) MarshalBinary() ([]byte, error) {
	if err := kl.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, kl.EncodedSize())
	buf = bincode.AppendFloat64Seq(buf, kl.Modes)
	buf = bincode.AppendUint64(buf, uint64(kl.NMode))
	buf = bincode.AppendBoolSeq(buf, kl.Mask)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// The input must contain exactly one record.
func (kl *KarhunenLoeve) UnmarshalBinary(data []byte) error {
	modes, rest, err := bincode.ConsumeFloat64Seq(data)
	if err != nil {
		return fmt.Errorf("modes: %w", err)
	}
	nMode, rest, err := bincode.ConsumeUint64(rest)
	if err != nil {
		return fmt.Errorf("mode count: %w", err)
	}
	mask, rest, err := bincode.ConsumeBoolSeq(rest)
	if err != nil {
		return fmt.Errorf("mask: %w", err)
	}
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(rest))
	}
	decoded := KarhunenLoeve{Modes: modes, NMode: int(nMode), Mask: mask}
	if err := decoded.Validate(); err != nil {
		return err
	}
	*kl = decoded
	return nil
}
