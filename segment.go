package segkl

import (
	"fmt"

	"github.com/glaokit/segkl/bincode"
)

// NumSegments is the number of mirror segments.
const NumSegments = 7

// Segment tags a mode-basis record with the 1-based id of the mirror
// segment it belongs to. On the wire the tag is a u32 discriminant
// (SID-1) prepended to the untagged record frame; it carries no other
// payload. The wrapper composes over the base encoder rather than
// duplicating it.
type Segment struct {
	SID int
	KarhunenLoeve
}

// Tag returns the segment file tag, e.g. "M2S1" for segment 1.
func (s Segment) Tag() string {
	return fmt.Sprintf("M2S%d", s.SID)
}

// Validate checks the segment id and the record shape invariants.
func (s Segment) Validate() error {
	if s.SID < 1 || s.SID > NumSegments {
		return fmt.Errorf("%w: %d", ErrSegmentID, s.SID)
	}
	return s.KarhunenLoeve.Validate()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s Segment) MarshalBinary() ([]byte, error) {
	if s.SID < 1 || s.SID > NumSegments {
		return nil, fmt.Errorf("%w: %d", ErrSegmentID, s.SID)
	}
	record, err := s.KarhunenLoeve.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 4+len(record))
	buf = bincode.AppendUint32(buf, uint32(s.SID-1))
	return append(buf, record...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Segment) UnmarshalBinary(data []byte) error {
	tag, rest, err := bincode.ConsumeUint32(data)
	if err != nil {
		return fmt.Errorf("segment tag: %w", err)
	}
	if tag >= NumSegments {
		return fmt.Errorf("%w: discriminant %d", ErrSegmentID, tag)
	}
	var kl KarhunenLoeve
	if err := kl.UnmarshalBinary(rest); err != nil {
		return err
	}
	s.SID = int(tag) + 1
	s.KarhunenLoeve = kl
	return nil
}
