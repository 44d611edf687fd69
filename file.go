package segkl

import (
	"encoding"
	"fmt"
	"os"
)

// WriteFile encodes v and writes the frame to path, truncating any
// existing file.
func WriteFile(path string, v encoding.BinaryMarshaler) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes an untagged record from path.
func ReadFile(path string) (KarhunenLoeve, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KarhunenLoeve{}, err
	}
	var kl KarhunenLoeve
	if err := kl.UnmarshalBinary(data); err != nil {
		return KarhunenLoeve{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return kl, nil
}

// ReadSegmentFile decodes a tagged record from path.
func ReadSegmentFile(path string) (Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Segment{}, err
	}
	var s Segment
	if err := s.UnmarshalBinary(data); err != nil {
		return Segment{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, nil
}
