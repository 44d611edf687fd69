// Package bincode implements the subset of the bincode v1 wire
// representation used by the segment mode-basis files.
//
// The representation is fixed-width and little-endian with no padding:
// integers are encoded as u32/u64, floats as 8-byte IEEE-754 bit patterns,
// sequences as a u64 element count followed by the elements, and booleans
// as a single 0/1 byte. Enum variants carry a u32 discriminant.
//
// Encoding is deterministic: equal values always produce identical bytes.
// The wire format is a compatibility boundary with the downstream fitting
// simulation; changing it breaks every previously written data file.
package bincode
