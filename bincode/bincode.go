package bincode

import (
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrShortBuffer is returned when the input ends before a field is complete.
	ErrShortBuffer = errors.New("bincode: short buffer")
	// ErrInvalidBool is returned when a boolean byte is neither 0 nor 1.
	ErrInvalidBool = errors.New("bincode: invalid bool byte")
)

// AppendUint32 appends v as a 4-byte little-endian integer.
func AppendUint32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

// AppendUint64 appends v as an 8-byte little-endian integer.
func AppendUint64(buf []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, v)
}

// AppendFloat64 appends v as its 8-byte little-endian IEEE-754 bit pattern.
func AppendFloat64(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
}

// AppendFloat64Seq appends a length-prefixed sequence of float64 values.
func AppendFloat64Seq(buf []byte, vs []float64) []byte {
	buf = AppendUint64(buf, uint64(len(vs)))
	for _, v := range vs {
		buf = AppendFloat64(buf, v)
	}
	return buf
}

// AppendBoolSeq appends a length-prefixed sequence of single-byte booleans.
func AppendBoolSeq(buf []byte, vs []bool) []byte {
	buf = AppendUint64(buf, uint64(len(vs)))
	for _, v := range vs {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

// ConsumeUint32 parses a 4-byte little-endian integer and returns the rest.
func ConsumeUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, ErrShortBuffer
	}
	return binary.LittleEndian.Uint32(data), data[4:], nil
}

// ConsumeUint64 parses an 8-byte little-endian integer and returns the rest.
func ConsumeUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, ErrShortBuffer
	}
	return binary.LittleEndian.Uint64(data), data[8:], nil
}

// ConsumeFloat64Seq parses a length-prefixed float64 sequence.
func ConsumeFloat64Seq(data []byte) ([]float64, []byte, error) {
	n, data, err := ConsumeUint64(data)
	if err != nil {
		return nil, nil, err
	}
	if n > uint64(len(data))/8 {
		return nil, nil, ErrShortBuffer
	}
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return vs, data[n*8:], nil
}

// ConsumeBoolSeq parses a length-prefixed boolean sequence.
// Bytes other than 0 and 1 are rejected.
func ConsumeBoolSeq(data []byte) ([]bool, []byte, error) {
	n, data, err := ConsumeUint64(data)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(data)) < n {
		return nil, nil, ErrShortBuffer
	}
	vs := make([]bool, n)
	for i := range vs {
		switch data[i] {
		case 0:
			vs[i] = false
		case 1:
			vs[i] = true
		default:
			return nil, nil, ErrInvalidBool
		}
	}
	return vs, data[n:], nil
}
