package bincode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendUint64_LittleEndian(t *testing.T) {
	got := AppendUint64(nil, 500)
	assert.Equal(t, []byte{0xf4, 0x01, 0, 0, 0, 0, 0, 0}, got)
}

func TestAppendUint32_LittleEndian(t *testing.T) {
	got := AppendUint32(nil, 6)
	assert.Equal(t, []byte{6, 0, 0, 0}, got)
}

func TestAppendFloat64_BitPattern(t *testing.T) {
	// 1.0 = 0x3FF0000000000000
	got := AppendFloat64(nil, 1.0)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}, got)
}

func TestFloat64Seq_RoundTrip(t *testing.T) {
	in := []float64{1.5, -2.25, 0, 3e8}
	buf := AppendFloat64Seq(nil, in)
	require.Len(t, buf, 8+8*len(in))

	out, rest, err := ConsumeFloat64Seq(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, in, out)
}

func TestBoolSeq_RoundTrip(t *testing.T) {
	in := []bool{true, false, false, true, true}
	buf := AppendBoolSeq(nil, in)
	require.Len(t, buf, 8+len(in))

	out, rest, err := ConsumeBoolSeq(buf)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, in, out)
}

func TestConsume_ShortBuffer(t *testing.T) {
	_, _, err := ConsumeUint64([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, _, err = ConsumeUint32([]byte{1})
	assert.ErrorIs(t, err, ErrShortBuffer)

	// Declared length exceeds payload.
	buf := AppendUint64(nil, 10)
	_, _, err = ConsumeFloat64Seq(buf)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, _, err = ConsumeBoolSeq(buf)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestConsumeBoolSeq_InvalidByte(t *testing.T) {
	buf := AppendUint64(nil, 2)
	buf = append(buf, 1, 7)
	_, _, err := ConsumeBoolSeq(buf)
	assert.ErrorIs(t, err, ErrInvalidBool)
}

func TestConsumeFloat64Seq_HugeLength(t *testing.T) {
	// A corrupt length prefix must not cause a huge allocation.
	buf := AppendUint64(nil, 1<<62)
	_, _, err := ConsumeFloat64Seq(buf)
	assert.ErrorIs(t, err, ErrShortBuffer)
}
