package npz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.npz")

	kl := []float64{1, 2, 3, 4, 5, 6}
	mask := []bool{true, false, true}

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteFloat64s("KL", []int{2, 3}, kl))
	require.NoError(t, w.WriteBools("mask", []int{3}, mask))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"KL", "mask"}, r.Keys())

	a, err := r.Read("KL")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, a.Shape)
	assert.Equal(t, "<f8", a.Descr)
	got, err := a.Float64s()
	require.NoError(t, err)
	assert.Equal(t, kl, got)

	// Key lookup works with the .npy suffix too.
	b, err := r.Read("mask.npy")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, b.Shape)
	gotMask, err := b.Bools()
	require.NoError(t, err)
	assert.Equal(t, mask, gotMask)
}

func TestRead_KeyNotFound(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBools("mask", []int{1}, []bool{true}))
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	_, err = r.Read("KL")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRead_TypedAccessMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFloat64s("KL", []int{1}, []float64{1}))
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	a, err := r.Read("KL")
	require.NoError(t, err)
	_, err = a.Bools()
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

// writeRawMember adds an .npy member with a hand-built header, used to
// exercise cases the Writer never produces.
func writeRawMember(t *testing.T, zw *zip.Writer, name, descr string, fortran bool, shape string, payload []byte) {
	t.Helper()

	order := "False"
	if fortran {
		order = "True"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }\n", descr, order, shape)

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	require.NoError(t, err)

	header := append([]byte("\x93NUMPY\x01\x00"), 0, 0)
	binary.LittleEndian.PutUint16(header[8:], uint16(len(dict)))
	_, err = mw.Write(append(append(header, dict...), payload...))
	require.NoError(t, err)
}

func TestRead_FortranOrderNormalized(t *testing.T) {
	// 2x3 matrix stored column-major: columns (1,4), (2,5), (3,6).
	var payload []byte
	for _, v := range []float64{1, 4, 2, 5, 3, 6} {
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(v))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeRawMember(t, zw, "KL.npy", "<f8", true, "(2, 3)", payload)
	require.NoError(t, zw.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	a, err := r.Read("KL")
	require.NoError(t, err)
	assert.True(t, a.Fortran)

	got, err := a.Float64s()
	require.NoError(t, err)
	// Normalized to C order.
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)
}

func TestRead_Float32Widened(t *testing.T) {
	var payload []byte
	for _, v := range []float32{1.5, -2.5} {
		payload = binary.LittleEndian.AppendUint32(payload, math.Float32bits(v))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeRawMember(t, zw, "x.npy", "<f4", false, "(2,)", payload)
	require.NoError(t, zw.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	a, err := r.Read("x")
	require.NoError(t, err)
	got, err := a.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.5}, got)
}

func TestRead_Errors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		mw, err := zw.CreateHeader(&zip.FileHeader{Name: "x.npy", Method: zip.Store})
		require.NoError(t, err)
		_, err = mw.Write([]byte("not an npy file at all"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		_, err = r.Read("x")
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("unsupported dtype", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		writeRawMember(t, zw, "x.npy", "<i8", false, "(1,)", make([]byte, 8))
		require.NoError(t, zw.Close())

		r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		_, err = r.Read("x")
		assert.ErrorIs(t, err, ErrUnsupportedDType)
	})

	t.Run("payload shorter than shape", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		writeRawMember(t, zw, "x.npy", "<f8", false, "(3,)", make([]byte, 16))
		require.NoError(t, zw.Close())

		r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		_, err = r.Read("x")
		assert.ErrorIs(t, err, ErrPayloadSize)
	})
}

func TestWriter_PayloadSizeCheck(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.WriteFloat64s("KL", []int{2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrPayloadSize)
}

func TestNpyHeader_Aligned(t *testing.T) {
	for _, shape := range [][]int{{7}, {7, 100}, {7, 100, 500}} {
		h := npyHeader("<f8", shape)
		assert.Equal(t, 0, len(h)%64, "shape %v", shape)
		assert.Equal(t, byte('\n'), h[len(h)-1])
	}
}
