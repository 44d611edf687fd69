package npz

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Writer writes arrays into an .npz archive.
type Writer struct {
	zw *zip.Writer
	f  *os.File
}

// Create creates an .npz archive at path, truncating any existing file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("npz: create %s: %w", path, err)
	}
	return &Writer{zw: zip.NewWriter(f), f: f}, nil
}

// NewWriter writes an .npz archive to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{zw: zip.NewWriter(w)}
}

// WriteFloat64s adds a '<f8' member with the given shape and C-order data.
func (w *Writer) WriteFloat64s(key string, shape []int, data []float64) error {
	payload := make([]byte, 0, len(data)*8)
	for _, v := range data {
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(v))
	}
	return w.writeMember(key, "<f8", shape, 8, payload)
}

// WriteBools adds a '|b1' member with the given shape and C-order data.
func (w *Writer) WriteBools(key string, shape []int, data []bool) error {
	payload := make([]byte, len(data))
	for i, v := range data {
		if v {
			payload[i] = 1
		}
	}
	return w.writeMember(key, "|b1", shape, 1, payload)
}

func (w *Writer) writeMember(key, descr string, shape []int, itemSize int, payload []byte) error {
	count := 1
	for _, d := range shape {
		count *= d
	}
	if len(payload) != count*itemSize {
		return fmt.Errorf("%w: %d bytes for %v %q", ErrPayloadSize, len(payload), shape, descr)
	}

	// Store, not Deflate: numpy.savez does the same and the consumer
	// reads members with plain offsets.
	mw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   strings.TrimSuffix(key, ".npy") + ".npy",
		Method: zip.Store,
	})
	if err != nil {
		return fmt.Errorf("npz: member %s: %w", key, err)
	}
	if _, err := mw.Write(npyHeader(descr, shape)); err != nil {
		return fmt.Errorf("npz: member %s: %w", key, err)
	}
	if _, err := mw.Write(payload); err != nil {
		return fmt.Errorf("npz: member %s: %w", key, err)
	}
	return nil
}

// npyHeader builds a v1.0 .npy header, padded so the payload starts on a
// 64-byte boundary.
func npyHeader(descr string, shape []int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := "(" + strings.Join(dims, ", ") + ")"
	if len(shape) == 1 {
		tuple = "(" + dims[0] + ",)"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, tuple)

	// magic(6) + version(2) + hlen(2) + dict + padding + '\n'
	total := 10 + len(dict) + 1
	pad := (64 - total%64) % 64
	dict += strings.Repeat(" ", pad) + "\n"

	header := make([]byte, 0, 10+len(dict))
	header = append(header, npyMagic...)
	header = append(header, 1, 0)
	header = binary.LittleEndian.AppendUint16(header, uint16(len(dict)))
	return append(header, dict...)
}

// Close flushes the archive and closes the underlying file if this Writer
// owns one.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		if w.f != nil {
			_ = w.f.Close()
		}
		return err
	}
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}
