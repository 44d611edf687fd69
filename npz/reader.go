package npz

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrKeyNotFound is returned when the archive has no member for a key.
var ErrKeyNotFound = errors.New("npz: key not found")

// Reader reads arrays from an .npz archive.
type Reader struct {
	files  map[string]*zip.File
	closer io.Closer
}

// Open opens an .npz archive on disk.
func Open(path string) (*Reader, error) {
	zc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("npz: open %s: %w", path, err)
	}
	r := newReader(zc.File)
	r.closer = zc
	return r, nil
}

// NewReader reads an .npz archive from r.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("npz: %w", err)
	}
	return newReader(zr.File), nil
}

func newReader(files []*zip.File) *Reader {
	m := make(map[string]*zip.File, len(files))
	for _, f := range files {
		m[strings.TrimSuffix(f.Name, ".npy")] = f
	}
	return &Reader{files: m}
}

// Keys returns the member names, sorted, without the .npy suffix.
func (r *Reader) Keys() []string {
	keys := make([]string, 0, len(r.files))
	for k := range r.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Read decodes the array stored under key. The key may be given with or
// without the .npy suffix.
func (r *Reader) Read(key string) (*Array, error) {
	f, ok := r.files[strings.TrimSuffix(key, ".npy")]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("npz: open member %s: %w", f.Name, err)
	}
	defer rc.Close()

	a, err := readNPY(rc)
	if err != nil {
		return nil, fmt.Errorf("npz: member %s: %w", f.Name, err)
	}
	return a, nil
}

// Close releases the underlying archive, if this Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
