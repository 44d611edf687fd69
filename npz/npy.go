package npz

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrBadMagic is returned when a member does not start with the NPY magic.
	ErrBadMagic = errors.New("npz: not an npy file")
	// ErrUnsupportedDType is returned for dtypes outside the supported subset.
	ErrUnsupportedDType = errors.New("npz: unsupported dtype")
	// ErrPayloadSize is returned when the payload does not match the header shape.
	ErrPayloadSize = errors.New("npz: payload size does not match shape")
)

var npyMagic = []byte("\x93NUMPY")

var (
	descrRe   = regexp.MustCompile(`'descr':\s*'([^']+)'`)
	fortranRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	shapeRe   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// Array is a decoded .npy member. Data is held in C order regardless of
// how the member was stored.
type Array struct {
	// Shape is the array shape, outermost axis first.
	Shape []int
	// Descr is the dtype string from the header, e.g. "<f8".
	Descr string
	// Fortran reports whether the member was stored column-major.
	Fortran bool

	f64   []float64
	bools []bool
}

// Len returns the total element count.
func (a *Array) Len() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// Float64s returns the elements of a float array in C order.
func (a *Array) Float64s() ([]float64, error) {
	if a.f64 == nil {
		return nil, fmt.Errorf("%w: want float, have %q", ErrUnsupportedDType, a.Descr)
	}
	return a.f64, nil
}

// Bools returns the elements of a boolean/byte array in C order.
func (a *Array) Bools() ([]bool, error) {
	if a.bools == nil {
		return nil, fmt.Errorf("%w: want bool, have %q", ErrUnsupportedDType, a.Descr)
	}
	return a.bools, nil
}

// readNPY decodes a single .npy stream.
func readNPY(r io.Reader) (*Array, error) {
	descr, fortran, shape, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	a := &Array{Shape: shape, Descr: descr, Fortran: fortran}
	count := a.Len()

	switch descr {
	case "<f8":
		if len(payload) != count*8 {
			return nil, fmt.Errorf("%w: %d bytes for %v '<f8'", ErrPayloadSize, len(payload), shape)
		}
		a.f64 = make([]float64, count)
		for i := range a.f64 {
			a.f64[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
		}
		if fortran {
			a.f64 = fortranToC(a.f64, shape)
		}
	case "<f4":
		if len(payload) != count*4 {
			return nil, fmt.Errorf("%w: %d bytes for %v '<f4'", ErrPayloadSize, len(payload), shape)
		}
		a.f64 = make([]float64, count)
		for i := range a.f64 {
			a.f64[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:])))
		}
		if fortran {
			a.f64 = fortranToC(a.f64, shape)
		}
	case "|b1", "|u1":
		if len(payload) != count {
			return nil, fmt.Errorf("%w: %d bytes for %v %q", ErrPayloadSize, len(payload), shape, descr)
		}
		a.bools = make([]bool, count)
		for i, b := range payload {
			a.bools[i] = b != 0
		}
		if fortran {
			a.bools = fortranToC(a.bools, shape)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr)
	}
	return a, nil
}

func readHeader(r io.Reader) (descr string, fortran bool, shape []int, err error) {
	pre := make([]byte, 8)
	if _, err = io.ReadFull(r, pre); err != nil {
		return "", false, nil, fmt.Errorf("npz: header: %w", err)
	}
	if string(pre[:6]) != string(npyMagic) {
		return "", false, nil, ErrBadMagic
	}

	major := pre[6]
	var hlen int
	switch major {
	case 1:
		var b [2]byte
		if _, err = io.ReadFull(r, b[:]); err != nil {
			return "", false, nil, fmt.Errorf("npz: header length: %w", err)
		}
		hlen = int(binary.LittleEndian.Uint16(b[:]))
	case 2, 3:
		var b [4]byte
		if _, err = io.ReadFull(r, b[:]); err != nil {
			return "", false, nil, fmt.Errorf("npz: header length: %w", err)
		}
		hlen = int(binary.LittleEndian.Uint32(b[:]))
	default:
		return "", false, nil, fmt.Errorf("npz: unsupported npy version %d.%d", major, pre[7])
	}

	raw := make([]byte, hlen)
	if _, err = io.ReadFull(r, raw); err != nil {
		return "", false, nil, fmt.Errorf("npz: header dict: %w", err)
	}
	header := string(raw)

	m := descrRe.FindStringSubmatch(header)
	if m == nil {
		return "", false, nil, fmt.Errorf("npz: header missing descr: %q", header)
	}
	descr = m[1]

	m = fortranRe.FindStringSubmatch(header)
	if m == nil {
		return "", false, nil, fmt.Errorf("npz: header missing fortran_order: %q", header)
	}
	fortran = m[1] == "True"

	m = shapeRe.FindStringSubmatch(header)
	if m == nil {
		return "", false, nil, fmt.Errorf("npz: header missing shape: %q", header)
	}
	for _, field := range strings.Split(m[1], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		d, perr := strconv.Atoi(field)
		if perr != nil || d < 0 {
			return "", false, nil, fmt.Errorf("npz: bad shape dimension %q", field)
		}
		shape = append(shape, d)
	}
	return descr, fortran, shape, nil
}

// fortranToC reorders a column-major flat array into row-major order.
func fortranToC[T any](in []T, shape []int) []T {
	if len(shape) < 2 {
		return in
	}
	fstride := make([]int, len(shape))
	s := 1
	for i := range shape {
		fstride[i] = s
		s *= shape[i]
	}

	out := make([]T, len(in))
	idx := make([]int, len(shape))
	for c := range out {
		f := 0
		for d, v := range idx {
			f += v * fstride[d]
		}
		out[c] = in[f]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}
