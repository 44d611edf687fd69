// Package npz reads and writes the subset of the NumPy .npz/.npy formats
// used by the mode-basis archives.
//
// An .npz archive is a zip container whose members are .npy files, one per
// named array. Supported dtypes are '<f8', '<f4' (widened to float64),
// '|b1' and '|u1'. Fortran-ordered payloads are reordered to C order on
// load so callers can slice by shape without caring how the archive was
// saved.
//
// The writer emits uncompressed (Store) members with v1.0 headers, which
// is what numpy.savez produces for these arrays; it exists for fixture
// generation and tests, not as a general ndarray serializer.
package npz
