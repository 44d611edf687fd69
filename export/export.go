package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glaokit/segkl"
	"github.com/glaokit/segkl/blobstore"
	"github.com/glaokit/segkl/npz"
)

// ErrArchiveShape is returned when the archive arrays do not form a
// consistent (segments, points, n_mode) / (segments, points) pair.
var ErrArchiveShape = errors.New("export: archive shape mismatch")

// Exporter reads a mode-basis archive and writes one encoded record per
// segment.
type Exporter struct {
	opts options
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	o := options{
		nMode:   DefaultNMode,
		pattern: DefaultFilePattern,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Exporter{opts: o}
}

// Export loads archivePath and writes one file per segment to outDir (or
// to the configured blob store). It returns the number of files written.
// Shape violations are detected before anything is written.
func (e *Exporter) Export(ctx context.Context, archivePath, outDir string) (int, error) {
	r, err := npz.Open(archivePath)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	klArr, err := r.Read("KL")
	if err != nil {
		return 0, fmt.Errorf("export: read KL: %w", err)
	}
	maskArr, err := r.Read("mask")
	if err != nil {
		return 0, fmt.Errorf("export: read mask: %w", err)
	}
	nSeg, nPoint, err := e.checkShapes(klArr, maskArr)
	if err != nil {
		return 0, err
	}

	modes, err := klArr.Float64s()
	if err != nil {
		return 0, fmt.Errorf("export: KL: %w", err)
	}
	mask, err := maskArr.Bools()
	if err != nil {
		return 0, fmt.Errorf("export: mask: %w", err)
	}

	store := e.opts.store
	if store == nil {
		store = blobstore.NewLocalStore(outDir)
	}

	for sid := 1; sid <= nSeg; sid++ {
		data, err := e.encodeSegment(sid, nPoint, modes, mask)
		if err != nil {
			return sid - 1, err
		}
		name := fmt.Sprintf(e.opts.pattern, sid)
		if err := store.Put(ctx, name, data); err != nil {
			return sid - 1, fmt.Errorf("export: segment %d: %w", sid, err)
		}
		e.opts.logger.Info("segment exported",
			"tag", fmt.Sprintf("M2S%d", sid),
			"file", name,
			"points", nPoint,
			"modes", e.opts.nMode,
			"bytes", len(data),
		)
	}
	return nSeg, nil
}

// encodeSegment builds and frames the record for one segment. It is a
// pure function of the segment id and the archive arrays.
func (e *Exporter) encodeSegment(sid, nPoint int, modes []float64, mask []bool) ([]byte, error) {
	block := modes[(sid-1)*nPoint*e.opts.nMode : sid*nPoint*e.opts.nMode]
	kl, err := segkl.FromRowMajor(block, e.opts.nMode, mask[(sid-1)*nPoint:sid*nPoint])
	if err != nil {
		return nil, fmt.Errorf("export: segment %d: %w", sid, err)
	}
	if e.opts.generic {
		return kl.MarshalBinary()
	}
	return segkl.Segment{SID: sid, KarhunenLoeve: kl}.MarshalBinary()
}

func (e *Exporter) checkShapes(klArr, maskArr *npz.Array) (nSeg, nPoint int, err error) {
	if len(klArr.Shape) != 3 {
		return 0, 0, fmt.Errorf("%w: KL is %v, want (segments, points, modes)", ErrArchiveShape, klArr.Shape)
	}
	if len(maskArr.Shape) != 2 {
		return 0, 0, fmt.Errorf("%w: mask is %v, want (segments, points)", ErrArchiveShape, maskArr.Shape)
	}
	nSeg, nPoint = klArr.Shape[0], klArr.Shape[1]
	if maskArr.Shape[0] != nSeg {
		return 0, 0, fmt.Errorf("%w: KL has %d segments, mask has %d", ErrArchiveShape, nSeg, maskArr.Shape[0])
	}
	if maskArr.Shape[1] != nPoint {
		return 0, 0, fmt.Errorf("%w: KL has %d points, mask has %d", ErrArchiveShape, nPoint, maskArr.Shape[1])
	}
	if klArr.Shape[2] != e.opts.nMode {
		return 0, 0, fmt.Errorf("%w: KL has %d modes, expected %d", ErrArchiveShape, klArr.Shape[2], e.opts.nMode)
	}
	return nSeg, nPoint, nil
}
