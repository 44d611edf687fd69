package export

import (
	"log/slog"

	"github.com/glaokit/segkl/blobstore"
)

// DefaultNMode is the number of Karhunen-Loeve modes per segment.
const DefaultNMode = 500

// DefaultFilePattern names output files by 1-based segment id.
const DefaultFilePattern = "M2S%d.bin"

type options struct {
	nMode   int
	generic bool
	pattern string
	store   blobstore.BlobStore
	logger  *slog.Logger
}

// Option configures an Exporter.
type Option func(*options)

// WithNMode sets the expected mode count. The trailing axis of the KL
// array must match it.
func WithNMode(n int) Option {
	return func(o *options) { o.nMode = n }
}

// WithGenericRecords emits untagged records instead of the default
// segment-tagged framing.
func WithGenericRecords() Option {
	return func(o *options) { o.generic = true }
}

// WithFilePattern sets the output file name pattern. It must contain one
// %d verb, which receives the 1-based segment id.
func WithFilePattern(pattern string) Option {
	return func(o *options) { o.pattern = pattern }
}

// WithStore directs output to the given blob store instead of the local
// output directory.
func WithStore(store blobstore.BlobStore) Option {
	return func(o *options) { o.store = store }
}

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
