// Command segkl exports segment Karhunen-Loeve mode bases from a NumPy
// archive to the binary files read by the fitting simulation.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/pflag"

	"github.com/glaokit/segkl/blobstore"
	miniostore "github.com/glaokit/segkl/blobstore/minio"
	"github.com/glaokit/segkl/export"
)

func main() {
	var (
		archive  = pflag.String("archive", "segKLmat.npz", "input .npz archive with KL and mask arrays")
		out      = pflag.String("out", ".", "output directory for segment files")
		nMode    = pflag.Int("n-mode", export.DefaultNMode, "expected number of modes per segment")
		generic  = pflag.Bool("generic", false, "emit untagged records instead of segment-tagged ones")
		pattern  = pflag.String("pattern", export.DefaultFilePattern, "output file name pattern, %d is the segment id")
		logLevel = pflag.String("log-level", "info", "log level: debug, info, warn, error")
		logJSON  = pflag.Bool("log-json", false, "log in JSON instead of text")

		endpoint  = pflag.String("minio-endpoint", "", "S3-compatible endpoint; when set, output goes to object storage")
		bucket    = pflag.String("bucket", "", "target bucket for object storage output")
		accessKey = pflag.String("access-key", "", "object storage access key")
		secretKey = pflag.String("secret-key", "", "object storage secret key")
		useSSL    = pflag.Bool("ssl", true, "use TLS for object storage")
	)
	pflag.Parse()

	logger := newLogger(*logLevel, *logJSON)

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := []export.Option{
		export.WithNMode(*nMode),
		export.WithFilePattern(*pattern),
		export.WithLogger(logger),
	}
	if *generic {
		opts = append(opts, export.WithGenericRecords())
	}
	if *endpoint != "" {
		store, err := newObjectStore(*endpoint, *bucket, *accessKey, *secretKey, *useSSL, *out)
		if err != nil {
			logger.Error("object storage setup failed", "error", err)
			os.Exit(1)
		}
		opts = append(opts, export.WithStore(store))
	}

	n, err := export.New(opts...).Export(ctx, *archive, *out)
	if err != nil {
		logger.Error("export failed", "archive", *archive, "written", n, "error", err)
		os.Exit(1)
	}
	logger.Info("export complete", "archive", *archive, "segments", n)
}

func newLogger(level string, json bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newObjectStore(endpoint, bucket, accessKey, secretKey string, useSSL bool, prefix string) (blobstore.BlobStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return miniostore.NewStore(client, bucket, prefix), nil
}
