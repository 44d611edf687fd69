package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)

	require.NoError(t, s.Put(context.Background(), "M2S1.bin", []byte("first")))
	got, err := os.ReadFile(filepath.Join(dir, "M2S1.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)

	// Overwrite replaces the whole blob.
	require.NoError(t, s.Put(context.Background(), "M2S1.bin", []byte("second")))
	got, err = os.ReadFile(filepath.Join(dir, "M2S1.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStore_CreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	s := NewLocalStore(dir)
	require.NoError(t, s.Put(context.Background(), "x.bin", []byte{1}))

	_, err := os.Stat(filepath.Join(dir, "x.bin"))
	assert.NoError(t, err)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewLocalStore(t.TempDir())
	assert.ErrorIs(t, s.Put(ctx, "x.bin", []byte{1}), context.Canceled)
}
