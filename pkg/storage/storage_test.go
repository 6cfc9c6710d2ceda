package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ after int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.after <= 0 {
		return 0, errors.New("connection reset")
	}
	n := copy(p, strings.Repeat("x", r.after))
	r.after -= n
	return n, nil
}

func entries(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	return matches
}

func TestStageAndRelease(t *testing.T) {
	dir := t.TempDir()
	s := NewTempStager(dir)

	f, err := s.Stage(context.Background(), strings.NewReader("invoice body"), "invoice_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(12), f.Size)
	assert.Equal(t, "invoice_1.pdf", f.Name)
	assert.Equal(t, dir, filepath.Dir(f.Path))
	assert.NotContains(t, filepath.Base(f.Path), ".pdf")

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, "invoice body", string(data))

	require.NoError(t, f.Release())
	assert.Empty(t, entries(t, dir))
	assert.NoError(t, f.Release())
}

func TestStageEmptyUpload(t *testing.T) {
	f, err := NewTempStager(t.TempDir()).Stage(context.Background(), strings.NewReader(""), "empty.pdf")
	require.NoError(t, err)
	defer f.Release()
	assert.Zero(t, f.Size)
}

func TestStageReaderErrorLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := NewTempStager(dir).Stage(context.Background(), &failingReader{after: 100}, "x.pdf")
	assert.ErrorContains(t, err, "connection reset")
	assert.Empty(t, entries(t, dir))
}

func TestStageCanceledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTempStager(dir).Stage(ctx, io.LimitReader(strings.NewReader("abc"), 3), "x.pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, entries(t, dir))
}

func TestStageMissingDir(t *testing.T) {
	_, err := NewTempStager(filepath.Join(t.TempDir(), "missing")).Stage(context.Background(), strings.NewReader("a"), "a")
	assert.Error(t, err)
}
