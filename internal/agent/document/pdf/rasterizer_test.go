package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisever/join-the-siege/internal/testutil"
)

type fakeRunner struct {
	name string
	args []string
	png  []byte
	err  error
}

// Run writes the fake page image where pdftoppm -singlefile would.
func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.name, r.args = name, args
	if r.err != nil {
		return nil, []byte("Syntax Error: Couldn't read xref table"), r.err
	}
	prefix := args[len(args)-1]
	if err := os.WriteFile(prefix+".png", r.png, 0o644); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}

func TestPopplerRasterizePage(t *testing.T) {
	tmp := t.TempDir()
	runner := &fakeRunner{png: testutil.PNGBytes(t, 30, 40)}
	r := NewPopplerRasterizerWithRunner("", runner, tmp)

	img, err := r.RasterizePage(context.Background(), "/data/in.pdf", 3, 300)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	assert.Equal(t, "pdftoppm", runner.name)
	assert.Equal(t, []string{"-r", "300", "-f", "3", "-l", "3", "-singlefile", "-png", "/data/in.pdf"}, runner.args[:9])

	left, err := filepath.Glob(filepath.Join(tmp, "*"))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestPopplerRasterizeFailure(t *testing.T) {
	tmp := t.TempDir()
	r := NewPopplerRasterizerWithRunner("/usr/bin/pdftoppm", &fakeRunner{err: errors.New("exit status 1")}, tmp)

	_, err := r.RasterizePage(context.Background(), "/data/in.pdf", 1, 150)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xref table")

	left, err := filepath.Glob(filepath.Join(tmp, "*"))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...(truncated)", truncate("abcdef", 2))
}
