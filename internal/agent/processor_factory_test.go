package agent

import (
	"context"
	"errors"
	stdimage "image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisever/join-the-siege/internal/agent/document/image"
	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/internal/testutil"
	"github.com/alisever/join-the-siege/pkg/logger"
)

type blankRasterizer struct{ calls int }

func (r *blankRasterizer) RasterizePage(context.Context, string, int, int) (stdimage.Image, error) {
	r.calls++
	return stdimage.NewGray(stdimage.Rect(0, 0, 8, 8)), nil
}

func newFactory(t *testing.T, ocrText string, ocrErr error) (*ExtractorFactory, *blankRasterizer) {
	t.Helper()
	rast := &blankRasterizer{}
	f, err := NewExtractorFactory(logger.NewTestLogger(), FactoryOptions{
		Engine: ocr.EngineFunc(func(context.Context, []byte) (string, error) {
			return ocrText, ocrErr
		}),
		Rasterizer: rast,
		Image:      &image.ProcessOptions{},
	})
	require.NoError(t, err)
	return f, rast
}

func TestNewExtractorFactoryRequiresEngine(t *testing.T) {
	_, err := NewExtractorFactory(logger.NewTestLogger(), FactoryOptions{})
	assert.Error(t, err)
}

func TestExtractDispatch(t *testing.T) {
	dir := t.TempDir()
	f, rast := newFactory(t, "INVOICE #123", nil)

	tests := []struct {
		name     string
		mimeType string
		data     []byte
		want     string
	}{
		{"text layer pdf", "application/pdf", testutil.PDFBytes(t, "Bank statement for account 1234"), "Bank statement for account 1234"},
		{"image", "image/png", testutil.PNGBytes(t, 16, 16), "INVOICE #123"},
		{"word document", "application/zip", testutil.DocxBytes(t, "Invoice", "Bill to: ACME"), "Invoice\nBill to: ACME"},
		{"plain zip", "application/zip", testutil.ZipBytes(t, [2]string{"a.txt", "invoice"}), ""},
		{"plain text", "text/plain", []byte("qwertyuiop"), "qwertyuiop"},
		{"unsupported", "application/octet-stream", []byte{0, 1, 2}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, dir, tt.name, tt.data)
			got, err := f.Extract(context.Background(), path, tt.mimeType)
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
			if tt.want == "" {
				assert.Empty(t, got)
			}
		})
	}
	assert.Zero(t, rast.calls)
}

func TestExtractScannedPDFUsesOCR(t *testing.T) {
	f, rast := newFactory(t, "INVOICE #123", nil)
	path := testutil.WriteFile(t, t.TempDir(), "scan", testutil.PDFBytes(t, ""))

	got, err := f.Extract(context.Background(), path, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "INVOICE #123", got)
	assert.Equal(t, 1, rast.calls)
}

func TestExtractPropagatesExtractorErrors(t *testing.T) {
	f, _ := newFactory(t, "", errors.New("engine down"))
	path := testutil.WriteFile(t, t.TempDir(), "photo", testutil.PNGBytes(t, 4, 4))

	_, err := f.Extract(context.Background(), path, "image/png")
	assert.ErrorContains(t, err, "engine down")
}

func TestGetExtractorUnsupported(t *testing.T) {
	f, _ := newFactory(t, "", nil)

	_, err := f.GetExtractor("application/x-msdownload", "/tmp/x")
	assert.True(t, models.IsKind(err, models.ErrUnsupportedType))

	path := testutil.WriteFile(t, t.TempDir(), "zip", testutil.ZipBytes(t, [2]string{"a", "b"}))
	_, err = f.GetExtractor("application/zip", path)
	assert.True(t, models.IsKind(err, models.ErrUnsupportedType))
}
