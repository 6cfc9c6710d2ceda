package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/internal/testutil"
	"github.com/alisever/join-the-siege/pkg/logger"
)

type recordingEngine struct {
	text  string
	err   error
	calls int
	last  []byte
}

func (e *recordingEngine) Recognize(_ context.Context, img []byte) (string, error) {
	e.calls++
	e.last = img
	return e.text, e.err
}

func (e *recordingEngine) Close() error { return nil }

func TestNewProcessorRequiresDependencies(t *testing.T) {
	_, err := NewProcessor(nil, logger.NewTestLogger(), nil)
	assert.Error(t, err)

	_, err = NewProcessor(&recordingEngine{}, nil, nil)
	assert.Error(t, err)
}

func TestExtractRunsOCR(t *testing.T) {
	engine := &recordingEngine{text: "Passport number X123"}
	p, err := NewProcessor(engine, logger.NewTestLogger(), nil)
	require.NoError(t, err)

	path := testutil.WriteFile(t, t.TempDir(), "photo", testutil.PNGBytes(t, 40, 20))
	text, err := p.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Passport number X123", text)
	assert.Equal(t, 1, engine.calls)

	img, err := png.Decode(bytes.NewReader(engine.last))
	require.NoError(t, err)
	// upscaled to 1000px on the short side plus a 10px border each way
	assert.Equal(t, 2020, img.Bounds().Dx())
	assert.Equal(t, 1020, img.Bounds().Dy())
}

func TestExtractWithoutPreprocessing(t *testing.T) {
	engine := &recordingEngine{text: "x"}
	p, err := NewProcessor(engine, logger.NewTestLogger(), &ProcessOptions{})
	require.NoError(t, err)

	path := testutil.WriteFile(t, t.TempDir(), "photo", testutil.PNGBytes(t, 40, 20))
	_, err = p.Extract(context.Background(), path)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(engine.last))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}

func TestExtractUndecodableImage(t *testing.T) {
	engine := &recordingEngine{}
	p, err := NewProcessor(engine, logger.NewTestLogger(), nil)
	require.NoError(t, err)

	path := testutil.WriteFile(t, t.TempDir(), "broken", []byte("\x89PNG\r\n\x1a\nnope"))
	_, err = p.Extract(context.Background(), path)
	assert.Error(t, err)
	assert.Zero(t, engine.calls)
}

func TestRecognizeEngineError(t *testing.T) {
	p, err := NewProcessor(&recordingEngine{err: errors.New("no tessdata")}, logger.NewTestLogger(), nil)
	require.NoError(t, err)

	_, err = p.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.ErrorContains(t, err, "no tessdata")
}

func TestCanProcess(t *testing.T) {
	p, err := NewProcessor(ocr.EngineFunc(func(context.Context, []byte) (string, error) { return "", nil }), logger.NewTestLogger(), nil)
	require.NoError(t, err)
	assert.True(t, p.CanProcess("image/png"))
	assert.True(t, p.CanProcess("image/webp"))
	assert.False(t, p.CanProcess("application/pdf"))
}

func TestPreprocessors(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 5))

	out, err := NewUpscaleProcessor(20).Process(src)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), out.Bounds())

	out, err = NewUpscaleProcessor(5).Process(src)
	require.NoError(t, err)
	assert.Same(t, src, out)

	out, err = NewBorderProcessor(3).Process(src)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 11), out.Bounds())

	_, err = runPreprocessors(nil, nil)
	assert.Error(t, err)
}
