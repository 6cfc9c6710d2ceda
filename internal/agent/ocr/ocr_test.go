package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "INVOICE #123\nTotal", Normalize("\n\nINVOICE #123  \r\nTotal\t\n\n"))
	assert.Equal(t, "", Normalize("  \n \n"))
}

func TestEngineFunc(t *testing.T) {
	var e Engine = EngineFunc(func(_ context.Context, img []byte) (string, error) {
		return string(img), nil
	})
	text, err := e.Recognize(context.Background(), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", text)
	assert.NoError(t, e.Close())
}
