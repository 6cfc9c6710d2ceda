package textract

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisever/join-the-siege/pkg/logger"
)

type fakeDetectAPI struct {
	out   *textract.DetectDocumentTextOutput
	err   error
	input *textract.DetectDocumentTextInput
}

func (f *fakeDetectAPI) DetectDocumentText(_ context.Context, in *textract.DetectDocumentTextInput, _ ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error) {
	f.input = in
	return f.out, f.err
}

func line(text string, confidence float32) types.Block {
	return types.Block{BlockType: types.BlockTypeLine, Text: aws.String(text), Confidence: aws.Float32(confidence)}
}

func TestRecognizeJoinsConfidentLines(t *testing.T) {
	api := &fakeDetectAPI{out: &textract.DetectDocumentTextOutput{Blocks: []types.Block{
		{BlockType: types.BlockTypePage},
		line("INVOICE #123", 99),
		{BlockType: types.BlockTypeWord, Text: aws.String("INVOICE"), Confidence: aws.Float32(99)},
		line("smudge", 12),
		line("Amount due", 88),
	}}}
	engine := NewEngineWithClient(api, &Config{MinConfidence: 50}, logger.NewTestLogger())

	text, err := engine.Recognize(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "INVOICE #123\nAmount due", text)
	assert.Equal(t, []byte("png"), api.input.Document.Bytes)
}

func TestRecognizeError(t *testing.T) {
	api := &fakeDetectAPI{err: errors.New("throttled")}
	engine := NewEngineWithClient(api, nil, logger.NewTestLogger())

	_, err := engine.Recognize(context.Background(), []byte("png"))
	assert.ErrorContains(t, err, "throttled")
}
