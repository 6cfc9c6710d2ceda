// Package textract runs OCR through the AWS Textract DetectDocumentText API.
package textract

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/alisever/join-the-siege/internal/agent/ocr"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// DetectAPI is the subset of the Textract client the engine calls.
type DetectAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

type Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// MinConfidence drops LINE blocks below this confidence (0-100).
	MinConfidence float32
}

type Engine struct {
	client DetectAPI
	logger logger.Logger
	config *Config
}

var _ ocr.Engine = (*Engine)(nil)

// NewEngine builds a Textract client. Static credentials are used when an
// access key is configured, otherwise the default AWS credential chain applies.
func NewEngine(ctx context.Context, cfg *Config, log logger.Logger) (*Engine, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	client := textract.NewFromConfig(awsCfg, func(o *textract.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewEngineWithClient(client, cfg, log), nil
}

func NewEngineWithClient(client DetectAPI, cfg *Config, log logger.Logger) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Engine{
		client: client,
		logger: log.Named("textract"),
		config: cfg,
	}
}

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	result, err := e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return "", fmt.Errorf("failed to detect document text: %w", err)
	}

	lines := e.lines(result.Blocks)
	e.logger.Debug("Textract recognition finished",
		logger.Int("blocks", len(result.Blocks)),
		logger.Int("lines", len(lines)),
	)
	return strings.Join(lines, "\n"), nil
}

func (e *Engine) lines(blocks []types.Block) []string {
	var texts []string
	for _, block := range blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		if block.Confidence != nil && *block.Confidence < e.config.MinConfidence {
			continue
		}
		texts = append(texts, *block.Text)
	}
	return texts
}

func (e *Engine) Close() error {
	return nil
}
