// Package word extracts paragraph text from word-processor (docx) containers.
package word

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alisever/join-the-siege/internal/agent/mime"
	"github.com/alisever/join-the-siege/internal/models"
	"github.com/alisever/join-the-siege/pkg/logger"
)

// maxDocumentSize caps the uncompressed document body that is parsed.
const maxDocumentSize = 64 << 20

type Processor struct {
	logger logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{logger: log.Named("word")}
}

// CanProcess accepts zip containers; callers confirm the document body with
// mime.IsWordProcessorContainer.
func (p *Processor) CanProcess(mimeType string) bool {
	return mimeType == models.MimeZip
}

// Extract returns the text runs of the document body, one line per paragraph.
func (p *Processor) Extract(ctx context.Context, path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open container: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != mime.WordDocumentEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		defer rc.Close()

		text, err := paragraphs(ctx, io.LimitReader(rc, maxDocumentSize))
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		p.logger.Debug("Document body extracted", logger.Int("chars", len(text)))
		return text, nil
	}
	return "", fmt.Errorf("container has no %s", mime.WordDocumentEntry)
}

// paragraphs walks WordprocessingML tokens: w:t carries text, w:p ends a
// paragraph, w:tab and w:br map to whitespace.
func paragraphs(ctx context.Context, r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		line   strings.Builder
		inText bool
		lines  []string
	)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				line.WriteByte('\t')
			case "br", "cr":
				line.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				lines = append(lines, line.String())
				line.Reset()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"), nil
}
