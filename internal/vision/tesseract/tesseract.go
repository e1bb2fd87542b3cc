package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/spacebear01/osbc/internal/model"
)

// ReaderConfig is the configuration for the Reader.
type ReaderConfig struct {
	// Language is the Tesseract language model, "eng" when empty.
	Language string
}

func (c *ReaderConfig) defaults() error {
	if c.Language == "" {
		c.Language = "eng"
	}
	return nil
}

// Reader extracts text with the Tesseract OCR engine.
type Reader struct {
	language string
}

// NewReader creates a new Tesseract reader.
func NewReader(cfg ReaderConfig) (*Reader, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Reader{language: cfg.Language}, nil
}

// ReadText implements vision.TextReader. It returns one fragment per
// recognized word. A fresh Tesseract client is used per call, the underlying
// API is not safe for concurrent use.
func (r *Reader) ReadText(ctx context.Context, img image.Image) ([]model.TextFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return nil, fmt.Errorf("could not set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("could not set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("could not run OCR: %w", err)
	}

	fragments := make([]model.TextFragment, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		// Tesseract reports confidence in [0, 100].
		fragments = append(fragments, model.TextFragment{Text: word, Confidence: b.Confidence / 100})
	}

	return fragments, nil
}
