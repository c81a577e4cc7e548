// Package extract pulls plain text out of uploaded resume documents using
// a document-understanding generation model.
package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/llm"
)

// extractionPrompt is the fixed instruction sent alongside the document.
const extractionPrompt = `Extract all text content from this PDF document.
Focus on:
- Professional experience
- Skills and technologies
- Education
- Projects
- Achievements

Return the content in a clear, structured format.
Include all relevant details but remove any formatting or unnecessary whitespace.`

const pdfMIMEType = "application/pdf"

// Engine is the slice of the LLM client the extractor depends on.
type Engine interface {
	GenerateDocument(ctx context.Context, prompt string, mimeType string, data []byte, tier llm.ModelTier) (string, error)
}

// Extractor turns base64-encoded PDFs into plain resume text.
// Unlike the scorer there is no fallback: callers treat extraction failure
// as fatal to the pipeline step.
type Extractor struct {
	engine Engine
	log    *zap.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(engine Engine, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{engine: engine, log: log}
}

// Extract decodes the base64 document and returns the extracted text,
// trimmed. It makes a single synchronous engine call; ctx carries any
// caller-imposed timeout or cancellation.
func (e *Extractor) Extract(ctx context.Context, base64PDF string) (string, error) {
	if strings.TrimSpace(base64PDF) == "" {
		return "", fmt.Errorf("no PDF content provided")
	}

	data, err := base64.StdEncoding.DecodeString(base64PDF)
	if err != nil {
		return "", fmt.Errorf("invalid base64 PDF content: %w", err)
	}

	text, err := e.engine.GenerateDocument(ctx, extractionPrompt, pdfMIMEType, data, llm.TierExtraction)
	if err != nil {
		return "", fmt.Errorf("extraction call failed: %w", err)
	}

	e.log.Debug("resume text extracted", zap.Int("bytes_in", len(data)), zap.Int("chars_out", len(text)))

	return strings.TrimSpace(text), nil
}
