package extract

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblify/joblify/internal/llm"
)

type fakeEngine struct {
	reply    string
	err      error
	mimeType string
	data     []byte
	tier     llm.ModelTier
	calls    int
}

func (f *fakeEngine) GenerateDocument(_ context.Context, _ string, mimeType string, data []byte, tier llm.ModelTier) (string, error) {
	f.calls++
	f.mimeType = mimeType
	f.data = data
	f.tier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestExtractor_Extract(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake document")
	encoded := base64.StdEncoding.EncodeToString(pdfBytes)

	engine := &fakeEngine{reply: "  Six years of Go experience.\n"}
	extractor := NewExtractor(engine, nil)

	text, err := extractor.Extract(context.Background(), encoded)
	require.NoError(t, err)

	assert.Equal(t, "Six years of Go experience.", text)
	assert.Equal(t, "application/pdf", engine.mimeType)
	assert.Equal(t, pdfBytes, engine.data)
	assert.Equal(t, llm.TierExtraction, engine.tier)
}

func TestExtractor_Extract_EmptyInput(t *testing.T) {
	engine := &fakeEngine{}
	extractor := NewExtractor(engine, nil)

	_, err := extractor.Extract(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no PDF content")
	assert.Equal(t, 0, engine.calls)
}

func TestExtractor_Extract_InvalidBase64(t *testing.T) {
	engine := &fakeEngine{}
	extractor := NewExtractor(engine, nil)

	_, err := extractor.Extract(context.Background(), "not-valid-base64!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base64")
	assert.Equal(t, 0, engine.calls)
}

func TestExtractor_Extract_EngineError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("model unavailable")}
	extractor := NewExtractor(engine, nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
	_, err := extractor.Extract(context.Background(), encoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction call failed")
}
