package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognizerChainFirstNonBlankWins(t *testing.T) {
	blank := &fakeRecognizer{name: "first", fixed: ""}
	second := &fakeRecognizer{name: "second", fixed: "ROYAUME DU MAROC"}
	third := &fakeRecognizer{name: "third", fixed: "unused"}

	chain := NewRecognizerChain(blank, second, third)
	rec, err := chain.Recognize(context.Background(), []byte("scan"), "bac.png")

	require.NoError(t, err)
	assert.Equal(t, "ROYAUME DU MAROC", rec.Text)
	assert.Equal(t, "second", rec.Provider)
	assert.Equal(t, int32(1), blank.calls.Load())
	assert.Equal(t, int32(0), third.calls.Load())
}

func TestRecognizerChainSkipsFailingProvider(t *testing.T) {
	failing := &fakeRecognizer{name: "ocr.space", err: errors.New("quota exceeded")}
	local := &fakeRecognizer{name: "tesseract", fixed: "ALAMI"}

	text, err := NewRecognizerChain(failing, local).ExtractText(context.Background(), []byte("scan"), "cin.jpg")

	require.NoError(t, err)
	assert.Equal(t, "ALAMI", text)
}

func TestRecognizerChainAllFail(t *testing.T) {
	chain := NewRecognizerChain(
		&fakeRecognizer{name: "a", err: errors.New("timeout")},
		&fakeRecognizer{name: "b", err: errors.New("no tessdata")},
	)

	_, err := chain.Recognize(context.Background(), []byte("scan"), "bac.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: timeout")
	assert.Contains(t, err.Error(), "b: no tessdata")
}

func TestRecognizerChainBlankIsNotAnError(t *testing.T) {
	chain := NewRecognizerChain(
		&fakeRecognizer{name: "a", err: errors.New("timeout")},
		&fakeRecognizer{name: "b"},
	)

	rec, err := chain.Recognize(context.Background(), []byte("scan"), "bac.png")

	require.NoError(t, err)
	assert.Empty(t, rec.Text)
}

func TestRecognizerChainEmpty(t *testing.T) {
	_, err := NewRecognizerChain().Recognize(context.Background(), []byte("scan"), "bac.png")
	assert.Error(t, err)
}

func TestRecognizerChainReportsConfidence(t *testing.T) {
	chain := NewRecognizerChain(&scoringRecognizer{text: "YOUSSEF", confidence: 87.5})

	rec, err := chain.Recognize(context.Background(), []byte("scan"), "bac.png")

	require.NoError(t, err)
	assert.Equal(t, "scoring", rec.Provider)
	assert.Equal(t, 87.5, rec.Confidence)
}

func TestRecognizerChainName(t *testing.T) {
	chain := NewRecognizerChain(&fakeRecognizer{name: "ocr.space"}, &fakeRecognizer{name: "tesseract"})
	assert.Equal(t, "ocr.space>tesseract", chain.Name())
}
