package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// TextRecognizer turns a document image into text.
type TextRecognizer interface {
	Name() string
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}

// confidenceRecognizer is implemented by engines that can score their output.
type confidenceRecognizer interface {
	ExtractTextAndQuality(ctx context.Context, data []byte) (string, float64, error)
}

// Recognition is the text read from one image and where it came from.
type Recognition struct {
	Text       string
	Provider   string
	Confidence float64
}

// RecognizerChain tries its recognizers in order and keeps the first
// non-blank text.
type RecognizerChain struct {
	recognizers []TextRecognizer
}

func NewRecognizerChain(recognizers ...TextRecognizer) *RecognizerChain {
	return &RecognizerChain{recognizers: recognizers}
}

func (c *RecognizerChain) Name() string {
	names := make([]string, 0, len(c.recognizers))
	for _, r := range c.recognizers {
		names = append(names, r.Name())
	}
	return strings.Join(names, ">")
}

func (c *RecognizerChain) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	rec, err := c.Recognize(ctx, data, filename)
	return rec.Text, err
}

// Recognize returns the first non-blank text. Blank output from every
// recognizer is not an error; failures of all of them are reported together.
func (c *RecognizerChain) Recognize(ctx context.Context, data []byte, filename string) (Recognition, error) {
	if len(c.recognizers) == 0 {
		return Recognition{}, errors.New("no text recognizer configured")
	}

	var errs []error
	for _, r := range c.recognizers {
		rec, err := recognizeWith(ctx, r, data, filename)
		if err != nil {
			log.Printf("OCR: %s failed on %s: %v", r.Name(), filename, err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
			continue
		}
		if strings.TrimSpace(rec.Text) != "" {
			return rec, nil
		}
		log.Printf("OCR: %s returned no text for %s, trying next provider", r.Name(), filename)
	}

	if len(errs) == len(c.recognizers) {
		return Recognition{}, errors.Join(errs...)
	}
	return Recognition{}, nil
}

func recognizeWith(ctx context.Context, r TextRecognizer, data []byte, filename string) (Recognition, error) {
	if cr, ok := r.(confidenceRecognizer); ok {
		text, confidence, err := cr.ExtractTextAndQuality(ctx, data)
		return Recognition{Text: text, Provider: r.Name(), Confidence: confidence}, err
	}

	text, err := r.ExtractText(ctx, data, filename)
	return Recognition{Text: text, Provider: r.Name()}, err
}
