package service

import (
	"context"
	"image"
	"sync/atomic"
)

// fakeRecognizer answers by document content, or with fixed text when set.
type fakeRecognizer struct {
	name  string
	texts map[string]string
	fixed string
	errs  map[string]error
	err   error
	calls atomic.Int32
}

func (f *fakeRecognizer) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeRecognizer) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	if err, ok := f.errs[string(data)]; ok {
		return "", err
	}
	if f.fixed != "" {
		return f.fixed, nil
	}
	return f.texts[string(data)], nil
}

type scoringRecognizer struct {
	text       string
	confidence float64
}

func (s *scoringRecognizer) Name() string { return "scoring" }

func (s *scoringRecognizer) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	return s.text, nil
}

func (s *scoringRecognizer) ExtractTextAndQuality(ctx context.Context, data []byte) (string, float64, error) {
	return s.text, s.confidence, nil
}

type fakePDF struct {
	text      string
	textErr   error
	images    []image.Image
	imagesErr error
}

func (f *fakePDF) ExtractText(pdfData []byte) (string, error) {
	return f.text, f.textErr
}

func (f *fakePDF) ExtractImages(pdfData []byte) ([]image.Image, error) {
	return f.images, f.imagesErr
}
