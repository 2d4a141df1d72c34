package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Aashish23092/inscription-verification/cache"
	"github.com/Aashish23092/inscription-verification/dto"
)

// minEmbeddedText is the number of non-space characters a PDF text layer must
// hold before OCR of its page images is skipped.
const minEmbeddedText = 20

const (
	providerCache   = "cache"
	providerPDFText = "pdf-text"
)

// Issues reported in dto.DocumentQuality.
const (
	issueNoText          = "no_text"
	issueOCRFailed       = "ocr_failed"
	issueLowConfidence   = "low_confidence"
	issuePDFTextFailed   = "pdf_text_unavailable"
	issuePDFImagesFailed = "pdf_images_unavailable"
	issueImageUnreadable = "image_unreadable"
	issueQRCodeIncluded  = "qr_code_included"
)

// lowConfidence is the mean word confidence, in percent, below which a scan
// is flagged.
const lowConfidence = 60

// DocumentRecognizer reads an uploaded scan, PDF or image, and caches the
// result by content.
type DocumentRecognizer struct {
	chain    *RecognizerChain
	pdf      PDFProcessor
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewDocumentRecognizer(chain *RecognizerChain, pdf PDFProcessor, c cache.Cache, cacheTTL time.Duration) *DocumentRecognizer {
	return &DocumentRecognizer{
		chain:    chain,
		pdf:      pdf,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Recognize returns the text of the document. A failure leaves the text empty
// and is returned so the caller can report it; it never aborts a submission.
func (d *DocumentRecognizer) Recognize(ctx context.Context, data []byte, filename string) (string, dto.DocumentQuality, error) {
	key := cache.DocumentKey(data, d.chain.Name())
	if d.cache != nil {
		if entry, ok := d.cache.Get(key); ok {
			log.Printf("OCR: cache hit for %s (read by %s)", filename, entry.Quality.Provider)
			quality := entry.Quality
			quality.Provider = providerCache
			quality.Issues = append([]string{}, entry.Quality.Issues...)
			return entry.Text, quality, nil
		}
	}

	var (
		text    string
		quality dto.DocumentQuality
		err     error
	)
	if isPDF(filename) {
		text, quality, err = d.recognizePDF(ctx, data, filename)
	} else {
		text, quality, err = d.recognizeImage(ctx, data, filename)
	}
	if err != nil {
		quality.Issues = append(quality.Issues, issueOCRFailed)
		return "", quality, err
	}

	if strings.TrimSpace(text) == "" {
		quality.Issues = append(quality.Issues, issueNoText)
	}
	if quality.OcrConfidence > 0 && quality.OcrConfidence < lowConfidence {
		quality.Issues = append(quality.Issues, issueLowConfidence)
	}
	if d.cache != nil && strings.TrimSpace(text) != "" {
		d.cache.Set(key, cache.Entry{Text: text, Quality: quality}, d.cacheTTL)
	}

	return text, quality, nil
}

func (d *DocumentRecognizer) recognizeImage(ctx context.Context, data []byte, filename string) (string, dto.DocumentQuality, error) {
	quality := dto.DocumentQuality{Issues: []string{}}

	rec, err := d.chain.Recognize(ctx, data, filename)
	if err != nil {
		return "", quality, fmt.Errorf("failed to recognize %s: %w", filepath.Base(filename), err)
	}
	quality.Provider = rec.Provider
	quality.OcrConfidence = rec.Confidence

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("OCR: cannot decode %s for QR lookup: %v", filename, err)
		quality.Issues = append(quality.Issues, issueImageUnreadable)
		return rec.Text, quality, nil
	}

	return d.appendQR(rec.Text, img, &quality), quality, nil
}

func (d *DocumentRecognizer) recognizePDF(ctx context.Context, data []byte, filename string) (string, dto.DocumentQuality, error) {
	quality := dto.DocumentQuality{Issues: []string{}}

	text, err := d.pdf.ExtractText(data)
	if err != nil {
		log.Printf("OCR: no text layer in %s: %v", filename, err)
		quality.Issues = append(quality.Issues, issuePDFTextFailed)
	} else if nonSpaceLen(text) >= minEmbeddedText {
		quality.Provider = providerPDFText
		quality.OcrConfidence = 100
		return strings.TrimSpace(text), quality, nil
	}

	images, err := d.pdf.ExtractImages(data)
	if err != nil {
		log.Printf("OCR: cannot extract page images from %s: %v", filename, err)
		quality.Issues = append(quality.Issues, issuePDFImagesFailed)
		return strings.TrimSpace(text), quality, nil
	}

	var (
		pages      []string
		errs       []error
		confidence float64
		scored     int
	)
	for i, img := range images {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			errs = append(errs, fmt.Errorf("page image %d: %w", i+1, err))
			continue
		}

		pageName := fmt.Sprintf("%s-page-%d.png", strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)), i+1)
		rec, err := d.chain.Recognize(ctx, buf.Bytes(), pageName)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if quality.Provider == "" {
			quality.Provider = rec.Provider
		}
		if rec.Confidence > 0 {
			confidence += rec.Confidence
			scored++
		}
		pages = append(pages, d.appendQR(rec.Text, img, &quality))
	}

	if len(images) > 0 && len(errs) == len(images) {
		return "", quality, fmt.Errorf("failed to recognize any page of %s: %w", filepath.Base(filename), errs[0])
	}
	if scored > 0 {
		quality.OcrConfidence = confidence / float64(scored)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), quality, nil
}

// appendQR adds the payload of a QR code found on img to text.
func (d *DocumentRecognizer) appendQR(text string, img image.Image, quality *dto.DocumentQuality) string {
	payload, err := decodeQR(img)
	if err != nil || strings.TrimSpace(payload) == "" {
		return text
	}

	quality.Issues = append(quality.Issues, issueQRCodeIncluded)
	if strings.TrimSpace(text) == "" {
		return payload
	}
	return text + "\n" + payload
}

func isPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func nonSpaceLen(s string) int {
	return utf8.RuneCountInString(strings.Join(strings.Fields(s), ""))
}
