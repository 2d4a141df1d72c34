package tesseract

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

type Client struct {
	dataPath  string
	languages []string
}

// NewClient creates a local OCR client. languages uses tesseract's
// "ara+fra+eng" notation.
func NewClient(dataPath, languages string) *Client {
	langs := strings.Split(languages, "+")
	if languages == "" {
		langs = []string{"eng"}
	}
	return &Client{
		dataPath:  dataPath,
		languages: langs,
	}
}

func (tc *Client) Name() string {
	return "tesseract"
}

// ExtractText extracts text from an image held in memory.
func (tc *Client) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	text, _, err := tc.ExtractTextAndQuality(ctx, data)
	if err != nil {
		return "", fmt.Errorf("tesseract failed on %s: %w", filename, err)
	}
	return text, nil
}

// ExtractTextAndQuality returns the text and the mean word confidence (0-100).
func (tc *Client) ExtractTextAndQuality(ctx context.Context, data []byte) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		if err := client.SetTessdataPrefix(tc.dataPath); err != nil {
			return "", 0, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}

	if err := client.SetLanguage(tc.languages...); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	// Get bounding boxes to calculate confidence
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return text, 0, nil
	}

	var totalConf float64
	for _, box := range boxes {
		totalConf += box.Confidence
	}

	avgConf := 0.0
	if len(boxes) > 0 {
		avgConf = totalConf / float64(len(boxes))
	}

	return text, avgConf, nil
}

// Close performs cleanup
func (tc *Client) Close() {
	log.Println("Tesseract client closed")
}
