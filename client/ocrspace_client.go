package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrOCRSpaceDisabled   = errors.New("OCR.space API key is not configured")
	ErrOCRSpaceProcessing = errors.New("OCR.space could not process the document")
)

// OCRSpaceClient calls the OCR.space parse/image API.
type OCRSpaceClient struct {
	apiKey     string
	apiURL     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// NewOCRSpaceClient creates a rate limited OCR.space client. requestsPerSecond
// <= 0 disables the limiter.
func NewOCRSpaceClient(apiKey, apiURL, language string, timeout time.Duration, requestsPerSecond float64, burst int) *OCRSpaceClient {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &OCRSpaceClient{
		apiKey:     apiKey,
		apiURL:     apiURL,
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

func (c *OCRSpaceClient) Name() string {
	return "ocr.space"
}

// Enabled reports whether an API key was configured.
func (c *OCRSpaceClient) Enabled() bool {
	return c.apiKey != ""
}

// ExtractText uploads the document and returns the text of its first page.
func (c *OCRSpaceClient) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	if !c.Enabled() {
		return "", ErrOCRSpaceDisabled
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("OCR.space rate limit wait: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("apikey", c.apiKey); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.WriteField("language", c.language); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OCR.space: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR.space returned status %d: %s", resp.StatusCode, string(body))
	}

	var result ocrSpaceResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode OCR.space response: %w", err)
	}

	if result.IsErroredOnProcessing {
		return "", fmt.Errorf("%w: %s", ErrOCRSpaceProcessing, errorMessage(result.ErrorMessage))
	}

	if len(result.ParsedResults) == 0 {
		return "", nil
	}

	text := strings.TrimSpace(result.ParsedResults[0].ParsedText)
	log.Printf("OCR.space extracted %d characters from %s", len(text), filename)

	return text, nil
}

// errorMessage flattens ErrorMessage, which the API sends either as a string
// or as a list of strings.
func errorMessage(raw json.RawMessage) string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	return string(raw)
}
