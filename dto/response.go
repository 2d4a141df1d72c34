package dto

import "errors"

// Custom errors
var (
	ErrMissingDocument     = errors.New("document is required")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("invalid file type. Supported: PDF, PNG, JPG")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type DocumentPair struct {
	Bac string `json:"bac"`
	Cin string `json:"cin"`
}

// InscriptionResponse is returned once a submission has been analysed.
type InscriptionResponse struct {
	ID           string                     `json:"id"`
	Message      string                     `json:"message"`
	Status       VerificationStatus         `json:"status"`
	Verification []FieldVerdict             `json:"verification"`
	Checks       map[FieldID]bool           `json:"checks"`
	OCR          DocumentPair               `json:"ocr"`
	OCRErrors    map[string]string          `json:"ocr_errors,omitempty"`
	Quality      map[string]DocumentQuality `json:"quality"`
	Hints        map[string]IdentityHints   `json:"hints"`
	Paths        DocumentPair               `json:"paths"`
	ProcessedAt  string                     `json:"processed_at"`
}
