package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "OCR_LANGUAGES", "OCR_SPACE_API_KEY", "OCR_TIMEOUT",
		"OCR_RATE_LIMIT", "MAX_IMAGE_SIZE", "VERIFY_CONCURRENCY", "UPLOAD_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "ara+fra+eng", cfg.OCRLanguages)
	assert.Empty(t, cfg.OCRSpaceAPIKey)
	assert.Equal(t, 20*time.Second, cfg.OCRTimeout)
	assert.Equal(t, 1.0, cfg.OCRRateLimit)
	assert.Equal(t, int64(4*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 0, cfg.VerifyConcurrency)
	assert.Equal(t, "./uploads", cfg.UploadDir)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OCR_SPACE_API_KEY", "secret")
	t.Setenv("OCR_TIMEOUT", "5s")
	t.Setenv("OCR_RATE_LIMIT", "0.5")
	t.Setenv("VERIFY_CONCURRENCY", "4")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "secret", cfg.OCRSpaceAPIKey)
	assert.Equal(t, 5*time.Second, cfg.OCRTimeout)
	assert.Equal(t, 0.5, cfg.OCRRateLimit)
	assert.Equal(t, 4, cfg.VerifyConcurrency)
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("OCR_TIMEOUT", "soon")
	t.Setenv("MAX_IMAGE_SIZE", "big")
	t.Setenv("OCR_RATE_LIMIT", "fast")

	cfg := LoadConfig()

	assert.Equal(t, 20*time.Second, cfg.OCRTimeout)
	assert.Equal(t, int64(4*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 1.0, cfg.OCRRateLimit)
}
