package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort string

	TesseractDataPath string
	OCRLanguages      string

	OCRSpaceAPIKey   string
	OCRSpaceURL      string
	OCRSpaceLanguage string
	OCRTimeout       time.Duration
	OCRRateLimit     float64
	OCRRateBurst     int
	OCRCacheTTL      time.Duration

	UploadDir         string
	MaxFileSize       int64
	MatchingRulesFile string
	VerifyConcurrency int
}

func LoadConfig() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		OCRLanguages:      getEnv("OCR_LANGUAGES", "ara+fra+eng"),

		OCRSpaceAPIKey:   os.Getenv("OCR_SPACE_API_KEY"),
		OCRSpaceURL:      getEnv("OCR_SPACE_URL", "https://api.ocr.space/parse/image"),
		OCRSpaceLanguage: getEnv("OCR_SPACE_LANGUAGE", "ara"),
		OCRTimeout:       getDuration("OCR_TIMEOUT", 20*time.Second),
		OCRRateLimit:     getFloat("OCR_RATE_LIMIT", 1),
		OCRRateBurst:     getInt("OCR_RATE_BURST", 2),
		OCRCacheTTL:      getDuration("OCR_CACHE_TTL", 30*time.Minute),

		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxFileSize:       int64(getInt("MAX_IMAGE_SIZE", 4*1024*1024)), // 4 MB
		MatchingRulesFile: os.Getenv("MATCHING_RULES_FILE"),
		VerifyConcurrency: getInt("VERIFY_CONCURRENCY", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
