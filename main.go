package main

import (
	"log"
	"net/http"

	"github.com/Aashish23092/inscription-verification/cache"
	"github.com/Aashish23092/inscription-verification/client"
	"github.com/Aashish23092/inscription-verification/client/tesseract"
	"github.com/Aashish23092/inscription-verification/config"
	"github.com/Aashish23092/inscription-verification/handler"
	"github.com/Aashish23092/inscription-verification/service"
	"github.com/Aashish23092/inscription-verification/verification"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()
	log.Println("TESSDATA_PREFIX set to:", cfg.TesseractDataPath)

	// Matching rules, optionally overridden from a YAML file
	rules := verification.DefaultRuleSet()
	if cfg.MatchingRulesFile != "" {
		loaded, err := verification.LoadRules(cfg.MatchingRulesFile)
		if err != nil {
			log.Fatalf("Failed to load matching rules: %v", err)
		}
		rules = loaded
		log.Printf("Loaded matching rules from %s", cfg.MatchingRulesFile)
	}

	verifier, err := verification.New(
		verification.WithRuleSet(rules),
		verification.WithConcurrency(cfg.VerifyConcurrency),
	)
	if err != nil {
		log.Fatalf("Invalid matching rules: %v", err)
	}

	// OCR providers: OCR.space first when a key is configured, local tesseract as fallback
	var recognizers []service.TextRecognizer
	ocrSpace := client.NewOCRSpaceClient(
		cfg.OCRSpaceAPIKey,
		cfg.OCRSpaceURL,
		cfg.OCRSpaceLanguage,
		cfg.OCRTimeout,
		cfg.OCRRateLimit,
		cfg.OCRRateBurst,
	)
	if ocrSpace.Enabled() {
		recognizers = append(recognizers, ocrSpace)
	} else {
		log.Println("OCR_SPACE_API_KEY not set, using tesseract only")
	}

	tesseractClient := tesseract.NewClient(cfg.TesseractDataPath, cfg.OCRLanguages)
	defer tesseractClient.Close()
	recognizers = append(recognizers, tesseractClient)

	chain := service.NewRecognizerChain(recognizers...)
	ocrCache := cache.NewMemoryCache(cfg.OCRCacheTTL, 2*cfg.OCRCacheTTL)

	// Initialize service layer
	documentRecognizer := service.NewDocumentRecognizer(chain, service.NewPDFProcessor(), ocrCache, cfg.OCRCacheTTL)
	store := service.NewLocalStore(cfg.UploadDir)
	inscriptionService := service.NewInscriptionService(store, documentRecognizer, verifier)

	// Initialize handler layer
	inscriptionHandler := handler.NewInscriptionHandler(inscriptionService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Two documents plus form fields
	router.MaxMultipartMemory = 2*cfg.MaxFileSize + 1<<20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "Inscription Verification",
			"providers": chain.Name(),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/inscriptions", inscriptionHandler.CreateInscription)
	}

	// Start server
	log.Printf("Starting Inscription Verification Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
