package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"stackwalls-backend/cache"
	"stackwalls-backend/chat"
	"stackwalls-backend/config"
	"stackwalls-backend/extract"
	"stackwalls-backend/genai"
	"stackwalls-backend/history"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.OpenAIKey == "" {
		log.Fatal("[main] OPENAI_API_KEY is missing; set it in the environment or .env")
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatalf("[main] create uploads dir: %v", err)
	}

	ai := genai.NewClient(cfg.OpenAIKey, cfg.Model, cfg.GenerateTimeout)
	h := chat.NewHandler(
		cfg,
		ai,
		history.NewStore(),
		cache.New(cfg.CacheTTL),
		&extract.DocumentReader{MaxChars: cfg.MaxReferenceChars},
		&extract.WikiClient{},
		&extract.WebFetcher{},
		&extract.MediaExtractor{
			Transcriber:   ai,
			TranscriptURL: cfg.TranscriptServiceURL,
			WorkDir:       cfg.UploadsDir,
		},
	)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Printf("[main][panic] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
	}))
	h.Register(r)

	r.Run(":8080")
}
