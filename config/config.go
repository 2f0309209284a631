package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults mirror the limits the product has always shipped with.
const (
	DefaultHistoryWindow     = 5
	DefaultStackWallsWindow  = 10
	DefaultMaxReferenceChars = 10000
	DefaultSummaryWordLimit  = 500
)

// Config carries everything the process reads from the environment.
// Loaded once in main and passed down; handlers never touch os.Getenv.
type Config struct {
	OpenAIKey string
	Model     string

	HistoryWindow     int
	StackWallsWindow  int
	MaxReferenceChars int
	SummaryWordLimit  int

	ExtractTimeout  time.Duration
	GenerateTimeout time.Duration

	UploadsDir     string
	StackWallsPath string

	// Optional external transcript service probed before downloading
	// audio for a media link. Empty disables the probe.
	TranscriptServiceURL string

	// CacheTTL <= 0 keeps entries for the process lifetime.
	CacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		OpenAIKey:            os.Getenv("OPENAI_API_KEY"),
		Model:                getenvDefault("CHAT_MODEL", "gpt-4o-mini"),
		HistoryWindow:        getenvInt("HISTORY_WINDOW", DefaultHistoryWindow),
		StackWallsWindow:     getenvInt("STACKWALLS_WINDOW", DefaultStackWallsWindow),
		MaxReferenceChars:    getenvInt("MAX_REFERENCE_CHARS", DefaultMaxReferenceChars),
		SummaryWordLimit:     getenvInt("SUMMARY_WORD_LIMIT", DefaultSummaryWordLimit),
		ExtractTimeout:       getenvSeconds("EXTRACT_TIMEOUT_SEC", 120),
		GenerateTimeout:      getenvSeconds("GENERATE_TIMEOUT_SEC", 60),
		UploadsDir:           getenvDefault("UPLOADS_DIR", "uploads"),
		StackWallsPath:       getenvDefault("STACKWALLS_FILE", "stackwalls.txt"),
		TranscriptServiceURL: os.Getenv("TRANSCRIPT_SERVICE_URL"),
		CacheTTL:             getenvSeconds("CACHE_TTL_SEC", 0),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvSeconds(key string, def int) time.Duration {
	n := def
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			n = parsed
		}
	}
	return time.Duration(n) * time.Second
}
