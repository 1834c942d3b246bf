package config

import (
	"log"
	"os"
)

// Config carries every environment-driven setting. Both API credentials are
// optional: a missing key switches the owning service into its fallback mode
// instead of failing startup.
type Config struct {
	YouTubeAPIKey string
	YouTubeRegion string
	OpenAIAPIKey  string
	OpenAIModel   string
	NATSUrl       string
	Port          string
}

func Load() *Config {
	cfg := &Config{
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
		YouTubeRegion: getEnv("YOUTUBE_REGION", "IN"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		NATSUrl:       getEnv("NATS_URL", ""),
		Port:          getEnv("PORT", "8080"),
	}

	if cfg.YouTubeAPIKey == "" {
		log.Printf("[WARN] YOUTUBE_API_KEY not set, trends will serve fallback data")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Printf("[WARN] OPENAI_API_KEY not set, insights will use the heuristic digest")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
