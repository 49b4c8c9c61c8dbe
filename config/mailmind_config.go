package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Groq (follow-up, action plan, calendar extraction)
	GroqAPIKey string
	GroqModel  string

	// OpenRouter (summaries, replies)
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterReferer string

	// LLM call bounds
	LLMTimeout    time.Duration
	LLMMaxRetries int

	// Retrieval engine
	RAGDimension  int
	RAGMaxRecords int
	RAGTopK       int

	// HTTP
	AllowedOrigins  []string
	RateLimitPerMin int
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		GroqAPIKey: getEnv("GROQ_API_KEY", ""),
		GroqModel:  getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "qwen/qwen-2.5-coder-32b-instruct"),
		OpenRouterReferer: getEnv("OPENROUTER_REFERER", "http://localhost:3000"),

		LLMTimeout:    time.Duration(getEnvInt("LLM_TIMEOUT_SEC", 60)) * time.Second,
		LLMMaxRetries: getEnvInt("LLM_MAX_RETRIES", 3),

		RAGDimension:  getEnvInt("RAG_DIMENSION", 128),
		RAGMaxRecords: getEnvInt("RAG_MAX_RECORDS", 500),
		RAGTopK:       getEnvInt("RAG_TOP_K", 3),

		AllowedOrigins:  getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 60),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
