package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDir   string
	CORSOrigins string
	Debug       bool

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	// sent as X-Title and HTTP-Referer, which OpenRouter uses for attribution
	OpenAIAppTitle string
	OpenAIReferer  string
	GeminiAPIKey   string
	GeminiBaseURL  string
	GeminiModel    string

	PrimaryProvider  string
	FallbackProvider string
	ProviderTimeout  time.Duration
	CacheTTL         time.Duration
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "ai-tutor"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 8*24*60),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		UploadDir:   getEnv("UPLOAD_DIR", "uploaded_files"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		Debug:       getEnvBool("DEBUG", false),

		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:    os.Getenv("OPENAI_MODEL"),
		OpenAIAppTitle: getEnv("OPENAI_APP_TITLE", "AI Tutor"),
		OpenAIReferer:  os.Getenv("OPENAI_REFERER"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:  os.Getenv("GEMINI_BASE_URL"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),

		PrimaryProvider:  strings.ToLower(getEnv("PRIMARY_MODEL_PROVIDER", "openai")),
		FallbackProvider: strings.ToLower(getEnv("FALLBACK_MODEL_PROVIDER", "gemini")),
		ProviderTimeout:  getEnvDuration("PROVIDER_TIMEOUT", 60*time.Second),
		CacheTTL:         getEnvDuration("CACHE_TTL", time.Hour),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("90s") and bare seconds ("90").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}
