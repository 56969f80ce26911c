package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every externally-configured value the service needs. It is
// built once in main and passed into each collaborator's constructor so no
// business logic reads the environment directly.
type Config struct {
	// Server
	Port   string
	AppURL string

	// Postgres
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// TMDB catalog API
	TMDBAPIBaseURL   string
	TMDBImageBaseURL string
	TMDBBearerToken  string
	TMDBLanguage     string

	// Gemini models
	GeminiAPIKey    string
	GeminiTextModel string
	ImagenModel     string

	// Firebase / object storage
	FirebaseProjectID          string
	FirebaseServiceAccountPath string
	StorageBucket              string
	StoragePublicBaseURL       string

	// Enrichment pipeline
	EnrichConcurrency int
	CallTimeout       time.Duration
	SubmitTimeout     time.Duration
}

// Load reads the configuration from the environment. Defaults are suitable
// for local development; production deployments set everything explicitly.
func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "9092"),
		AppURL: getEnv("APP_URL", "http://localhost:3000"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ouryear"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       getEnv("POSTGRES_DB", "ouryear"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		TMDBAPIBaseURL:   getEnv("TMDB_API_URL", "https://api.themoviedb.org"),
		TMDBImageBaseURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org"),
		TMDBBearerToken:  os.Getenv("TMDB_BEARER_TOKEN"),
		TMDBLanguage:     getEnv("TMDB_LANGUAGE", "zh-CN"),

		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiTextModel: getEnv("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
		ImagenModel:     getEnv("IMAGEN_MODEL", "imagen-3.0-generate-002"),

		FirebaseProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		StorageBucket:              os.Getenv("STORAGE_BUCKET"),
		StoragePublicBaseURL:       getEnv("STORAGE_PUBLIC_BASE_URL", "https://storage.googleapis.com"),

		EnrichConcurrency: getEnvInt("ENRICH_CONCURRENCY", 4),
		CallTimeout:       getEnvDuration("CALL_TIMEOUT", 30*time.Second),
		SubmitTimeout:     getEnvDuration("SUBMIT_TIMEOUT", 3*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
