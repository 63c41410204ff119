package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Recognition RecognitionConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	QueryTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// RecognitionConfig holds the identity-matching and attendance tuning knobs.
type RecognitionConfig struct {
	// EmbeddingDim is the fixed length of every face vector in the system.
	EmbeddingDim int
	// MatchThreshold is the maximum Euclidean distance at which a probe and
	// a reference embedding count as the same person.
	MatchThreshold float64
	// AmbiguityEpsilon: when the two best candidates are closer than this,
	// the match is ambiguous and treated as unmatched.
	AmbiguityEpsilon float64
	// MinEventGap absorbs duplicate camera frames: a second decision for the
	// same employee within this window is rejected.
	MinEventGap time.Duration
	// ShiftCalendarPath optionally points to a YAML file overriding the
	// built-in shift windows.
	ShiftCalendarPath string
}

func Load() (*Config, error) {
	// A missing .env file is fine in production; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	queryTimeout, err := time.ParseDuration(getEnv("DB_QUERY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_QUERY_TIMEOUT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         dbPort,
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		Name:         getEnv("DB_NAME", "presentia"),
		SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		QueryTimeout: queryTimeout,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Recognition configuration
	embeddingDim, err := strconv.Atoi(getEnv("EMBEDDING_DIM", "128"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMBEDDING_DIM: %w", err)
	}

	matchThreshold, err := strconv.ParseFloat(getEnv("MATCH_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MATCH_THRESHOLD: %w", err)
	}

	ambiguityEpsilon, err := strconv.ParseFloat(getEnv("MATCH_AMBIGUITY_EPSILON", "0.000001"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MATCH_AMBIGUITY_EPSILON: %w", err)
	}

	minEventGap, err := time.ParseDuration(getEnv("MIN_EVENT_GAP", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_EVENT_GAP: %w", err)
	}

	config.Recognition = RecognitionConfig{
		EmbeddingDim:      embeddingDim,
		MatchThreshold:    matchThreshold,
		AmbiguityEpsilon:  ambiguityEpsilon,
		MinEventGap:       minEventGap,
		ShiftCalendarPath: getEnv("SHIFT_CALENDAR_PATH", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Recognition.EmbeddingDim <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive")
	}
	if c.Recognition.MatchThreshold <= 0 {
		return fmt.Errorf("MATCH_THRESHOLD must be positive")
	}
	if c.Recognition.MinEventGap <= 0 {
		return fmt.Errorf("MIN_EVENT_GAP must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
