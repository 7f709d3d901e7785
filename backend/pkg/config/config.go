package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// Graph source kinds
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceNeo4j = "neo4j"
)

// Config holds all application configuration
type Config struct {
	// App
	Port      string
	Env       string
	LogLevel  string // empty keeps the Env default
	StaticDir string

	// Graph document
	GraphSource      string // file, http or neo4j
	GraphPath        string
	GraphURL         string
	GraphLoadTimeout time.Duration

	// Neo4j (only read when GraphSource is neo4j, or by the seed command)
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Interaction
	SearchDebounce time.Duration
	SessionTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", ""),
		StaticDir:        getEnv("STATIC_DIR", "web"),
		GraphSource:      getEnv("GRAPH_SOURCE", SourceFile),
		GraphPath:        getEnv("GRAPH_PATH", "data/graph.json"),
		GraphURL:         getEnv("GRAPH_URL", ""),
		GraphLoadTimeout: time.Duration(getEnvInt("GRAPH_LOAD_TIMEOUT_SECONDS", 30)) * time.Second,
		Neo4jURI:         getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", "password"),
		SearchDebounce:   time.Duration(getEnvInt("SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond,
		SessionTimeout:   time.Duration(getEnvInt("SESSION_TIMEOUT_MINUTES", 30)) * time.Minute,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return apperrors.NewConfigMissingRequired("PORT")
	}
	switch c.GraphSource {
	case SourceFile:
		if c.GraphPath == "" {
			return apperrors.NewConfigMissingRequired("GRAPH_PATH")
		}
	case SourceHTTP:
		if c.GraphURL == "" {
			return apperrors.NewConfigMissingRequired("GRAPH_URL")
		}
	case SourceNeo4j:
		if err := c.ValidateNeo4j(); err != nil {
			return err
		}
	default:
		return apperrors.NewConfigValidationFailed("GRAPH_SOURCE", fmt.Sprintf("unsupported source %q", c.GraphSource))
	}
	if c.GraphLoadTimeout <= 0 {
		return apperrors.NewConfigValidationFailed("GRAPH_LOAD_TIMEOUT_SECONDS", "must be positive")
	}
	if c.SearchDebounce < 0 {
		return apperrors.NewConfigValidationFailed("SEARCH_DEBOUNCE_MS", "cannot be negative")
	}
	if c.SessionTimeout <= 0 {
		return apperrors.NewConfigValidationFailed("SESSION_TIMEOUT_MINUTES", "must be positive")
	}
	return nil
}

// ValidateNeo4j checks the Neo4j connection settings
func (c *Config) ValidateNeo4j() error {
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
