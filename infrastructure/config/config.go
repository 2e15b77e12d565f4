// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Persistence selects the record store backing the repository.
const (
	PersistenceDynamoDB = "dynamodb"
	PersistenceMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Persistence backend: dynamodb or memory (local development)
	Persistence string

	// Lambda configuration
	IsLambda bool

	// Catalog behaviour
	CacheTTLSeconds  int
	SearchDebounceMs int

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
	EnableEvents  bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "bookhaven-books"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "bookhaven-events"),

		Persistence: getEnv("PERSISTENCE", PersistenceDynamoDB),

		// Lambda configuration
		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		// Catalog behaviour
		CacheTTLSeconds:  getEnvInt("CACHE_TTL_SECONDS", 30),
		SearchDebounceMs: getEnvInt("SEARCH_DEBOUNCE_MS", 300),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
		EnableEvents:  getEnvBool("ENABLE_EVENTS", false),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.Persistence {
	case PersistenceDynamoDB, PersistenceMemory:
	default:
		return fmt.Errorf("PERSISTENCE must be %q or %q, got %q",
			PersistenceDynamoDB, PersistenceMemory, c.Persistence)
	}

	if c.SearchDebounceMs < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must not be negative")
	}

	if c.Environment == "production" {
		if c.Persistence != PersistenceDynamoDB {
			return fmt.Errorf("PERSISTENCE must be dynamodb in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.EnableEvents && c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required when events are enabled")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
