package config

import (
	"os"
	"strconv"

	"autoviz/internal/classify"
	"autoviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds optional Postgres row-source settings. Only required
// when rows are sourced from a database.
type DatabaseConfig struct {
	URL string
}

// AnalysisConfig carries the classification heuristics, overridable from the
// environment so tuning does not require a rebuild.
type AnalysisConfig struct {
	Heuristics classify.Heuristics
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Analysis: loadAnalysisConfig(),
	}

	if config.Server.Port == "" {
		return nil, errors.ConfigInvalid("server port cannot be empty")
	}
	return config, nil
}

func loadAnalysisConfig() AnalysisConfig {
	h := classify.DefaultHeuristics()
	h.SampleSize = getEnvIntOrDefault("ANALYSIS_SAMPLE_SIZE", h.SampleSize)
	h.MetricUniqueCutoff = getEnvIntOrDefault("ANALYSIS_METRIC_UNIQUE_CUTOFF", h.MetricUniqueCutoff)
	h.SelectMaxUnique = getEnvIntOrDefault("ANALYSIS_SELECT_MAX_UNIQUE", h.SelectMaxUnique)
	h.TopValueCount = getEnvIntOrDefault("ANALYSIS_TOP_VALUE_COUNT", h.TopValueCount)
	h.NumericRatio = getEnvFloatOrDefault("ANALYSIS_NUMERIC_RATIO", h.NumericRatio)
	h.IdentifierUniqueRatio = getEnvFloatOrDefault("ANALYSIS_IDENTIFIER_RATIO", h.IdentifierUniqueRatio)
	return AnalysisConfig{Heuristics: h}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
