package gismcp

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the tool configuration
type Config struct {
	Paths       PathsConfig
	Engineering EngineeringConfig
}

// PathsConfig represents file system paths
type PathsConfig struct {
	DataDir   string // Where KML/KMZ files are located
	TempDir   string // Temporary working directory (KMZ extraction)
	OutputDir string // Where converted GeoJSON output is written
}

// EngineeringConfig holds default engineering parameters applied when a
// caller does not supply them explicitly.
type EngineeringConfig struct {
	ROWWidthMeters     float64
	MinClearanceMeters float64
	TypicalSpanMeters  float64
	MinSpanMeters      float64
	MaxSpanMeters      float64
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig(envPath string) (*Config, error) {
	// Prefer .env.local over .env (like Next.js)
	// This allows local development configuration to override production config
	localEnvPath := strings.TrimSuffix(envPath, ".env") + ".env.local"
	if _, err := os.Stat(localEnvPath); err == nil {
		if err := loadEnvFile(localEnvPath); err != nil {
			return nil, fmt.Errorf("failed to load local env file: %w", err)
		}
	} else if _, err := os.Stat(envPath); err == nil {
		// Fall back to regular .env file if .env.local doesn't exist
		if err := loadEnvFile(envPath); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	spans := DefaultSpanConstraints()

	cfg := &Config{
		Paths: PathsConfig{
			DataDir:   getEnv("KML_DATA_DIR", "./data"),
			TempDir:   getEnv("TEMP_DIR", os.TempDir()),
			OutputDir: getEnv("OUTPUT_DIR", "./output"),
		},
		Engineering: EngineeringConfig{
			ROWWidthMeters:     getEnvFloat("ROW_WIDTH_METERS", 30.0),
			MinClearanceMeters: getEnvFloat("MIN_CLEARANCE_METERS", 7.0),
			TypicalSpanMeters:  getEnvFloat("TYPICAL_SPAN_METERS", spans.TypicalSpanMeters),
			MinSpanMeters:      getEnvFloat("MIN_SPAN_METERS", spans.MinSpanMeters),
			MaxSpanMeters:      getEnvFloat("MAX_SPAN_METERS", spans.MaxSpanMeters),
		},
	}

	if cfg.Engineering.ROWWidthMeters <= 0 {
		return nil, fmt.Errorf("ROW_WIDTH_METERS must be positive")
	}
	if cfg.Engineering.MinSpanMeters <= 0 || cfg.Engineering.MaxSpanMeters < cfg.Engineering.MinSpanMeters {
		return nil, fmt.Errorf("span bounds must satisfy 0 < MIN_SPAN_METERS <= MAX_SPAN_METERS")
	}

	return cfg, nil
}

// SpanConstraints returns the configured span constraints.
func (c *Config) SpanConstraints() SpanConstraints {
	return SpanConstraints{
		TypicalSpanMeters: c.Engineering.TypicalSpanMeters,
		MinSpanMeters:     c.Engineering.MinSpanMeters,
		MaxSpanMeters:     c.Engineering.MaxSpanMeters,
	}
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Simple env file parsing - split by newlines and set env vars
	lines := strings.Split(string(content), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Split by = and set environment variable
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			os.Setenv(key, value)
		}
	}

	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// getEnvFloat gets an environment variable as float with a default value
func getEnvFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
