package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the configuration settings for the relay.
type Config struct {
	AppPort   string `yaml:"app_port"`   // Port on which the relay will run
	BaseURL   string `yaml:"base_url"`   // TETRA CHANNEL API endpoint
	SessionID string `yaml:"session_id"` // Optional X-Session-ID header value
	LogLevel  string `yaml:"log_level"`  // logrus level name
}

// LoadConfig reads configuration from an optional YAML file (path taken
// from TETRA_RELAY_CONFIG) and then from environment variables, which win.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppPort:  "8080",
		LogLevel: "info",
	}

	if path := os.Getenv("TETRA_RELAY_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	cfg.AppPort = getEnv("APP_PORT", cfg.AppPort)
	cfg.BaseURL = getEnv("TETRA_API_URL", cfg.BaseURL)
	cfg.SessionID = getEnv("TETRA_SESSION_ID", cfg.SessionID)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}
