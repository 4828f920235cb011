// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the top-level server settings, read from the
// environment. DATABASE_URL and GEMINI_API_KEY are deployment secrets; the
// rest have workable defaults for local development.
type ServerConfig struct {
	Port         int
	DatabaseURL  string
	APIKey       string
	ArtifactsDir string
	UseBrowser   bool
}

// NewServerConfig reads the server configuration from environment variables.
// It reads PORT (default: 8000), DATABASE_URL, GEMINI_API_KEY (required),
// ARTIFACTS_DIR (default: ./artifacts) and USE_BROWSER (default: false).
func NewServerConfig() (*ServerConfig, error) {
	port := 8000
	if portStr := os.Getenv("PORT"); portStr != "" {
		parsed, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = parsed
	}

	useBrowser := false
	if ubStr := os.Getenv("USE_BROWSER"); ubStr != "" {
		parsed, err := strconv.ParseBool(ubStr)
		if err != nil {
			return nil, fmt.Errorf("invalid USE_BROWSER: %v", err)
		}
		useBrowser = parsed
	}

	artifactsDir := os.Getenv("ARTIFACTS_DIR")
	if artifactsDir == "" {
		artifactsDir = "artifacts"
	}

	cfg := &ServerConfig{
		Port:         port,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		ArtifactsDir: artifactsDir,
		UseBrowser:   useBrowser,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}
