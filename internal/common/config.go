package common

import (
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Extractor ExtractorConfig
	Webhook   WebhookConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// UploadConfig holds temporary file storage configuration
type UploadConfig struct {
	Dir string
}

// ExtractorConfig holds the external extraction-service configuration
type ExtractorConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// WebhookConfig holds failure-notification configuration
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":" + getEnv("PORT", "8000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", os.TempDir()),
		},
		Extractor: ExtractorConfig{
			URL:     getEnv("EXTRACTOR_URL", ""),
			APIKey:  getEnv("EXTRACTOR_API_KEY", ""),
			Timeout: getEnvAsDuration("EXTRACTOR_TIMEOUT", 120*time.Second),
		},
		Webhook: WebhookConfig{
			URL:     getEnv("WEBHOOK_URL", ""),
			Timeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 10*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extractor.URL == "" {
		return NewAppError("CONFIG_ERROR", "EXTRACTOR_URL is required", ErrInvalidInput)
	}
	if c.Webhook.URL == "" {
		return NewAppError("CONFIG_ERROR", "WEBHOOK_URL is required", ErrInvalidInput)
	}
	return nil
}
