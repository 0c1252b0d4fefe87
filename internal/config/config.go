package config

import (
	"os"
	"strconv"

	"reportgen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port     string
	LogLevel string
}

// StorageConfig holds the upload/export filesystem settings
type StorageConfig struct {
	UploadDir   string
	ExportDir   string
	MaxFileSize int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:     getEnvOrDefault("PORT", "8080"),
			LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
		Storage: StorageConfig{
			UploadDir:   getEnvOrDefault("UPLOAD_DIR", "uploads"),
			ExportDir:   getEnvOrDefault("EXPORT_DIR", "exports"),
			MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 10485760), // 10MB
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// EnsureDirs creates the upload and export directories if they are missing
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.Storage.UploadDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create upload directory")
	}
	if err := os.MkdirAll(c.Storage.ExportDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create export directory")
	}
	return nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Storage.UploadDir == "" {
		return errors.ConfigInvalid("upload directory is required")
	}
	if config.Storage.ExportDir == "" {
		return errors.ConfigInvalid("export directory is required")
	}
	if config.Storage.MaxFileSize <= 0 {
		return errors.ConfigInvalid("max file size must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
