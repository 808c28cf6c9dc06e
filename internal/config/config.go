package config

import (
	"os"
	"time"

	"auditkit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Admin   AdminConfig
	Sync    SyncConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// StorageConfig holds persistence settings
type StorageConfig struct {
	DatabasePath string
	TemplatePath string
}

// AdminConfig holds the administrative gate settings. Single password,
// single role; this is not a multi-user system.
type AdminConfig struct {
	Password   string
	SessionTTL time.Duration
}

// SyncConfig holds defaults for the remote sync client
type SyncConfig struct {
	RequestTimeout time.Duration
	APIBaseURL     string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Storage: StorageConfig{
			DatabasePath: getEnvOrDefault("AUDIT_DB_PATH", "auditkit.db"),
			TemplatePath: getEnvOrDefault("AUDIT_TEMPLATE_PATH", ""),
		},
		Admin: AdminConfig{
			Password:   os.Getenv("ADMIN_PASSWORD"),
			SessionTTL: getEnvDurationOrDefault("ADMIN_SESSION_TTL", 12*time.Hour),
		},
		Sync: SyncConfig{
			RequestTimeout: getEnvDurationOrDefault("SYNC_TIMEOUT", 30*time.Second),
			APIBaseURL:     getEnvOrDefault("SYNC_API_BASE_URL", "https://api.github.com"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Admin.Password == "" {
		return errors.ConfigInvalid("ADMIN_PASSWORD is required")
	}
	if config.Storage.DatabasePath == "" {
		return errors.ConfigInvalid("AUDIT_DB_PATH cannot be empty")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
