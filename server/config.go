package server

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the studio's runtime configuration.
type Config struct {
	// Gemini API configuration
	GeminiAPIKey  string
	GeminiBaseURL string
	Model         string

	ServerAddress string
	ServerPort    string

	// DownloadDir, when set, enables the per-session operation journal and
	// is the default root for local exports.
	DownloadDir string

	// RequestsPerMinute caps remote calls. Zero disables rate limiting.
	RequestsPerMinute int

	// StorageBackend selects the export destination: "", "local" or "s3".
	StorageBackend string

	// S3 configuration (when StorageBackend is "s3")
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	LogLevel string
}

// LoadConfig loads configuration from a .env file if present, falling back to
// the process environment.
func LoadConfig() (*Config, error) {
	// .env is optional; the process environment is the fallback.
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", ""),
		Model:             getEnv("STUDIO_MODEL", ""),
		ServerAddress:     getEnv("SERVER_ADDRESS", "0.0.0.0"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DownloadDir:       getEnv("DOWNLOAD_DIR", ""),
		RequestsPerMinute: getEnvInt("REQUESTS_PER_MINUTE", 0),
		StorageBackend:    getEnv("STORAGE_BACKEND", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:       getEnv("S3_SECRET_KEY", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	switch cfg.StorageBackend {
	case "", "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND: %s", cfg.StorageBackend)
	}

	return cfg, nil
}

// Addr returns the full listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerAddress, c.ServerPort)
}

// SlogLevel maps the configured log level string to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv returns the environment variable or a default when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	return defaultValue
}
