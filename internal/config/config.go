// Package config provides environment-based configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds the settings of the HTTP API process.
type ServerConfig struct {
	Port        string
	DatabaseURL string

	GeminiAPIKey    string
	GeminiModel     string
	AnalysisTimeout time.Duration

	MaxResumeBytes       int64
	AllowedResumeTypes   []string
	ReanalyzeConcurrency int

	LogLevel  string
	LogFormat string
}

// NewServerConfig creates the server configuration from environment
// variables. PORT defaults to 8080; DATABASE_URL and GEMINI_API_KEY are
// required.
func NewServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	cfg := &ServerConfig{
		Port:               envOr("PORT", "8080"),
		DatabaseURL:        databaseURL,
		GeminiAPIKey:       apiKey,
		GeminiModel:        envOr("GEMINI_MODEL", "gemini-2.5-flash"),
		AllowedResumeTypes: splitList(envOr("ALLOWED_RESUME_TYPES", "pdf,docx,txt,html")),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFormat:          envOr("LOG_FORMAT", "json"),
	}

	timeoutSecs, err := envInt("ANALYSIS_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.AnalysisTimeout = time.Duration(timeoutSecs) * time.Second

	maxMB, err := envInt("MAX_RESUME_SIZE_MB", 5)
	if err != nil {
		return nil, err
	}
	cfg.MaxResumeBytes = int64(maxMB) * 1024 * 1024

	cfg.ReanalyzeConcurrency, err = envInt("REANALYZE_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.AnalysisTimeout < time.Second {
		return fmt.Errorf("ANALYSIS_TIMEOUT_SECONDS must be at least 1, got: %s", c.AnalysisTimeout)
	}
	if c.MaxResumeBytes < 1 {
		return fmt.Errorf("MAX_RESUME_SIZE_MB must be at least 1")
	}
	if c.ReanalyzeConcurrency < 1 {
		return fmt.Errorf("REANALYZE_CONCURRENCY must be at least 1, got: %d", c.ReanalyzeConcurrency)
	}
	if len(c.AllowedResumeTypes) == 0 {
		return fmt.Errorf("ALLOWED_RESUME_TYPES cannot be empty")
	}
	return nil
}

// StorageConfig holds the object-storage settings for resume files.
type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// NewStorageConfig creates the storage configuration from environment
// variables. STORAGE_ACCESS_KEY, STORAGE_SECRET_KEY, and STORAGE_BUCKET are
// required.
func NewStorageConfig() (*StorageConfig, error) {
	cfg := &StorageConfig{
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		Region:    envOr("STORAGE_REGION", "auto"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
	}
	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("STORAGE_ACCESS_KEY is required but not set")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("STORAGE_SECRET_KEY is required but not set")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("STORAGE_BUCKET is required but not set")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(p)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
