package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr            string
	OllamaModel     string
	OllamaServerURL string
	LLMTimeout      time.Duration
	MaxUploadBytes  int64
	MappingPath     string
}

func Load() *Config {
	config := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		OllamaModel:     os.Getenv("OLLAMA_MODEL"), // empty disables the LLM path
		OllamaServerURL: getEnv("OLLAMA_HOST", "http://127.0.0.1:11434"),
		LLMTimeout:      30 * time.Second,
		MaxUploadBytes:  20 << 20, // 20 MB
		MappingPath:     getEnv("IMPORT_MAPPING", ""),
	}

	if timeoutStr := os.Getenv("LLM_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.LLMTimeout = timeout
		}
	}

	if maxStr := os.Getenv("MAX_UPLOAD_BYTES"); maxStr != "" {
		if v, err := strconv.ParseInt(maxStr, 10, 64); err == nil && v > 0 {
			config.MaxUploadBytes = v
		}
	}

	return config
}

// Validate checks the configuration for obviously broken values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLMTimeout)
	}
	if c.OllamaModel != "" && c.OllamaServerURL == "" {
		return fmt.Errorf("OLLAMA_HOST must be set when OLLAMA_MODEL is set")
	}
	return nil
}

// LoadAndValidate loads the configuration and validates it in one step.
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
