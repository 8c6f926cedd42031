package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.OllamaModel)
	assert.Equal(t, "http://127.0.0.1:11434", cfg.OllamaServerURL)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("OLLAMA_HOST", "http://ollama:11434")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("IMPORT_MAPPING", "/etc/reclaimit/mapping.yaml")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "llama3", cfg.OllamaModel)
	assert.Equal(t, "http://ollama:11434", cfg.OllamaServerURL)
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, "/etc/reclaimit/mapping.yaml", cfg.MappingPath)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	require.NoError(t, cfg.Validate())

	cfg.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.MaxUploadBytes = 0
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.LLMTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.OllamaModel = "llama3"
	cfg.OllamaServerURL = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadAndValidate(t *testing.T) {
	cfg, err := LoadAndValidate()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
