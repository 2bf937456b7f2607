package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":50051", cfg.GRPC.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Parser.BatchConcurrency)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.MaxConcurrency)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
grpc:
  addr: ":6000"
log:
  level: debug
  format: json
parser:
  batch_concurrency: 2
llm:
  enabled: true
  base_url: http://localhost:11434/v1
  model: llama3.1
  timeout: 5s
`), 0o600))
	t.Setenv("SUBSCAN_GRPC_ADDR", ":7000")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.GRPC.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Parser.BatchConcurrency)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama3.1", cfg.LLM.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		GRPC:   GRPCConfig{Addr: ":1"},
		Parser: ParserConfig{BatchConcurrency: 1},
		LLM:    LLMConfig{Model: "m", MaxConcurrency: 1},
	}
	require.NoError(t, base.Validate())

	noKey := base
	noKey.LLM.Enabled = true
	assert.ErrorIs(t, noKey.Validate(), ErrInvalidConfig)

	ollama := noKey
	ollama.LLM.BaseURL = "http://localhost:11434/v1"
	assert.NoError(t, ollama.Validate())

	zeroBatch := base
	zeroBatch.Parser.BatchConcurrency = 0
	assert.ErrorIs(t, zeroBatch.Validate(), ErrInvalidConfig)
}
