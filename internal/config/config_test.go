package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dnacount.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".txt", cfg.Suffix)
	assert.False(t, cfg.Recursive)
	assert.Zero(t, cfg.MaxWorkers)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.HistoryDB)
	assert.False(t, cfg.Strict)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
suffix: .seq
recursive: true
max_workers: 8
timeout: 30s
log_level: debug
history_db: /tmp/runs.db
strict: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ".seq", cfg.Suffix)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/runs.db", cfg.HistoryDB)
	assert.True(t, cfg.Strict)
}

func TestLoadConfig_PartialMergesDefaults(t *testing.T) {
	path := writeConfig(t, "max_workers: 2\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxWorkers)
	assert.Equal(t, ".txt", cfg.Suffix)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "suffix: [unclosed", wantErr: "failed to parse config file"},
		{name: "bad timeout", content: "timeout: soon", wantErr: "invalid timeout format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "suffix without dot", mutate: func(c *Config) { c.Suffix = "txt" }, wantErr: "suffix"},
		{name: "bare dot suffix", mutate: func(c *Config) { c.Suffix = "." }, wantErr: "suffix"},
		{name: "negative workers", mutate: func(c *Config) { c.MaxWorkers = -1 }, wantErr: "max_workers"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: "timeout"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
