package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	runtime := t.TempDir()
	t.Setenv("AILEAN_RUNTIME_PATH", runtime)

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, runtime, cfg.GetRuntimePath())
	assert.Equal(t, filepath.Join(runtime, "military_manuals.db"), cfg.GetDatabasePath())
	assert.Equal(t, filepath.Join(runtime, ".env"), cfg.GetEnvPath())
	assert.Equal(t, filepath.Join(runtime, "inbox"), cfg.GetInboxPath())
	assert.Equal(t, filepath.Join(runtime, "input_history"), cfg.GetInputHistoryPath())
	assert.Equal(t, "http://127.0.0.1:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "llama3.2:latest", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 3, cfg.HistoryWindow)
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	runtime := t.TempDir()
	t.Setenv("AILEAN_RUNTIME_PATH", runtime)
	t.Setenv("AILEAN_DATABASE_FILE", "/var/lib/ailean/manuals.db")
	t.Setenv("AILEAN_MODEL", "mistral:7b")
	t.Setenv("AILEAN_GENERATION_TIMEOUT", "45s")
	t.Setenv("AILEAN_HISTORY_WINDOW", "5")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ailean/manuals.db", cfg.GetDatabasePath())
	assert.Equal(t, "mistral:7b", cfg.Model)
	assert.Equal(t, 45*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 5, cfg.HistoryWindow)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero timeout", key: "AILEAN_GENERATION_TIMEOUT", value: "0s"},
		{name: "malformed timeout", key: "AILEAN_GENERATION_TIMEOUT", value: "soon"},
		{name: "negative window", key: "AILEAN_HISTORY_WINDOW", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AILEAN_RUNTIME_PATH", t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := LoadAppConfig()
			assert.Error(t, err)
		})
	}
}

func TestResolveRuntimePath_Relative(t *testing.T) {
	t.Setenv("HOME", "/home/operator")
	assert.Equal(t, "/home/operator/.ailean", resolveRuntimePath(""))
	assert.Equal(t, "/home/operator/manuals", resolveRuntimePath("manuals"))
	assert.Equal(t, "/srv/ailean", resolveRuntimePath("/srv/ailean"))
}
