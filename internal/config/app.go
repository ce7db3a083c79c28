package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	RuntimePath  string `env:"AILEAN_RUNTIME_PATH" envDefault:".ailean"`
	DatabaseFile string `env:"AILEAN_DATABASE_FILE" envDefault:"military_manuals.db"`

	// Completion gateway
	OllamaBaseURL      string        `env:"AILEAN_OLLAMA_BASE_URL,notEmpty" envDefault:"http://127.0.0.1:11434"`
	Model              string        `env:"AILEAN_MODEL,notEmpty" envDefault:"llama3.2:latest"`
	GenerationTimeout  time.Duration `env:"AILEAN_GENERATION_TIMEOUT" envDefault:"30s"`
	HealthCheckRetries int           `env:"AILEAN_HEALTHCHECK_RETRIES" envDefault:"2"`

	// Number of past turns rendered into each prompt
	HistoryWindow int `env:"AILEAN_HISTORY_WINDOW" envDefault:"3"`
}

// LoadAppConfig parses and validates the environment.
func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.GenerationTimeout <= 0 {
		return nil, fmt.Errorf("AILEAN_GENERATION_TIMEOUT must be positive, got %s", c.GenerationTimeout)
	}
	if c.HistoryWindow < 0 {
		return nil, fmt.Errorf("AILEAN_HISTORY_WINDOW must not be negative, got %d", c.HistoryWindow)
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(c.RuntimePath, c.DatabaseFile)
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetInboxPath() string {
	return filepath.Join(c.RuntimePath, "inbox")
}
