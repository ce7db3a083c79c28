package llm

import (
	"context"

	"github.com/sandevgo/ailean/internal/config"
	"github.com/sandevgo/ailean/pkg/log"
)

// NewProvider creates the completion gateway described by cfg.
func NewProvider(ctx context.Context, cfg *config.AppConfig) *Ollama {
	log.FromCtx(ctx).Debug().
		Str("base_url", cfg.OllamaBaseURL).
		Str("model", cfg.Model).
		Dur("timeout", cfg.GenerationTimeout).
		Msg("starting ollama gateway")

	return NewOllama(cfg.OllamaBaseURL, cfg.Model)
}
