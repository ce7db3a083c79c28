package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/pkg/log"
)

const (
	DefaultOllamaURL   = "http://127.0.0.1:11434"
	DefaultOllamaModel = "llama3.2:latest"
)

// Ollama talks to the non-streaming /api/generate endpoint.
type Ollama struct {
	baseProvider
}

func NewOllama(baseURL, model string) *Ollama {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	return &Ollama{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), model),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate runs one completion bounded by req.Timeout. An empty req.Model
// falls back to the configured model. All failures are *core.GenerationError.
func (o *Ollama) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := o.generate(ctx, model, req.Prompt)
	logger := log.FromCtx(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("model", model).Dur("elapsed", time.Since(start)).Msg("generation failed")
		return "", &core.GenerationError{Cause: err}
	}

	logger.Debug().Str("model", model).Dur("elapsed", time.Since(start)).Int("chars", len(text)).Msg("generation completed")
	return text, nil
}

func (o *Ollama) generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := o.doRequest(ctx, http.MethodPost, "/api/generate", generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result generateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if result.Error != "" {
		return "", errors.New(result.Error)
	}

	text := strings.TrimSpace(result.Response)
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

// Models lists the locally available models via /api/tags.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	resp, err := o.doRequest(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	models := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		models = append(models, m.Name)
	}
	return models, nil
}

// Model returns the model used when a request does not name one.
func (o *Ollama) Model() string {
	return o.model
}
