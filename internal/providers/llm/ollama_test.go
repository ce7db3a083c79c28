package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllama_Generate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "AiLEAN/0.1.0", r.UserAgent())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{
			"response": "  Check the firing pin for wear.  ",
			"done":     true,
		})
	}))
	defer server.Close()

	gw := NewOllama(server.URL, "llama3.2:latest")
	reply, err := gw.Generate(context.Background(), core.GenerationRequest{
		Model:   "mistral:7b",
		Prompt:  "my weapon has a failure to fire",
		Timeout: time.Second,
	})

	require.NoError(t, err)
	assert.Equal(t, "Check the firing pin for wear.", reply)
	assert.Equal(t, "mistral:7b", got.Model)
	assert.Equal(t, "my weapon has a failure to fire", got.Prompt)
	assert.False(t, got.Stream)
}

func TestOllama_Generate_DefaultModel(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"response":"ok","done":true}`)
	}))
	defer server.Close()

	_, err := NewOllama(server.URL, "llama3.2:latest").Generate(context.Background(), core.GenerationRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "llama3.2:latest", got.Model)
}

func TestOllama_Generate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErrMsg string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, "model crashed")
			},
			wantErrMsg: "http 500: model crashed",
		},
		{
			name: "model not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"error":"model 'llama3.2:latest' not found"}`)
			},
			wantErrMsg: "http 404",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"response": `)
			},
			wantErrMsg: "decode",
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"error":"out of memory"}`)
			},
			wantErrMsg: "out of memory",
		},
		{
			name: "empty response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"response":"   ","done":true}`)
			},
			wantErrMsg: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewOllama(server.URL, "test").Generate(context.Background(), core.GenerationRequest{
				Prompt:  "p",
				Timeout: time.Second,
			})

			var genErr *core.GenerationError
			require.True(t, errors.As(err, &genErr), "expected GenerationError, got %v", err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestOllama_Generate_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	start := time.Now()
	_, err := NewOllama(server.URL, "test").Generate(context.Background(), core.GenerationRequest{
		Prompt:  "p",
		Timeout: 50 * time.Millisecond,
	})

	var genErr *core.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOllama_Generate_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewOllama(url, "test").Generate(context.Background(), core.GenerationRequest{Prompt: "p", Timeout: time.Second})

	var genErr *core.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, err.Error(), "request")
}

func TestOllama_Models(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		fmt.Fprint(w, `{"models":[{"name":"llama3.2:latest"},{"name":"mistral:7b"}]}`)
	}))
	defer server.Close()

	models, err := NewOllama(server.URL+"/", "").Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:latest", "mistral:7b"}, models)
}

func TestOllama_Defaults(t *testing.T) {
	o := NewOllama("", "")
	assert.Equal(t, DefaultOllamaURL, o.baseURL)
	assert.Equal(t, DefaultOllamaModel, o.Model())
}
