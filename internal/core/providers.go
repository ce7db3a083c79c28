package core

import (
	"context"
	"time"
)

type GenerationRequest struct {
	Model   string
	Prompt  string
	Timeout time.Duration
}

// CompletionGateway is an opaque, fallible text-completion service.
// Every failure is reported as a *GenerationError.
type CompletionGateway interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
