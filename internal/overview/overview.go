// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overview generates the clinical overview text for a condition by
// sending a fixed prompt to a language-model completion service.
//
// Unlike the reference finders, failures here are surfaced: Generate returns
// "Error: <message>" so the caller can show that the primary content did
// not load.
package overview

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/pkg/types"
)

// Sampling parameters sent with every overview request.
const (
	Temperature = 0.5
	MaxTokens   = 1800
)

// ErrorPrefix starts every failure string returned by Generate.
const ErrorPrefix = "Error: "

// Message is one role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest is what the generator asks of a completion service.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// CompletionService abstracts the language-model API so tests can supply a double.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Generator produces condition overviews.
type Generator struct {
	Service CompletionService
	Log     *zap.Logger
}

// NewGenerator returns a Generator backed by svc.
func NewGenerator(svc CompletionService, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{Service: svc, Log: log.Named("overview")}
}

// Generate returns the model's overview of condition verbatim, or
// "Error: <message>" if the model selector is unknown or the service fails.
func (g *Generator) Generate(ctx context.Context, condition string, model types.Model) string {
	text, err := g.generate(ctx, condition, model)
	if err != nil {
		g.Log.Error("overview generation failed",
			zap.String("condition", condition), zap.String("model", string(model)), zap.Error(err))
		return ErrorPrefix + err.Error()
	}
	return text
}

func (g *Generator) generate(ctx context.Context, condition string, model types.Model) (string, error) {
	if !model.Valid() {
		return "", fmt.Errorf("unsupported model %q", model)
	}
	if g.Service == nil {
		return "", fmt.Errorf("no completion service configured")
	}

	prompt, err := renderPrompt(condition)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	return g.Service.Complete(ctx, CompletionRequest{
		Model:       string(model),
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
}
