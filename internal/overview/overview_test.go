// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sympatico/pkg/types"
)

// fakeService records requests and returns a fixed reply or error.
type fakeService struct {
	reply    string
	err      error
	requests []CompletionRequest
}

func (f *fakeService) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func TestRenderPrompt(t *testing.T) {
	prompt, err := renderPrompt("nephrotic syndrome")
	require.NoError(t, err)

	assert.Contains(t, prompt, "paediatric condition: **nephrotic syndrome**")
	for _, section := range Sections {
		assert.Contains(t, prompt, "**"+section+"**", "prompt should request section %q", section)
	}
	assert.Len(t, Sections, 8)
}

func TestGenerateSendsFixedRequest(t *testing.T) {
	svc := &fakeService{reply: "**Overview** – ..."}
	g := NewGenerator(svc, nil)

	got := g.Generate(context.Background(), "croup", types.ModelGPT35Turbo)
	assert.Equal(t, "**Overview** – ...", got)

	require.Len(t, svc.requests, 1)
	req := svc.requests[0]
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Equal(t, 0.5, req.Temperature)
	assert.Equal(t, 1800, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "**croup**")
}

func TestGenerateReturnsTextVerbatim(t *testing.T) {
	reply := "  \n**Overview**\nNo sections validated here.\n\n"
	g := NewGenerator(&fakeService{reply: reply}, nil)

	assert.Equal(t, reply, g.Generate(context.Background(), "croup", types.ModelGPT4))
}

func TestGenerateSurfacesServiceError(t *testing.T) {
	g := NewGenerator(&fakeService{err: errors.New("rate limited")}, nil)

	assert.Equal(t, "Error: rate limited", g.Generate(context.Background(), "bronchiolitis", types.ModelGPT4))
}

func TestGenerateRejectsUnknownModel(t *testing.T) {
	svc := &fakeService{reply: "unused"}
	g := NewGenerator(svc, nil)

	got := g.Generate(context.Background(), "bronchiolitis", types.Model("gpt-5"))
	assert.True(t, strings.HasPrefix(got, ErrorPrefix))
	assert.Contains(t, got, "unsupported model")
	assert.Empty(t, svc.requests)
}

func TestGenerateWithoutService(t *testing.T) {
	g := NewGenerator(nil, nil)
	assert.Equal(t, "Error: no completion service configured",
		g.Generate(context.Background(), "bronchiolitis", types.ModelGPT4))
}

func TestGenerateIsIdempotent(t *testing.T) {
	g := NewGenerator(&fakeService{reply: "fixed"}, nil)

	first := g.Generate(context.Background(), "bronchiolitis", types.ModelGPT4)
	second := g.Generate(context.Background(), "bronchiolitis", types.ModelGPT4)
	assert.Equal(t, first, second)
}
