// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sympatico/pkg/types"
)

func testRequest() CompletionRequest {
	return CompletionRequest{
		Model:       "gpt-4",
		Messages:    []Message{{Role: "user", Content: "hello"}},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	var gotBody chatRequest
	var gotAuth, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"**Overview** text"}}]}`)
	}))
	defer ts.Close()

	c := &OpenAIClient{APIKey: "sk-test", BaseURL: ts.URL + "/v1/", Client: ts.Client()}
	got, err := c.Complete(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "**Overview** text", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "gpt-4", gotBody.Model)
	assert.Equal(t, 0.5, gotBody.Temperature)
	assert.Equal(t, 1800, gotBody.MaxTokens)
	assert.Equal(t, []chatMessage{{Role: "user", Content: "hello"}}, gotBody.Messages)
}

func TestOpenAIClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"provider error message", http.StatusTooManyRequests, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`, "rate limited"},
		{"non-200 without error body", http.StatusBadGateway, `upstream down`, "OpenAI API returned 502: upstream down"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "OpenAI API returned no choices"},
		{"malformed json", http.StatusOK, `{"choices":`, "decoding OpenAI response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			c := &OpenAIClient{APIKey: "sk-test", BaseURL: ts.URL, Client: ts.Client()}
			_, err := c.Complete(context.Background(), testRequest())
			require.Error(t, err)
			if tt.name == "provider error message" {
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenAIClientMissingKey(t *testing.T) {
	c := &OpenAIClient{BaseURL: "http://unused"}
	_, err := c.Complete(context.Background(), testRequest())
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestGeneratorWithOpenAIClientSurfacesProviderMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer ts.Close()

	g := NewGenerator(&OpenAIClient{APIKey: "sk-test", BaseURL: ts.URL, Client: ts.Client()}, nil)
	assert.Equal(t, "Error: rate limited", g.Generate(context.Background(), "bronchiolitis", types.ModelGPT4))
}
