// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/internal/guideline"
	"github.com/pdiddy/sympatico/internal/overview"
	"github.com/pdiddy/sympatico/internal/pipeline"
	"github.com/pdiddy/sympatico/internal/pubmed"
	"github.com/pdiddy/sympatico/internal/secrets"
	"github.com/pdiddy/sympatico/pkg/types"
)

// dotEnvFile is read into the environment at startup when present.
const dotEnvFile = ".env"

// loadDotEnv loads KEY=value pairs from path without overriding variables
// already set. A missing file is not an error.
func loadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("loading %s: %w", path, err)
	}
	return true, nil
}

// bindEnv maps SYMPATICO_-prefixed environment variables onto config keys,
// with "." in a key becoming "_" (SYMPATICO_PUBMED_MAX_RESULTS).
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("SYMPATICO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every config key with viper so that environment
// variables are picked up by Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("openai.model", string(d.AI.Model))
	v.SetDefault("openai.base_url", d.AI.BaseURL)
	v.SetDefault("openai.timeout", d.AI.Timeout)

	v.SetDefault("guideline.timeout", d.Guideline.Timeout)
	v.SetDefault("guideline.user_agent", d.Guideline.UserAgent)
	v.SetDefault("guideline.domain", d.Guideline.Domain)
	v.SetDefault("guideline.host", d.Guideline.Host)
	v.SetDefault("guideline.search_url", d.Guideline.SearchURL)
	v.SetDefault("guideline.max_results", d.Guideline.MaxResults)

	v.SetDefault("pubmed.timeout", d.PubMed.Timeout)
	v.SetDefault("pubmed.user_agent", d.PubMed.UserAgent)
	v.SetDefault("pubmed.base_url", d.PubMed.BaseURL)
	v.SetDefault("pubmed.max_results", d.PubMed.MaxResults)
	v.SetDefault("pubmed.email", d.PubMed.Email)
	v.SetDefault("pubmed.tool", d.PubMed.Tool)
	v.SetDefault("pubmed.api_key", d.PubMed.APIKey)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("serve.addr", d.Serve.Addr)
}

// loadConfig resolves the configuration from defaults, the config file and
// the environment, in increasing order of precedence.
func loadConfig(v *viper.Viper) (types.Config, error) {
	setDefaults(v)

	c := types.DefaultConfig()
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if _, err := types.ParseModel(string(c.AI.Model)); err != nil {
		return types.Config{}, fmt.Errorf("openai.model: %w", err)
	}
	return c, nil
}

// applySecrets fills the API keys from the secrets store or the environment.
// An NCBI key set in configuration wins over both.
func applySecrets(c *types.Config, s secrets.Store, log *zap.Logger) {
	key, src := s.Resolve(secrets.OpenAIKey, secrets.OpenAIEnv)
	c.AI.APIKey = key
	if src == secrets.SourceNone {
		log.Warn("no OpenAI API key found; overviews will report an error",
			zap.String("secret", secrets.DefaultDir+secrets.OpenAIKey),
			zap.String("env", secrets.OpenAIEnv))
	} else {
		log.Debug("resolved OpenAI API key", zap.String("source", string(src)))
	}

	if c.PubMed.APIKey == "" {
		c.PubMed.APIKey, _ = s.Resolve(secrets.NCBIKey, secrets.NCBIEnv)
	}
}

// resolveModel returns the model named by flag, or the configured default
// when flag is empty.
func resolveModel(flag string, c types.Config) (types.Model, error) {
	if flag == "" {
		return c.AI.Model, nil
	}
	return types.ParseModel(flag)
}

// buildPipeline wires the three producers from c. Each producer gets its own
// HTTP client so its timeout can be tuned independently.
func buildPipeline(c types.Config, log *zap.Logger) *pipeline.Pipeline {
	completions := &overview.OpenAIClient{
		APIKey:  c.AI.APIKey,
		BaseURL: c.AI.BaseURL,
		Client:  &http.Client{Timeout: c.AI.Timeout},
	}

	p := pipeline.New(
		overview.NewGenerator(completions, log),
		guideline.NewFinder(&http.Client{Timeout: c.Guideline.Timeout}, c.Guideline, log),
		pubmed.NewFinder(&http.Client{Timeout: c.PubMed.Timeout}, c.PubMed, log),
		log,
	)
	if c.Guideline.MaxResults > 0 {
		p.MaxGuidelines = c.Guideline.MaxResults
	}
	if c.PubMed.MaxResults > 0 {
		p.MaxCitations = c.PubMed.MaxResults
	}
	return p
}
