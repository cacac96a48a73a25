// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/internal/secrets"
	"github.com/pdiddy/sympatico/pkg/types"
)

func newViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	bindEnv(v)
	if yaml != "" {
		path := filepath.Join(t.TempDir(), "sympatico.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())
	}
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig(newViper(t, ""))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestLoadConfigFile(t *testing.T) {
	v := newViper(t, `
openai:
  model: gpt-3.5-turbo
  timeout: 45s
guideline:
  max_results: 2
  user_agent: Mozilla/5.0 (X11)
pubmed:
  email: dev@example.org
log:
  format: json
`)

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.ModelGPT35Turbo, c.AI.Model)
	assert.Equal(t, 45*time.Second, c.AI.Timeout)
	assert.Equal(t, 2, c.Guideline.MaxResults)
	assert.Equal(t, "Mozilla/5.0 (X11)", c.Guideline.UserAgent)
	assert.Equal(t, "dev@example.org", c.PubMed.Email)
	assert.Equal(t, "json", c.Log.Format)

	// Untouched keys keep their defaults.
	assert.Equal(t, types.DefaultGuidelineHost, c.Guideline.Host)
	assert.Equal(t, types.DefaultPubMedResults, c.PubMed.MaxResults)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("SYMPATICO_PUBMED_MAX_RESULTS", "5")
	t.Setenv("SYMPATICO_SERVE_ADDR", ":9090")

	c, err := loadConfig(newViper(t, "pubmed:\n  max_results: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, c.PubMed.MaxResults)
	assert.Equal(t, ":9090", c.Serve.Addr)
}

func TestLoadConfigRejectsUnknownModel(t *testing.T) {
	_, err := loadConfig(newViper(t, "openai:\n  model: claude\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai.model")
}

func TestApplySecrets(t *testing.T) {
	t.Run("store wins over environment", func(t *testing.T) {
		t.Setenv(secrets.OpenAIEnv, "env-key")
		c := types.DefaultConfig()
		applySecrets(&c, secrets.Store{secrets.OpenAIKey: "file-key"}, zap.NewNop())
		assert.Equal(t, "file-key", c.AI.APIKey)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv(secrets.OpenAIEnv, "env-key")
		t.Setenv(secrets.NCBIEnv, "ncbi-env")
		c := types.DefaultConfig()
		applySecrets(&c, secrets.Store{}, zap.NewNop())
		assert.Equal(t, "env-key", c.AI.APIKey)
		assert.Equal(t, "ncbi-env", c.PubMed.APIKey)
	})

	t.Run("configured NCBI key is kept", func(t *testing.T) {
		t.Setenv(secrets.NCBIEnv, "ncbi-env")
		c := types.DefaultConfig()
		c.PubMed.APIKey = "from-config"
		applySecrets(&c, secrets.Store{secrets.NCBIKey: "ncbi-file"}, zap.NewNop())
		assert.Equal(t, "from-config", c.PubMed.APIKey)
	})

	t.Run("missing key leaves it empty", func(t *testing.T) {
		t.Setenv(secrets.OpenAIEnv, "")
		c := types.DefaultConfig()
		applySecrets(&c, secrets.Store{}, zap.NewNop())
		assert.Empty(t, c.AI.APIKey)
	})
}

func TestResolveModel(t *testing.T) {
	c := types.DefaultConfig()

	m, err := resolveModel("", c)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultModel, m)

	m, err = resolveModel("GPT-3.5-Turbo", c)
	require.NoError(t, err)
	assert.Equal(t, types.ModelGPT35Turbo, m)

	_, err = resolveModel("davinci", c)
	assert.Error(t, err)
}

func TestBuildPipelineUsesConfiguredCounts(t *testing.T) {
	c := types.DefaultConfig()
	c.Guideline.MaxResults = 2
	c.PubMed.MaxResults = 5

	p := buildPipeline(c, zap.NewNop())
	assert.Equal(t, 2, p.MaxGuidelines)
	assert.Equal(t, 5, p.MaxCitations)
	assert.NotNil(t, p.Overview)
	assert.NotNil(t, p.Guidelines)
	assert.NotNil(t, p.Citations)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		loaded, err := loadDotEnv(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.False(t, loaded)
	})

	t.Run("sets unset variables only", func(t *testing.T) {
		// Register cleanups so the process environment is restored.
		t.Setenv("SYMPATICO_DOTENV_NEW", "")
		require.NoError(t, os.Unsetenv("SYMPATICO_DOTENV_NEW"))
		t.Setenv("SYMPATICO_DOTENV_SET", "from-shell")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("SYMPATICO_DOTENV_NEW=from-file\nSYMPATICO_DOTENV_SET=from-file\n"), 0o644))

		loaded, err := loadDotEnv(path)
		require.NoError(t, err)
		assert.True(t, loaded)
		assert.Equal(t, "from-file", os.Getenv("SYMPATICO_DOTENV_NEW"))
		assert.Equal(t, "from-shell", os.Getenv("SYMPATICO_DOTENV_SET"))
	})
}
