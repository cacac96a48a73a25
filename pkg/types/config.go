// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// GuidelineConfig holds settings for the guideline link finder.
type GuidelineConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Domain is the trusted guideline site used in the site: filter (e.g. "rch.org.au").
	Domain string `json:"domain" yaml:"domain" mapstructure:"domain"`

	// Host is the exact host a result link must point at (e.g. "www.rch.org.au").
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// SearchURL is the HTML search endpoint queried with ?q=.
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// MaxResults is the number of guideline links to keep (default 1).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PubMedConfig holds settings for the PubMed citation finder.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities root (esearch.fcgi and efetch.fcgi live beneath it).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxResults is the number of citations to keep (default 3).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// APIKey is an optional NCBI API key for higher request allowances.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email and Tool identify the caller to NCBI as its usage policy asks.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`
}

// AIConfig holds settings for the language-model completion service.
type AIConfig struct {
	// Model is the default model selector (e.g. "gpt-4").
	Model Model `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL is the OpenAI-compatible API root (default https://api.openai.com/v1).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey is the authentication key for the completion API. Never serialised.
	APIKey string `json:"-" yaml:"-" mapstructure:"-"`

	// Timeout bounds one completion request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig selects the zap level ("debug", "info", "warn", "error") and
// encoder ("console" or "json").
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups all component configurations.
type Config struct {
	AI        AIConfig        `json:"openai" yaml:"openai" mapstructure:"openai"`
	Guideline GuidelineConfig `json:"guideline" yaml:"guideline" mapstructure:"guideline"`
	PubMed    PubMedConfig    `json:"pubmed" yaml:"pubmed" mapstructure:"pubmed"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Serve     ServeConfig     `json:"serve" yaml:"serve" mapstructure:"serve"`
}

// Default values used when neither the config file nor the environment sets a key.
const (
	DefaultTimeout            = 30 * time.Second
	DefaultCompletionTimeout  = 120 * time.Second
	DefaultBrowserUserAgent   = "Mozilla/5.0"
	DefaultUserAgent          = "sympatico/0.1"
	DefaultGuidelineDomain    = "rch.org.au"
	DefaultGuidelineHost      = "www.rch.org.au"
	DefaultGuidelineSearchURL = "https://html.duckduckgo.com/html/"
	DefaultGuidelineResults   = 1
	DefaultPubMedBaseURL      = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultPubMedResults      = 3
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultServeAddr          = ":8080"
)

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		AI: AIConfig{
			Model:   DefaultModel,
			BaseURL: DefaultOpenAIBaseURL,
			Timeout: DefaultCompletionTimeout,
		},
		Guideline: GuidelineConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultBrowserUserAgent,
			},
			Domain:     DefaultGuidelineDomain,
			Host:       DefaultGuidelineHost,
			SearchURL:  DefaultGuidelineSearchURL,
			MaxResults: DefaultGuidelineResults,
		},
		PubMed: PubMedConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			BaseURL:    DefaultPubMedBaseURL,
			MaxResults: DefaultPubMedResults,
			Tool:       "sympatico",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
	}
}
