// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves API credentials. The primary store is a directory
// of plain-text files where the filename is the key name and the trimmed file
// contents are the value; an environment variable is the fallback.
//
// Known keys: openai-api-key (env OPENAI_API_KEY), ncbi-api-key (env NCBI_API_KEY).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultDir is the secrets directory read at startup.
const DefaultDir = ".secrets/"

// Key names and their environment fallbacks.
const (
	OpenAIKey = "openai-api-key"
	OpenAIEnv = "OPENAI_API_KEY"
	NCBIKey   = "ncbi-api-key"
	NCBIEnv   = "NCBI_API_KEY"
)

// Source records where a resolved secret came from.
type Source string

const (
	SourceNone    Source = ""
	SourceStore   Source = "secrets"
	SourceEnviron Source = "env"
)

// Store maps key names to secret values.
type Store map[string]string

// Load reads every regular, non-hidden file in dir into a Store.
// A missing directory is not an error and yields an empty Store. Files that
// cannot be read are skipped with a warning; empty files are ignored.
func Load(dir string, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// Resolve returns the value for name, checking the store first and the
// environment variable envVar second. The returned Source is SourceNone when
// neither has a non-empty value.
func (s Store) Resolve(name, envVar string) (string, Source) {
	if v, ok := s[name]; ok && v != "" {
		return v, SourceStore
	}
	if envVar != "" {
		if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
			return v, SourceEnviron
		}
	}
	return "", SourceNone
}
