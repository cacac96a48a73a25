// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Model names the language-model backend used for overview generation.
type Model string

const (
	ModelGPT4       Model = "gpt-4"
	ModelGPT35Turbo Model = "gpt-3.5-turbo"
)

// DefaultModel is used when no model is configured.
const DefaultModel = ModelGPT4

// Models lists the supported selectors in display order.
func Models() []Model {
	return []Model{ModelGPT4, ModelGPT35Turbo}
}

// Valid reports whether m is one of the supported selectors.
func (m Model) Valid() bool {
	for _, known := range Models() {
		if m == known {
			return true
		}
	}
	return false
}

// ParseModel converts a user-supplied name into a Model. Matching ignores
// surrounding whitespace and case.
func ParseModel(s string) (Model, error) {
	m := Model(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		names := make([]string, 0, len(Models()))
		for _, known := range Models() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("unsupported model %q: use one of %s", s, strings.Join(names, ", "))
	}
	return m, nil
}

// OverviewResult is the record assembled for one "Condition Overview" action.
// The presentation layer renders Overview on one tab and the two reference
// lookups on another.
type OverviewResult struct {
	Condition  string           `json:"condition" yaml:"condition"`
	Model      Model            `json:"model" yaml:"model"`
	Overview   string           `json:"overview" yaml:"overview"`
	Guidelines Lookup[string]   `json:"guidelines" yaml:"guidelines"`
	Citations  Lookup[Citation] `json:"citations" yaml:"citations"`
}

// EmptyOverviewResult is returned for blank input: no text and no references.
func EmptyOverviewResult(model Model) OverviewResult {
	return OverviewResult{
		Model:      model,
		Guidelines: Found[string](nil),
		Citations:  Found[Citation](nil),
	}
}
