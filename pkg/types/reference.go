// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the sympatico pipeline:
// the model selector, reference lookups, the assembled overview record, and
// the configuration tree read by the CLI.
package types

// Citation is one PubMed reference as shown on the References tab.
type Citation struct {
	// Title is the article title. Empty when the record carries no title.
	Title string `json:"title" yaml:"title"`

	// Link is the canonical PubMed URL (https://pubmed.ncbi.nlm.nih.gov/<pmid>).
	Link string `json:"link" yaml:"link"`
}

// Lookup is the outcome of a best-effort reference lookup. Items holds the
// results in upstream relevance order and is never nil. Unavailable is set
// when the lookup itself failed, as opposed to succeeding with no matches;
// callers that do not care about the distinction only read Items.
type Lookup[T any] struct {
	Items       []T  `json:"items" yaml:"items"`
	Unavailable bool `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
}

// Found wraps items as a successful lookup. A nil slice becomes empty.
func Found[T any](items []T) Lookup[T] {
	if items == nil {
		items = []T{}
	}
	return Lookup[T]{Items: items}
}

// Unavailable returns the failed-lookup outcome with no items.
func Unavailable[T any]() Lookup[T] {
	return Lookup[T]{Items: []T{}, Unavailable: true}
}

// IsEmpty reports whether the lookup produced nothing to show.
func (l Lookup[T]) IsEmpty() bool {
	return len(l.Items) == 0
}
