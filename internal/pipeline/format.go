// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sympatico/pkg/types"
)

// Messages shown when a reference list is empty or unavailable.
const (
	NoGuidelinesMessage = "No RCH guideline found."
	NoCitationsMessage  = "No PubMed links found."
)

// OverviewMarkdown renders the Overview tab.
func OverviewMarkdown(r types.OverviewResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Condition Overview: %s\n\n", r.Condition)
	b.WriteString(strings.TrimSpace(r.Overview))
	b.WriteString("\n")
	return b.String()
}

// ReferencesMarkdown renders the References tab: guideline links, then citations.
func ReferencesMarkdown(r types.OverviewResult) string {
	var b strings.Builder
	b.WriteString("### RCH Guideline\n\n")
	if r.Guidelines.IsEmpty() {
		b.WriteString(NoGuidelinesMessage + "\n")
	}
	for _, link := range r.Guidelines.Items {
		fmt.Fprintf(&b, "- [RCH Guideline](%s)\n", link)
	}

	b.WriteString("\n### PubMed References\n\n")
	if r.Citations.IsEmpty() {
		b.WriteString(NoCitationsMessage + "\n")
	}
	for _, c := range r.Citations.Items {
		label := c.Title
		if label == "" {
			label = c.Link
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", label, c.Link)
	}
	return b.String()
}

// FormatMarkdown writes both tabs as one Markdown document to w.
func FormatMarkdown(r types.OverviewResult, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\n## References\n\n%s", OverviewMarkdown(r), ReferencesMarkdown(r))
	return err
}

// FormatJSON writes the record as indented JSON to w.
func FormatJSON(r types.OverviewResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes the record as YAML to w.
func FormatYAML(r types.OverviewResult, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Format writes r to w in the named format: markdown, json, or yaml.
func Format(r types.OverviewResult, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "markdown", "md", "":
		return FormatMarkdown(r, w)
	case "json":
		return FormatJSON(r, w)
	case "yaml", "yml":
		return FormatYAML(r, w)
	default:
		return fmt.Errorf("unsupported format %q: use markdown, json, or yaml", format)
	}
}

// FormatForPath picks the output format from a file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "markdown"
	}
}

// WriteFile saves r to path in format. An empty format is taken from the
// path's extension.
func WriteFile(path, format string, r types.OverviewResult) error {
	if format == "" {
		format = FormatForPath(path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Format(r, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
