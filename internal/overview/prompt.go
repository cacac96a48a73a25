// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overview

import (
	"bytes"
	"text/template"
)

// overviewPromptTmpl asks for an eight-section Markdown summary of one
// paediatric condition. The condition name is its only parameter.
var overviewPromptTmpl = template.Must(template.New("overview").Parse(`
You are a clinical assistant. Provide a comprehensive overview of the paediatric condition: **{{.Condition}}**

Use Markdown formatting with bolded subheadings and short paragraphs. Include:

**Overview** – Brief definition and clinical context
**Prevalence & Epidemiology** – Who it affects and how commonly
**Pathophysiology** – Core mechanism of disease
**Presenting Symptoms & Signs** – Typical clinical features
**Differential Diagnoses** – Key alternatives and distinguishing features
**Investigations** – Relevant initial and confirmatory tests
**Management** – First-line and escalated care
**Prognosis** – Expected course and outcomes
`))

// Sections lists the subheadings the prompt requests, in order.
var Sections = []string{
	"Overview",
	"Prevalence & Epidemiology",
	"Pathophysiology",
	"Presenting Symptoms & Signs",
	"Differential Diagnoses",
	"Investigations",
	"Management",
	"Prognosis",
}

// renderPrompt executes the overview prompt template for condition.
func renderPrompt(condition string) (string, error) {
	var buf bytes.Buffer
	if err := overviewPromptTmpl.Execute(&buf, struct{ Condition string }{Condition: condition}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
