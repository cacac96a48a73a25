// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sympatico/pkg/types"
)

type fakeRunner struct {
	condition string
	calls     int
}

func (f *fakeRunner) Run(_ context.Context, condition string, model types.Model) types.OverviewResult {
	f.calls++
	f.condition = condition
	return types.OverviewResult{
		Condition:  condition,
		Model:      model,
		Overview:   "**Overview** – bronchiolitis text",
		Guidelines: types.Found([]string{"https://www.rch.org.au/bronchiolitis"}),
		Citations:  types.Found([]types.Citation{{Title: "Bronchiolitis in infants", Link: "https://pubmed.ncbi.nlm.nih.gov/12345"}}),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestEnterWithBlankInputDoesNothing(t *testing.T) {
	runner := &fakeRunner{}
	m := New(context.Background(), runner, types.ModelGPT4)

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stateInput, m.state)
	assert.Nil(t, cmd)
	assert.Zero(t, runner.calls)
}

func TestRunFlow(t *testing.T) {
	runner := &fakeRunner{}
	m := New(context.Background(), runner, types.ModelGPT4)

	m = typeText(t, m, "bronchiolitis")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateLoading, m.state)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Generating overview")

	// Execute the pipeline command directly rather than the spinner batch.
	msg := m.run("bronchiolitis")()
	m, _ = update(t, m, msg)

	assert.Equal(t, stateResult, m.state)
	assert.Equal(t, "bronchiolitis", runner.condition)
	assert.Equal(t, TabOverview, m.tab)
	assert.Contains(t, m.viewport.View(), "bronchiolitis text")
}

func TestTabSwitching(t *testing.T) {
	m := New(context.Background(), &fakeRunner{}, types.ModelGPT4)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, resultMsg{result: (&fakeRunner{}).Run(context.Background(), "bronchiolitis", types.ModelGPT4)})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabReferences, m.tab)
	assert.Contains(t, m.viewport.View(), "PubMed References")
	assert.Contains(t, m.viewport.View(), "Bronchiolitis in infants")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabOverview, m.tab)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabReferences, m.tab)
}

func TestNewConditionReturnsToInput(t *testing.T) {
	m := New(context.Background(), &fakeRunner{}, types.ModelGPT4)
	m, _ = update(t, m, resultMsg{result: types.EmptyOverviewResult(types.ModelGPT4)})
	require.Equal(t, stateResult, m.state)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, stateInput, m.state)
	assert.Empty(t, m.input.Value())
}

func TestQuitKeys(t *testing.T) {
	m := New(context.Background(), &fakeRunner{}, types.ModelGPT4)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, _ = update(t, m, resultMsg{result: types.EmptyOverviewResult(types.ModelGPT4)})
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsModel(t *testing.T) {
	m := New(context.Background(), &fakeRunner{}, types.ModelGPT35Turbo)
	assert.Contains(t, m.View(), "model: gpt-3.5-turbo")
}
