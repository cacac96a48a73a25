// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is an interactive terminal front end for the condition
// overview: type a condition, wait on a spinner, then page through the
// Overview and References tabs.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/sympatico/internal/pipeline"
	"github.com/pdiddy/sympatico/pkg/types"
)

// Runner runs one condition overview.
type Runner interface {
	Run(ctx context.Context, condition string, model types.Model) types.OverviewResult
}

type state int

const (
	stateInput state = iota
	stateLoading
	stateResult
)

// Tab indexes.
const (
	TabOverview = iota
	TabReferences
)

var tabNames = []string{"Overview", "References"}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#06B6D4"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#6C7086"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// resultMsg carries a finished pipeline run back into Update.
type resultMsg struct {
	result types.OverviewResult
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	runner Runner
	model  types.Model

	state    state
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	tab      int
	result   types.OverviewResult

	width, height int
}

// New returns the initial model. ctx bounds every pipeline run started from it.
func New(ctx context.Context, runner Runner, model types.Model) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. bronchiolitis, nephrotic syndrome"
	ti.Prompt = "Condition: "
	ti.CharLimit = 200
	ti.Focus()

	return Model{
		ctx:      ctx,
		runner:   runner,
		model:    model,
		state:    stateInput,
		input:    ti,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes, spinner ticks and finished runs.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		m.state = stateResult
		m.result = msg.result
		m.tab = TabOverview
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateInput:
		switch msg.Type {
		case tea.KeyEnter:
			condition := strings.TrimSpace(m.input.Value())
			if condition == "" {
				return m, nil
			}
			m.state = stateLoading
			return m, tea.Batch(m.spinner.Tick, m.run(condition))
		case tea.KeyEsc:
			return m, tea.Quit
		}
		return m.forward(msg)

	case stateResult:
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % len(tabNames)
			m.refreshViewport()
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
			m.refreshViewport()
			return m, nil
		case "esc", "n":
			m.state = stateInput
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		case "q":
			return m, tea.Quit
		}
		return m.forward(msg)
	}
	return m, nil
}

// forward passes msg to the component that owns the current state.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateInput:
		m.input, cmd = m.input.Update(msg)
	case stateResult:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// run returns a command that executes the pipeline off the UI goroutine.
func (m Model) run(condition string) tea.Cmd {
	ctx, runner, model := m.ctx, m.runner, m.model
	return func() tea.Msg {
		return resultMsg{result: runner.Run(ctx, condition, model)}
	}
}

func (m *Model) refreshViewport() {
	if m.state != stateResult {
		return
	}
	var content string
	if m.tab == TabOverview {
		content = pipeline.OverviewMarkdown(m.result)
	} else {
		content = pipeline.ReferencesMarkdown(m.result)
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(content))
	m.viewport.GotoTop()
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sympatico – Condition Overview"))
	b.WriteString(helpStyle.Render("  model: " + string(m.model)))
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter: generate • esc: quit"))
	case stateLoading:
		b.WriteString(m.spinner.View() + " Generating overview...")
	case stateResult:
		b.WriteString(m.tabsView())
		b.WriteString("\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: switch tab • ↑/↓: scroll • n: new condition • q: quit"))
	}
	return b.String()
}

func (m Model) tabsView() string {
	rendered := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == m.tab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, runner Runner, model types.Model) error {
	_, err := tea.NewProgram(New(ctx, runner, model), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
