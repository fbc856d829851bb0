package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/asmfix/asmfix"
	"github.com/sokinpui/asmfix/model"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---
type summaryMsg struct {
	model.Summary
	err error
}

type progressMsg struct {
	current, total int
}

// --- Model ---
type Model struct {
	app     *asmfix.App
	spinner spinner.Model
	state   state
	summary model.Summary
	err     error
	current int
	total   int
}

type state int

const (
	stateProcessing state = iota
	stateSummary
)

func New(app *asmfix.App) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		spinner: s,
		state:   stateProcessing,
	}
}

// SetProgram forwards progress updates from the app to the running program.
func (m Model) SetProgram(p *tea.Program) {
	m.app.SetProgressCallback(func(current, total int) {
		p.Send(progressMsg{current: current, total: total})
	})
}

// Err returns the error the run finished with, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.current, m.total = msg.current, msg.total
		return m, nil

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg.Summary
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.total > 0 {
			return fmt.Sprintf("%s Normalizing fixtures... [%d/%d]", m.spinner.View(), m.current, m.total)
		}
		return fmt.Sprintf("%s Normalizing fixtures...", m.spinner.View())
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	modifiedLabel := "Modified:"
	if m.summary.DryRun {
		modifiedLabel = "Would modify:"
	}
	hasContent := writeSection(&b, successStyle.Render(modifiedLabel), m.summary.Modified)
	hasContent = writeSection(&b, faintStyle.Render("Unchanged:"), m.summary.Unchanged) || hasContent

	if len(m.summary.Failed) > 0 {
		hasContent = true
		b.WriteString(errorStyle.Render("Failed:"))
		b.WriteString("\n")
		for _, r := range m.summary.Results {
			if r.Status == model.StatusFailed {
				b.WriteString(fmt.Sprintf("  %s %s\n", pathStyle.Render(r.Name), faintStyle.Render(r.Err.Error())))
			}
		}
	}

	if m.err != nil && len(m.summary.Failed) == 0 {
		b.WriteString(errorStyle.Render("Error: ", m.err.Error()))
		b.WriteString("\n")
		hasContent = true
	}

	if !hasContent && m.summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, files []string) bool {
	if len(files) == 0 {
		return false
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(f)))
	}
	return true
}

func (m Model) runApp() tea.Msg {
	summary, err := m.app.Execute()
	return summaryMsg{Summary: summary, err: err}
}
