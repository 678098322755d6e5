// Package tui is an interactive terminal playground: the same form, submit
// cycle and cards as the web page, driven by bubbletea.
package tui

import (
	"context"
	"strings"

	"dpplayground/app"
	"dpplayground/domain/playground"
	"dpplayground/ui/termview"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field order in the form.
const (
	fieldDataset = iota
	fieldEpsilon
	fieldLower
	fieldUpper
	fieldCount
)

var fieldLabels = [fieldCount]string{"Dataset", "Epsilon (ε)", "Lower Bound", "Upper Bound"}

// resolvedMsg carries the state after the outbound call finished.
type resolvedMsg struct {
	state playground.State
}

// Model is the bubbletea model for the playground.
type Model struct {
	ctx      context.Context
	service  *app.PlaygroundService
	inputs   []textinput.Model
	focus    int
	state    playground.State
	quitting bool
}

// NewModel builds the form from initial values.
func NewModel(ctx context.Context, service *app.PlaygroundService, form playground.FormState) Model {
	values := [fieldCount]string{
		form.DatasetText,
		playground.FormatParam(form.Epsilon),
		playground.FormatParam(form.LowerBound),
		playground.FormatParam(form.UpperBound),
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "  "
		ti.CharLimit = 4096
		ti.Width = 48
		ti.SetValue(values[i])
		inputs[i] = ti
	}
	inputs[fieldDataset].Placeholder = "Enter comma-separated numbers"
	inputs[fieldDataset].Focus()

	return Model{
		ctx:     ctx,
		service: service,
		inputs:  inputs,
		state:   playground.NewState().WithForm(form),
	}
}

// Init initializes the bubbletea model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and finished calculations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		// keep edits made while the request was in flight
		m.state = msg.state.WithForm(m.form())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.state = m.state.WithForm(m.form())
	return m, cmd
}

// submit starts a calculation; it is a no-op while one is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.state = m.state.WithForm(m.form())
	loading, req, err := m.service.Begin(m.state)
	if err != nil {
		return m, nil
	}
	m.state = loading

	ctx, service := m.ctx, m.service
	return m, func() tea.Msg {
		return resolvedMsg{state: service.Resolve(ctx, loading, req)}
	}
}

func (m Model) moveFocus(delta int) Model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

// form reads the current field values.
func (m Model) form() playground.FormState {
	return playground.FormState{
		DatasetText: m.inputs[fieldDataset].Value(),
		Epsilon:     playground.ParseParam(m.inputs[fieldEpsilon].Value()),
		LowerBound:  playground.ParseParam(m.inputs[fieldLower].Value()),
		UpperBound:  playground.ParseParam(m.inputs[fieldUpper].Value()),
	}
}

// State returns the current playground state.
func (m Model) State() playground.State {
	return m.state
}

// View renders the form, the submit line and the outcome.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(termview.Styles.Title.Render("Differential Privacy Playground"))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			b.WriteString(termview.Styles.Value.Render(label))
		} else {
			b.WriteString(termview.Styles.Label.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
		if i == fieldEpsilon {
			b.WriteString(termview.Styles.Hint.Render("  Lower = More Privacy, Less Accuracy"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.state.Loading() {
		b.WriteString(termview.Styles.Muted.Render("[ Calculating... ]"))
	} else {
		b.WriteString(termview.Styles.Value.Render("[ Calculate DP Statistics ]"))
	}
	b.WriteString("\n\n")
	b.WriteString(termview.State(m.state))
	b.WriteString("\n")
	b.WriteString(termview.Styles.Muted.Render("tab/shift+tab: move • enter: calculate • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, service *app.PlaygroundService, form playground.FormState) error {
	p := tea.NewProgram(NewModel(ctx, service, form), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
