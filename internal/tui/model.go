// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/matt-FFFFFF/flotilla/internal/batchfile"
	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
)

const (
	defaultWidth          = 80
	defaultResultsHeight  = 14
	commandInputCharLimit = 512
)

// Dispatcher runs a batch of commands and returns the aggregated result.
// The form never calls it with invalid input; it is swapped for a stub in tests.
type Dispatcher func(ctx context.Context, commands []string, workers int) (dispatch.BatchResult, error)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	resultsBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the interactive form.
type Model struct {
	ctx        context.Context
	dispatcher Dispatcher

	commands []textinput.Model
	workers  textinput.Model
	results  viewport.Model

	focus     int // index into focusables: commands, then the workers field
	running   bool
	hasResult bool
	errMsg    string
	width     int
	height    int
}

// NewModel creates the form with one empty command input and the default
// worker count pre-filled.
func NewModel(ctx context.Context, dispatcher Dispatcher) *Model {
	m := &Model{
		ctx:        ctx,
		dispatcher: dispatcher,
		width:      defaultWidth,
	}

	m.commands = []textinput.Model{m.newCommandInput()}
	m.commands[0].Focus()

	m.workers = textinput.New()
	m.workers.Placeholder = "workers"
	m.workers.SetValue(fmt.Sprintf("%d", batchfile.DefaultWorkers))
	m.workers.CharLimit = 4
	m.workers.Width = 6

	m.results = viewport.New(defaultWidth-2, defaultResultsHeight)
	m.results.SetContent("No results yet. Press ctrl+r to run.")

	return m
}

func (m *Model) newCommandInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "command to run in the container"
	ti.CharLimit = commandInputCharLimit
	ti.Width = m.width - 8

	return ti
}

// commandValues returns the non-blank command strings in form order.
func (m *Model) commandValues() []string {
	values := make([]string, 0, len(m.commands))

	for _, c := range m.commands {
		if v := strings.TrimSpace(c.Value()); v != "" {
			values = append(values, v)
		}
	}

	return values
}

// workersFieldIndex is the focus index of the worker-count field.
func (m *Model) workersFieldIndex() int {
	return len(m.commands)
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	sb := strings.Builder{}

	sb.WriteString(titleStyle.Render("flotilla"))
	sb.WriteString("\n\n")
	sb.WriteString(sectionStyle.Render("Commands"))
	sb.WriteString("\n")

	for i, c := range m.commands {
		marker := "  "
		if i == m.focus {
			marker = focusedStyle.Render("> ")
		}

		sb.WriteString(fmt.Sprintf("%s%s\n", marker, c.View()))
	}

	sb.WriteString("\n")

	marker := "  "
	if m.focus == m.workersFieldIndex() {
		marker = focusedStyle.Render("> ")
	}

	sb.WriteString(fmt.Sprintf("%s%s %s\n\n", marker, sectionStyle.Render("Max Workers:"), m.workers.View()))

	if m.errMsg != "" {
		sb.WriteString(errStyle.Render(m.errMsg))
		sb.WriteString("\n\n")
	}

	if m.running {
		sb.WriteString(sectionStyle.Render("Running..."))
		sb.WriteString("\n\n")
	}

	sb.WriteString(sectionStyle.Render("Results"))
	sb.WriteString("\n")
	sb.WriteString(resultsBorderStyle.Render(m.results.View()))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(
		"tab: next field • ctrl+n: add command • ctrl+d: delete command • ctrl+r: run • pgup/pgdn: scroll • ctrl+c: quit"))
	sb.WriteString("\n")

	return sb.String()
}
