// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matt-FFFFFF/flotilla/internal/report"
)

// batchCompletedMsg carries the rendered report of a finished batch.
type batchCompletedMsg struct {
	report string
}

// batchFaultMsg carries an unexpected dispatch fault. Per-task failures are
// part of the report; this only fires when the dispatch call itself errors.
type batchFaultMsg struct {
	err error
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.Width = msg.Width - 4

		for i := range m.commands {
			m.commands[i].Width = msg.Width - 8
		}

		return m, nil

	case batchCompletedMsg:
		m.running = false
		m.hasResult = true
		m.results.SetContent(msg.report)
		m.results.GotoTop()

		return m, nil

	case batchFaultMsg:
		m.running = false
		m.errMsg = "ERROR: " + msg.err.Error()

		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil

	case "ctrl+n":
		m.commands = append(m.commands, m.newCommandInput())
		m.setFocus(len(m.commands) - 1)

		return m, nil

	case "ctrl+d":
		m.deleteFocusedCommand()
		return m, nil

	case "ctrl+r", "enter":
		if msg.String() == "enter" && m.focus != m.workersFieldIndex() {
			break
		}

		return m, m.startBatch()

	case "pgup":
		m.results.ScrollUp(3)
		return m, nil

	case "pgdown":
		m.results.ScrollDown(3)
		return m, nil
	}

	return m.updateFocused(msg)
}

// setFocus moves focus between the command inputs and the workers field,
// wrapping at both ends.
func (m *Model) setFocus(focus int) {
	total := len(m.commands) + 1

	m.focus = ((focus % total) + total) % total

	for i := range m.commands {
		if i == m.focus {
			m.commands[i].Focus()
		} else {
			m.commands[i].Blur()
		}
	}

	if m.focus == m.workersFieldIndex() {
		m.workers.Focus()
	} else {
		m.workers.Blur()
	}
}

// deleteFocusedCommand removes the focused command input. The form always
// keeps at least one command, matching the reference behaviour.
func (m *Model) deleteFocusedCommand() {
	if m.focus >= len(m.commands) {
		return
	}

	if len(m.commands) == 1 {
		m.errMsg = "You must have at least one command."
		return
	}

	m.commands = append(m.commands[:m.focus], m.commands[m.focus+1:]...)
	m.setFocus(min(m.focus, len(m.commands)-1))
}

// startBatch validates the form and returns a command that dispatches the
// batch off the UI loop.
func (m *Model) startBatch() tea.Cmd {
	if m.running {
		return nil
	}

	m.errMsg = ""

	workers, err := strconv.Atoi(strings.TrimSpace(m.workers.Value()))
	if err != nil || workers < 1 {
		m.errMsg = "Max workers must be a positive integer."
		return nil
	}

	commands := m.commandValues()
	if len(commands) == 0 {
		m.errMsg = "Please enter at least one command."
		return nil
	}

	m.running = true
	m.results.SetContent("Running " + strconv.Itoa(len(commands)) + " containers...")

	ctx := m.ctx
	dispatcher := m.dispatcher

	return func() tea.Msg {
		result, err := dispatcher(ctx, commands, workers)
		if err != nil {
			return batchFaultMsg{err: err}
		}

		return batchCompletedMsg{report: report.String(result)}
	}
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.focus < len(m.commands) {
		m.commands[m.focus], cmd = m.commands[m.focus].Update(msg)
		return m, cmd
	}

	m.workers, cmd = m.workers.Update(msg)

	return m, cmd
}
