// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDispatcher(result dispatch.BatchResult, err error) Dispatcher {
	return func(_ context.Context, commands []string, workers int) (dispatch.BatchResult, error) {
		return result, err
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))

	require.Len(t, m.commands, 1)
	assert.Equal(t, "5", m.workers.Value())
	assert.Equal(t, 0, m.focus)
	assert.False(t, m.running)
}

func TestAddAndDeleteCommand(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))

	updated, _ := m.Update(keyMsg("ctrl+n"))
	m = updated.(*Model)
	require.Len(t, m.commands, 2)
	assert.Equal(t, 1, m.focus, "focus moves to the new command")

	updated, _ = m.Update(keyMsg("ctrl+d"))
	m = updated.(*Model)
	require.Len(t, m.commands, 1)
}

func TestDeleteLastCommandRefused(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))

	updated, _ := m.Update(keyMsg("ctrl+d"))
	m = updated.(*Model)

	require.Len(t, m.commands, 1)
	assert.Contains(t, m.errMsg, "at least one command")
}

func TestRunWithInvalidWorkers(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))
	m.commands[0].SetValue("test 1")
	m.workers.SetValue("abc")

	updated, cmd := m.Update(keyMsg("ctrl+r"))
	m = updated.(*Model)

	assert.Nil(t, cmd, "no dispatch may start with an invalid worker count")
	assert.False(t, m.running)
	assert.Contains(t, m.errMsg, "positive integer")
}

func TestRunWithZeroWorkers(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))
	m.commands[0].SetValue("test 1")
	m.workers.SetValue("0")

	_, cmd := m.Update(keyMsg("ctrl+r"))
	assert.Nil(t, cmd)
}

func TestRunWithNoCommands(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))
	m.workers.SetValue("2")

	updated, cmd := m.Update(keyMsg("ctrl+r"))
	m = updated.(*Model)

	assert.Nil(t, cmd)
	assert.Contains(t, m.errMsg, "at least one command")
}

func TestRunProducesReport(t *testing.T) {
	result := dispatch.BatchResult{
		{TaskID: 1, Command: "test 1", Output: "hello"},
	}

	m := NewModel(context.Background(), stubDispatcher(result, nil))
	m.commands[0].SetValue("test 1")

	updated, cmd := m.Update(keyMsg("ctrl+r"))
	m = updated.(*Model)
	require.NotNil(t, cmd)
	assert.True(t, m.running)

	msg := cmd()
	completed, ok := msg.(batchCompletedMsg)
	require.True(t, ok, "expected a completed batch message, got %T", msg)
	assert.Contains(t, completed.report, "SUMMARY: 1 successful, 0 failed")

	updated, _ = m.Update(completed)
	m = updated.(*Model)
	assert.False(t, m.running)
	assert.True(t, m.hasResult)
	assert.Contains(t, m.results.View(), "SUMMARY")
}

func TestDispatchFaultSurfaced(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, errors.New("dispatch blew up")))
	m.commands[0].SetValue("test 1")

	updated, cmd := m.Update(keyMsg("ctrl+r"))
	m = updated.(*Model)
	require.NotNil(t, cmd)

	msg := cmd()
	fault, ok := msg.(batchFaultMsg)
	require.True(t, ok)

	updated, _ = m.Update(fault)
	m = updated.(*Model)
	assert.False(t, m.running)
	assert.Contains(t, m.errMsg, "dispatch blew up")
}

func TestFocusCycle(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(*Model)
	assert.Equal(t, m.workersFieldIndex(), m.focus)

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(*Model)
	assert.Equal(t, 0, m.focus, "focus wraps back to the first command")
}

func TestViewContainsSections(t *testing.T) {
	m := NewModel(context.Background(), stubDispatcher(nil, nil))

	view := m.View()
	assert.Contains(t, view, "Commands")
	assert.Contains(t, view, "Max Workers")
	assert.Contains(t, view, "Results")
}
