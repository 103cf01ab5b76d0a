// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrRunProgram is returned when the terminal program cannot be run.
var ErrRunProgram = errors.New("failed to run terminal program")

// Run starts the interactive form and blocks until the user quits.
func Run(ctx context.Context, dispatcher Dispatcher) error {
	model := NewModel(ctx, dispatcher)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return errors.Join(ErrRunProgram, err)
	}

	return nil
}
