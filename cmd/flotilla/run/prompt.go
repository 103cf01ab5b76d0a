// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrPrompt is returned when interactive command entry fails.
var ErrPrompt = errors.New("failed to read command")

// promptCommands collects command strings interactively, one per line.
// An empty line, EOF or Ctrl-C finishes entry.
func promptCommands(w io.Writer) ([]string, error) {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	fmt.Fprintln(w, "Enter commands, one per line. An empty line finishes entry.")

	var commands []string

	for {
		input, err := line.Prompt(fmt.Sprintf("command %d> ", len(commands)+1))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				break
			}

			return nil, errors.Join(ErrPrompt, err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			break
		}

		line.AppendHistory(input)
		commands = append(commands, input)
	}

	return commands, nil
}
