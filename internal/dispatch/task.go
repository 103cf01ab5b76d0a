// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import "context"

// Task is one unit of work: a shell command with an identifier that is
// unique within a single batch and fixes its position in the batch result.
type Task struct {
	ID      int    // Stable identifier, unique within a batch
	Command string // The command text to run
}

// Outcome is the result of running one task.
// Exactly one of Output and Err is non-empty.
type Outcome struct {
	TaskID  int    // Identifier of the task this outcome belongs to
	Command string // The command text that was run
	Output  string // Trimmed stdout, set only on success
	Err     string // Error description, set only on failure
}

// Failed reports whether the task failed.
func (o Outcome) Failed() bool {
	return o.Err != ""
}

// BatchResult holds one outcome per submitted task, ordered by task identifier.
type BatchResult []Outcome

// Successes returns the number of successful outcomes.
func (r BatchResult) Successes() int {
	n := 0

	for _, o := range r {
		if !o.Failed() {
			n++
		}
	}

	return n
}

// Failures returns the number of failed outcomes.
func (r BatchResult) Failures() int {
	return len(r) - r.Successes()
}

// Executor runs a single task to completion. Implementations must absorb all
// per-task failures into the returned Outcome and never panic: one task's
// infrastructure failure must not abort the batch.
type Executor interface {
	Execute(ctx context.Context, task Task) Outcome
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, task Task) Outcome

// Execute implements the Executor interface for ExecutorFunc.
func (f ExecutorFunc) Execute(ctx context.Context, task Task) Outcome {
	return f(ctx, task)
}

// NewTasks assigns ascending identifiers to a list of command strings,
// starting at 1.
func NewTasks(commands []string) []Task {
	tasks := make([]Task, 0, len(commands))

	for i, c := range commands {
		tasks = append(tasks, Task{ID: i + 1, Command: c})
	}

	return tasks
}
