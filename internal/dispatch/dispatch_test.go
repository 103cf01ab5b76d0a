// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeExecutor simulates task execution with a per-task latency and outcome.
type fakeExecutor struct {
	latency func(Task) time.Duration
	fail    func(Task) bool
	calls   atomic.Int64
	active  atomic.Int64
	maxSeen atomic.Int64
}

func (f *fakeExecutor) Execute(_ context.Context, task Task) Outcome {
	f.calls.Add(1)

	active := f.active.Add(1)
	defer f.active.Add(-1)

	// Record the high-water mark of concurrently active executions.
	for {
		seen := f.maxSeen.Load()
		if active <= seen || f.maxSeen.CompareAndSwap(seen, active) {
			break
		}
	}

	if f.latency != nil {
		time.Sleep(f.latency(task))
	}

	if f.fail != nil && f.fail(task) {
		return Outcome{TaskID: task.ID, Command: task.Command, Err: "Error: task failed"}
	}

	return Outcome{TaskID: task.ID, Command: task.Command, Output: fmt.Sprintf("out-%d", task.ID)}
}

func tasksN(n int) []Task {
	commands := make([]string, n)
	for i := range commands {
		commands[i] = fmt.Sprintf("cmd %d", i+1)
	}

	return NewTasks(commands)
}

func TestDispatchReturnsOneOutcomePerTask(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := &fakeExecutor{}
	tasks := tasksN(10)

	result, err := Dispatch(context.Background(), exec, tasks, 3)
	require.NoError(t, err)
	require.Len(t, result, len(tasks))

	seen := make(map[int]struct{})

	for i, o := range result {
		assert.Equal(t, tasks[i].ID, o.TaskID, "result must be ordered by task identifier")

		_, dup := seen[o.TaskID]
		assert.False(t, dup, "no duplicate outcomes")
		seen[o.TaskID] = struct{}{}
	}
}

func TestDispatchOrderIndependentOfCompletionOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Later tasks finish first: task 1 is the slowest.
	exec := &fakeExecutor{
		latency: func(task Task) time.Duration {
			return time.Duration(10-task.ID) * 10 * time.Millisecond
		},
	}
	tasks := tasksN(8)

	result, err := Dispatch(context.Background(), exec, tasks, 8)
	require.NoError(t, err)

	for i, o := range result {
		assert.Equal(t, i+1, o.TaskID)
	}
}

func TestDispatchOutcomeExactlyOneOfOutputError(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := &fakeExecutor{
		fail: func(task Task) bool { return task.ID%2 == 0 },
	}

	result, err := Dispatch(context.Background(), exec, tasksN(6), 2)
	require.NoError(t, err)

	for _, o := range result {
		if o.Failed() {
			assert.Empty(t, o.Output)
			assert.NotEmpty(t, o.Err)
		} else {
			assert.NotEmpty(t, o.Output)
			assert.Empty(t, o.Err)
		}
	}
}

func TestDispatchConcurrencyBound(t *testing.T) {
	defer goleak.VerifyNone(t)

	const workers = 3

	exec := &fakeExecutor{
		latency: func(Task) time.Duration { return 20 * time.Millisecond },
	}

	_, err := Dispatch(context.Background(), exec, tasksN(12), workers)
	require.NoError(t, err)

	assert.LessOrEqual(t, exec.maxSeen.Load(), int64(workers),
		"observed concurrent-active count must never exceed the worker bound")
}

func TestDispatchMoreWorkersThanTasks(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := &fakeExecutor{}

	result, err := Dispatch(context.Background(), exec, tasksN(2), 16)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestDispatchErrorIsolation(t *testing.T) {
	defer goleak.VerifyNone(t)

	exec := &fakeExecutor{
		fail: func(Task) bool { return true },
	}

	result, err := Dispatch(context.Background(), exec, tasksN(5), 2)
	require.NoError(t, err, "task failures must not abort the batch")
	require.Len(t, result, 5)

	assert.Equal(t, 5, result.Failures())
	assert.Equal(t, 0, result.Successes())
}

func TestDispatchConfigurationErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name    string
		tasks   []Task
		workers int
		wantErr error
	}{
		{
			name:    "zero workers",
			tasks:   tasksN(3),
			workers: 0,
			wantErr: ErrWorkerCount,
		},
		{
			name:    "negative workers",
			tasks:   tasksN(3),
			workers: -2,
			wantErr: ErrWorkerCount,
		},
		{
			name:    "no tasks",
			tasks:   nil,
			workers: 2,
			wantErr: ErrNoTasks,
		},
		{
			name:    "duplicate identifiers",
			tasks:   []Task{{ID: 1, Command: "a"}, {ID: 1, Command: "b"}},
			workers: 2,
			wantErr: ErrDuplicateTaskID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}

			result, err := Dispatch(context.Background(), exec, tt.tasks, tt.workers)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.Zero(t, exec.calls.Load(), "no task may execute on a configuration error")
		})
	}
}

func TestDispatchIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	tasks := tasksN(7)

	first, err := Dispatch(context.Background(), &fakeExecutor{}, tasks, 3)
	require.NoError(t, err)

	second, err := Dispatch(context.Background(), &fakeExecutor{}, tasks, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDispatchCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExecutor{}

	result, err := Dispatch(ctx, exec, tasksN(4), 2)
	require.NoError(t, err)
	require.Len(t, result, 4, "cancellation still yields one outcome per task")

	for _, o := range result {
		assert.True(t, o.Failed())
	}

	assert.Zero(t, exec.calls.Load(), "no task may start on a cancelled context")
}

func TestExecutorFunc(t *testing.T) {
	f := ExecutorFunc(func(_ context.Context, task Task) Outcome {
		return Outcome{TaskID: task.ID, Output: "ok"}
	})

	o := f.Execute(context.Background(), Task{ID: 9})
	assert.Equal(t, 9, o.TaskID)
	assert.Equal(t, "ok", o.Output)
}

func TestNewTasks(t *testing.T) {
	tasks := NewTasks([]string{"a", "b"})
	require.Len(t, tasks, 2)
	assert.Equal(t, Task{ID: 1, Command: "a"}, tasks[0])
	assert.Equal(t, Task{ID: 2, Command: "b"}, tasks[1])
}

func TestBatchResultCounts(t *testing.T) {
	r := BatchResult{
		{TaskID: 1, Output: "x"},
		{TaskID: 2, Err: "Error: y"},
		{TaskID: 3, Output: "z"},
	}

	assert.Equal(t, 2, r.Successes())
	assert.Equal(t, 1, r.Failures())
}
