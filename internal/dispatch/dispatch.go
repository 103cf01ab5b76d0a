// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/flotilla/internal/ctxlog"
)

var (
	// ErrNoTasks is returned when the batch contains no tasks.
	ErrNoTasks = errors.New("no tasks to dispatch")
	// ErrWorkerCount is returned when the worker count is less than one.
	ErrWorkerCount = errors.New("worker count must be at least 1")
	// ErrDuplicateTaskID is returned when two tasks in a batch share an identifier.
	ErrDuplicateTaskID = errors.New("duplicate task identifier")
)

// Dispatch runs every task through the executor with at most workers
// concurrent executions and returns one outcome per task, sorted by task
// identifier. It returns only after all tasks have completed; per-task
// failures are carried in their outcomes and never abort the batch.
//
// The pool size is exactly the requested worker count. Workers in excess of
// the task count exit as soon as the task channel drains.
//
// The only errors returned are configuration errors, detected before any
// execution starts.
func Dispatch(ctx context.Context, exec Executor, tasks []Task, workers int) (BatchResult, error) {
	logger := ctxlog.Logger(ctx).With("component", "dispatch")

	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrWorkerCount, workers)
	}

	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	seen := make(map[int]struct{}, len(tasks))

	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTaskID, t.ID)
		}

		seen[t.ID] = struct{}{}
	}

	logger.Debug("dispatching batch", "tasks", len(tasks), "workers", workers)

	taskCh := make(chan Task)
	resCh := make(chan Outcome, len(tasks))
	wg := &sync.WaitGroup{}

	for i := range workers {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()

			for t := range taskCh {
				// Cancellation is cooperative: checked between tasks, never
				// mid-execution.
				select {
				case <-ctx.Done():
					resCh <- Outcome{
						TaskID:  t.ID,
						Command: t.Command,
						Err:     "Error: " + ctx.Err().Error(),
					}

					continue
				default:
				}

				logger.Debug("task started", "worker", worker, "task", t.ID)
				resCh <- exec.Execute(ctx, t)
				logger.Debug("task finished", "worker", worker, "task", t.ID)
			}
		}(i)
	}

	for _, t := range tasks {
		taskCh <- t
	}

	close(taskCh)
	wg.Wait()
	close(resCh)

	results := make(BatchResult, 0, len(tasks))

	for o := range resCh {
		results = append(results, o)
	}

	slices.SortFunc(results, func(a, b Outcome) int {
		return cmp.Compare(a.TaskID, b.TaskID)
	})

	logger.Debug("batch complete", "successes", results.Successes(), "failures", results.Failures())

	return results, nil
}
