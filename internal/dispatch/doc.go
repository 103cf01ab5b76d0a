// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch runs a batch of tasks concurrently under a fixed worker
// bound and aggregates their outcomes into a deterministically ordered result.
//
// Workers consume tasks from a channel and publish outcomes onto a buffered
// result channel that is drained by a single consumer, so no locking is
// required around the aggregation. The final batch result is sorted by task
// identifier and is therefore independent of completion order.
package dispatch
