// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides an interactive terminal form for running a batch of
// containerized commands. It collects command strings and a worker-count
// value, dispatches the batch, and renders the resulting report in a
// scrollable results pane.
package tui
