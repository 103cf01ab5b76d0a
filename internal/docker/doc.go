// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package docker executes a single task inside a disposable Docker container.
//
// The launcher invokes `docker run` synchronously, captures stdout and stderr,
// and maps the exit status to a task outcome. All failures, including the
// container runtime being absent, are absorbed into the outcome so that one
// task can never abort a batch.
package docker
