// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the flotilla command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/flotilla"
	"github.com/matt-FFFFFF/flotilla/cmd/flotilla/form"
	"github.com/matt-FFFFFF/flotilla/cmd/flotilla/run"
	"github.com/matt-FFFFFF/flotilla/internal/ctxlog"
	"github.com/matt-FFFFFF/flotilla/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		form.FormCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "flotilla",
	Description: `Flotilla runs a batch of shell commands in parallel, each inside its own
disposable Docker container, bounded by a worker limit. Results are collected
as containers finish and reported in a stable order with a success/failure
summary.`,
	Usage:     "flotilla run batch.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", flotilla.Version, flotilla.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	// Check if the context was cancelled (e.g. due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("run terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
