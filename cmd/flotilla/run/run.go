// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the command that dispatches a batch of containerized
// commands and prints the aggregated report.
package run

import (
	"github.com/urfave/cli/v3"
)

const (
	fileArg = "file"

	workersFlag      = "workers"
	cmdFlag          = "cmd"
	promptFlag       = "prompt"
	imageFlag        = "image"
	userFlag         = "user"
	mountFlag        = "mount"
	workdirFlag      = "workdir"
	pipeToFlag       = "pipe-to"
	hideCommandsFlag = "hide-commands"
)

// RunCmd is the command that runs a batch of containerized commands.
var RunCmd = newRunCmd()

// newRunCmd builds the run command. Tests create their own instance so that
// parsed flag state is never shared between runs.
func newRunCmd() *cli.Command {
	return &cli.Command{
		Name: "run",
		Description: "Run a batch of commands in parallel Docker containers. " +
			"Commands come from a YAML batch file, repeated --cmd flags, or an interactive prompt.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      fileArg,
				UsageText: "[BATCHFILE]",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        workersFlag,
				Aliases:     []string{"w"},
				Usage:       "Maximum number of containers to run concurrently",
				DefaultText: "5",
			},
			&cli.StringSliceFlag{
				Name:    cmdFlag,
				Aliases: []string{"c"},
				Usage:   "Command to run in a container; repeat for multiple tasks",
			},
			&cli.BoolFlag{
				Name:    promptFlag,
				Aliases: []string{"i"},
				Usage:   "Prompt for commands interactively, one per line; an empty line finishes entry",
			},
			&cli.StringFlag{
				Name:  imageFlag,
				Usage: "Container image tag",
			},
			&cli.StringFlag{
				Name:  userFlag,
				Usage: "Run-as user inside the container",
			},
			&cli.StringFlag{
				Name:  mountFlag,
				Usage: "In-container path the current directory is mounted at",
			},
			&cli.StringFlag{
				Name:  workdirFlag,
				Usage: "Working directory inside the container",
			},
			&cli.StringFlag{
				Name:  pipeToFlag,
				Usage: "Downstream command each task's text is piped into inside the container",
			},
			&cli.BoolFlag{
				Name:  hideCommandsFlag,
				Usage: "Omit the command text from the report",
			},
		},
		Action: actionFunc,
	}
}
