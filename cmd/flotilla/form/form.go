// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package form contains the command that launches the interactive terminal
// form for entering commands and viewing results.
package form

import (
	"context"

	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
	"github.com/matt-FFFFFF/flotilla/internal/docker"
	"github.com/matt-FFFFFF/flotilla/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	imageFlag   = "image"
	userFlag    = "user"
	mountFlag   = "mount"
	workdirFlag = "workdir"
	pipeToFlag  = "pipe-to"
)

// FormCmd is the command that launches the interactive form.
var FormCmd = &cli.Command{
	Name: "form",
	Description: "Open an interactive form for entering commands and a worker count, " +
		"then run them in parallel containers and view the report in a scrollable pane.",
	Flags: []cli.Flag{
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
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	launcher, err := docker.NewLauncher(docker.Options{
		Image:     cmd.String(imageFlag),
		User:      cmd.String(userFlag),
		MountPath: cmd.String(mountFlag),
		Workdir:   cmd.String(workdirFlag),
		PipeTo:    cmd.String(pipeToFlag),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	dispatcher := func(ctx context.Context, commands []string, workers int) (dispatch.BatchResult, error) {
		return dispatch.Dispatch(ctx, launcher, dispatch.NewTasks(commands), workers)
	}

	if err := tui.Run(ctx, dispatcher); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
