// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/flotilla/internal/batchfile"
	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
	"github.com/matt-FFFFFF/flotilla/internal/docker"
	"github.com/matt-FFFFFF/flotilla/internal/report"
	"github.com/urfave/cli/v3"
)

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	def, err := buildDefinition(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	launcher, err := docker.NewLauncher(def.LauncherOptions())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintf(cmd.Writer, "Running %d containers with max %d workers...\n", len(def.Commands), def.Workers)

	result, err := dispatch.Dispatch(ctx, launcher, def.Tasks(), def.Workers)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	options := &report.Options{
		ShowCommands: !cmd.Bool(hideCommandsFlag),
	}

	return report.WriteWithOptions(cmd.Writer, result, options)
}

// buildDefinition assembles the batch definition from the file argument, the
// command flags and the interactive prompt, in that order of precedence for
// commands. Flags override the file's container settings.
func buildDefinition(cmd *cli.Command) (*batchfile.Definition, error) {
	var def *batchfile.Definition

	if path := cmd.StringArg(fileArg); path != "" {
		loaded, err := batchfile.Load(path)
		if err != nil {
			return nil, err
		}

		def = loaded
	} else {
		def = batchfile.New(cmd.StringSlice(cmdFlag))
	}

	if cmd.Bool(promptFlag) {
		prompted, err := promptCommands(cmd.Writer)
		if err != nil {
			return nil, err
		}

		def.Commands = append(def.Commands, prompted...)
	}

	if cmd.IsSet(workersFlag) {
		def.Workers = cmd.Int(workersFlag)
	}

	if v := cmd.String(imageFlag); v != "" {
		def.Image = v
	}

	if v := cmd.String(userFlag); v != "" {
		def.User = v
	}

	if v := cmd.String(mountFlag); v != "" {
		def.Mount = v
	}

	if v := cmd.String(workdirFlag); v != "" {
		def.Workdir = v
	}

	if v := cmd.String(pipeToFlag); v != "" {
		def.PipeTo = v
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return def, nil
}
