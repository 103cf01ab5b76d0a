// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batchfile loads and validates the YAML definition of a batch run:
// the commands to execute, the worker bound, and the container environment.
package batchfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
	"github.com/matt-FFFFFF/flotilla/internal/docker"
	"github.com/spf13/afero"
)

// DefaultWorkers is the worker bound applied when the definition omits one.
const DefaultWorkers = 5

var (
	// ErrReadFile is returned when the batch file cannot be read.
	ErrReadFile = errors.New("failed to read batch file")
	// ErrParseFile is returned when the batch file is not valid YAML.
	ErrParseFile = errors.New("failed to parse batch file")
	// ErrNoCommands is returned when the definition contains no commands.
	ErrNoCommands = errors.New("at least one command is required")
	// ErrBlankCommand is returned when a command is empty or whitespace.
	ErrBlankCommand = errors.New("command must not be blank")
	// ErrWorkers is returned when the worker count is below one.
	ErrWorkers = errors.New("workers must be at least 1")
	// ErrNoImage is returned when the image is explicitly set to blank.
	ErrNoImage = errors.New("image must not be blank")
)

// FsFactory returns the filesystem used to read batch files.
// Tests swap this for an in-memory filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Definition is the YAML schema for a batch run.
type Definition struct {
	Image    string   `yaml:"image"`
	User     string   `yaml:"user"`
	Mount    string   `yaml:"mount"`
	Workdir  string   `yaml:"workdir"`
	PipeTo   string   `yaml:"pipe_to"`
	Workers  int      `yaml:"workers"`
	Commands []string `yaml:"commands"`
}

// New creates a definition for the given commands with every other field
// defaulted. The result is not yet validated.
func New(commands []string) *Definition {
	def := &Definition{Commands: commands}
	def.applyDefaults()

	return def
}

// Load reads and parses a batch definition, fills defaults and validates it.
func Load(path string) (*Definition, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	return Parse(data)
}

// Parse parses a batch definition from raw YAML, fills defaults and validates it.
func Parse(data []byte) (*Definition, error) {
	def := &Definition{}

	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, errors.Join(ErrParseFile, err)
	}

	def.applyDefaults()

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return def, nil
}

func (d *Definition) applyDefaults() {
	if d.Workers == 0 {
		d.Workers = DefaultWorkers
	}

	opts := docker.DefaultOptions()

	if d.Image == "" {
		d.Image = opts.Image
	}

	if d.User == "" {
		d.User = opts.User
	}

	if d.Mount == "" {
		d.Mount = opts.MountPath
	}

	if d.Workdir == "" {
		d.Workdir = opts.Workdir
	}
}

// Validate collects every problem with the definition into one error.
func (d *Definition) Validate() error {
	var result *multierror.Error

	if len(d.Commands) == 0 {
		result = multierror.Append(result, ErrNoCommands)
	}

	for i, c := range d.Commands {
		if strings.TrimSpace(c) == "" {
			result = multierror.Append(result, fmt.Errorf("%w: command %d", ErrBlankCommand, i+1))
		}
	}

	if d.Workers < 1 {
		result = multierror.Append(result, fmt.Errorf("%w: got %d", ErrWorkers, d.Workers))
	}

	if strings.TrimSpace(d.Image) == "" {
		result = multierror.Append(result, ErrNoImage)
	}

	return result.ErrorOrNil()
}

// Tasks converts the command list into dispatchable tasks.
func (d *Definition) Tasks() []dispatch.Task {
	return dispatch.NewTasks(d.Commands)
}

// LauncherOptions maps the definition onto the container environment.
func (d *Definition) LauncherOptions() docker.Options {
	return docker.Options{
		Image:     d.Image,
		User:      d.User,
		MountPath: d.Mount,
		Workdir:   d.Workdir,
		PipeTo:    d.PipeTo,
	}
}
