// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/matt-FFFFFF/flotilla/internal/ctxlog"
	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
)

const defaultBinary = "docker"

// Defaults for the container environment.
const (
	DefaultImage     = "py-cl-7"
	DefaultUser      = "coder"
	DefaultMountPath = "/home/coder/project"
	DefaultWorkdir   = "/home/coder/project"
)

// ErrResolveHostDir is returned when the host directory to mount cannot be determined.
var ErrResolveHostDir = errors.New("failed to resolve host directory")

// getwd allows stubbing the working directory lookup in tests.
var getwd = os.Getwd

var _ dispatch.Executor = (*Launcher)(nil)

// Options configure the container environment every task runs in.
type Options struct {
	Image     string // Container image tag
	User      string // Run-as identity inside the container
	MountPath string // In-container path the host directory is mounted at
	Workdir   string // In-container working directory
	PipeTo    string // Optional downstream command the echoed task text is piped into
	HostDir   string // Host directory to bind-mount, defaults to the current working directory
}

// DefaultOptions returns the default container environment.
func DefaultOptions() Options {
	return Options{
		Image:     DefaultImage,
		User:      DefaultUser,
		MountPath: DefaultMountPath,
		Workdir:   DefaultWorkdir,
	}
}

// Launcher runs tasks in disposable containers. It holds no mutable state
// across calls and is safe for concurrent use.
type Launcher struct {
	opts Options
	bin  string // Path to the container runtime binary, overridable in tests
}

// NewLauncher creates a Launcher, filling unset options with defaults.
func NewLauncher(opts Options) (*Launcher, error) {
	def := DefaultOptions()

	if opts.Image == "" {
		opts.Image = def.Image
	}

	if opts.User == "" {
		opts.User = def.User
	}

	if opts.MountPath == "" {
		opts.MountPath = def.MountPath
	}

	if opts.Workdir == "" {
		opts.Workdir = def.Workdir
	}

	if opts.HostDir == "" {
		cwd, err := getwd()
		if err != nil {
			return nil, errors.Join(ErrResolveHostDir, err)
		}

		opts.HostDir = cwd
	}

	return &Launcher{opts: opts, bin: defaultBinary}, nil
}

// Options returns the effective container environment.
func (l *Launcher) Options() Options {
	return l.opts
}

// Execute implements dispatch.Executor. It blocks until the container has
// exited and been removed, then maps the exit status to an outcome. Failures
// to start the runtime at all are reported in the same error shape as a
// non-zero exit, matching the reference behaviour.
func (l *Launcher) Execute(ctx context.Context, task dispatch.Task) (out dispatch.Outcome) {
	out = dispatch.Outcome{TaskID: task.ID, Command: task.Command}

	// Contract: never let a fault escape the executor.
	defer func() {
		if r := recover(); r != nil {
			out.Output = ""
			out.Err = fmt.Sprintf("Error: %v", r)
		}
	}()

	logger := ctxlog.Logger(ctx).With("component", "docker").With("task", task.ID)

	args := l.args(task)
	logger.Debug("starting container", "binary", l.bin, "args", args)

	cmd := exec.CommandContext(ctx, l.bin, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		out.Output = strings.TrimSpace(stdout.String())
		logger.Debug("container succeeded", "bytes", stdout.Len())

		return out
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}

		out.Err = "Error: " + msg
		logger.Debug("container failed", "exitCode", exitErr.ExitCode())

		return out
	}

	// Runtime missing, I/O failure, or any other start-up problem.
	out.Err = "Error: " + err.Error()
	logger.Debug("container could not be started", "error", err)

	return out
}

// args builds the `docker run` argument list for one task. The task text is
// echoed inside the container and optionally piped into a downstream command.
func (l *Launcher) args(task dispatch.Task) []string {
	shellCmd := fmt.Sprintf("echo '%s'", task.Command)
	if l.opts.PipeTo != "" {
		shellCmd += " | " + l.opts.PipeTo
	}

	return []string{
		"run",
		"-u", l.opts.User,
		"-v", l.opts.HostDir + ":" + l.opts.MountPath,
		"-w", l.opts.Workdir,
		"--rm",
		l.opts.Image,
		"sh", "-c", shellCmd,
	}
}
