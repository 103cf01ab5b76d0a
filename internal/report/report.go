// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders a batch result as a plain-text report: a header,
// one block per outcome, and a trailing summary line with success and
// failure counts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/flotilla/internal/color"
	"github.com/matt-FFFFFF/flotilla/internal/dispatch"
)

const dividerWidth = 60

// Options control what is included in the report.
type Options struct {
	ShowCommands bool // Include each task's command text in its block
}

// DefaultOptions returns the default report options.
func DefaultOptions() *Options {
	return &Options{
		ShowCommands: true,
	}
}

// Write renders the batch result to the writer with default options.
func Write(w io.Writer, result dispatch.BatchResult) error {
	return WriteWithOptions(w, result, nil)
}

// WriteWithOptions renders the batch result to the writer.
func WriteWithOptions(w io.Writer, result dispatch.BatchResult, options *Options) error {
	if options == nil {
		options = DefaultOptions()
	}

	divider := strings.Repeat("=", dividerWidth)

	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintln(w, "CONTAINER RESULTS")
	fmt.Fprintf(w, "%s\n\n", divider)

	for _, o := range result {
		writeOutcome(w, o, options)
	}

	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "SUMMARY: %d successful, %d failed\n", result.Successes(), result.Failures())
	fmt.Fprintln(w, divider)

	return nil
}

func writeOutcome(w io.Writer, o dispatch.Outcome, options *Options) {
	if options.ShowCommands && o.Command != "" {
		fmt.Fprintf(w, "Container %d - Command: %s\n", o.TaskID, o.Command)
	} else {
		fmt.Fprintf(w, "Container %d\n", o.TaskID)
	}

	if o.Failed() {
		fmt.Fprintf(w, "  Status: %s\n", color.Colorize("FAILED", color.Bold, color.FgRed))
		fmt.Fprintf(w, "  %s %s\n", color.Colorize("➜ Error:", color.FgRed), o.Err)
	} else {
		fmt.Fprintf(w, "  Status: %s\n", color.Colorize("SUCCESS", color.Bold, color.FgGreen))
		fmt.Fprintf(w, "  %s %s\n", color.Colorize("➜ Output:", color.FgGreen), o.Output)
	}

	fmt.Fprintln(w)
}

// String renders the batch result to a string with default options.
func String(result dispatch.BatchResult) string {
	sb := &strings.Builder{}
	_ = Write(sb, result)

	return sb.String()
}
