// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color provides ANSI control-code helpers for terminal output.
//
// Color output is decided once at start-up: the NO_COLOR environment variable
// disables it, FORCE_COLOR enables it, otherwise it is enabled when stdout is
// a terminal.
package color
