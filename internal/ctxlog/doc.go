// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger built on slog.
//
// The default is a pretty console handler that formats log messages in a
// human-readable way. The log level is read from the FLOTILLA_LOG_LEVEL
// environment variable at start-up.
package ctxlog
