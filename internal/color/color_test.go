// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestControlString(t *testing.T) {
	assert.Equal(t, "\033[1m", ControlString(Bold))
	assert.Equal(t, "\033[1;31m", ControlString(Bold, FgRed))
	assert.Equal(t, "\033[0m", ControlString(Reset))
}

func TestColorizeRespectsEnabled(t *testing.T) {
	stubs := gostub.Stub(&enabled, true)
	defer stubs.Reset()

	assert.Equal(t, "\033[32mok\033[0m", Colorize("ok", FgGreen))
	assert.Equal(t, "\033[32mok", ColorizeNoReset("ok", FgGreen))

	stubs.Stub(&enabled, false)

	assert.Equal(t, "ok", Colorize("ok", FgGreen))
	assert.Equal(t, "ok", ColorizeNoReset("ok", FgGreen))
}

func TestIsColorEnabledEnv(t *testing.T) {
	stubs := gostub.New()
	defer stubs.Reset()

	stubs.SetEnv(NoColor, "1")
	stubs.SetEnv(ForceColor, "1")
	assert.False(t, isColorEnabled(), "NO_COLOR wins over FORCE_COLOR")

	stubs.UnsetEnv(NoColor)
	assert.True(t, isColorEnabled(), "FORCE_COLOR enables color without a terminal")
}
