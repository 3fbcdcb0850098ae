// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propensive/digression/internal/config"
)

func TestRootCommandRegistration(t *testing.T) {
	want := []string{"rewrite", "validate", "legend", "render", "history", "daemon", "version", "completion"}

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, w := range want {
		assert.True(t, names[w], "command %q should be registered", w)
	}
}

func TestColorEnabled(t *testing.T) {
	defer func() { NoColorFlag = false }()

	NoColorFlag = false
	assert.True(t, colorEnabled(&config.Config{Color: config.ColorAlways}))
	assert.False(t, colorEnabled(&config.Config{Color: config.ColorNever}))

	NoColorFlag = true
	assert.False(t, colorEnabled(&config.Config{Color: config.ColorAlways}))
}

func TestSplitBoundary(t *testing.T) {
	className, methodName, err := splitBoundary("com.example.App.main")
	require.NoError(t, err)
	assert.Equal(t, "com.example.App", className)
	assert.Equal(t, "main", methodName)

	_, _, err = splitBoundary("main")
	assert.Error(t, err)

	_, _, err = splitBoundary("App.")
	assert.Error(t, err)

	_, _, err = splitBoundary(".main")
	assert.Error(t, err)
}
