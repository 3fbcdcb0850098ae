// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propensive/digression/internal/trace"
)

const cropSampleTrace = `java.lang.RuntimeException: boom
	at com.example.Engine$anonfun$run$1.apply(Engine.scala:10)
	at com.example.App.main(App.scala:5)
	at java.base/java.lang.Thread.run(Thread.java:833)
`

func assembleSample(t *testing.T) *trace.StackTrace {
	t.Helper()
	throwable, err := trace.Parse(cropSampleTrace)
	require.NoError(t, err)
	return trace.Assemble(throwable)
}

func TestApplyCropMatchesRewrittenFrames(t *testing.T) {
	st := assembleSample(t)
	require.Len(t, st.Frames, 3)

	// Assembled frames carry rewritten names ("main()"), so a raw
	// Class.method boundary must still find its frame.
	cropped, err := applyCrop(st, "com.example.App.main")
	require.NoError(t, err)
	require.Len(t, cropped.Frames, 1)
	assert.Equal(t, "com.example.Engineλrun₁", cropped.Frames[0].Method.ClassName)
}

func TestApplyCropMangledBoundary(t *testing.T) {
	st := assembleSample(t)

	cropped, err := applyCrop(st, "com.example.Engine$anonfun$run$1.apply")
	require.NoError(t, err)
	assert.Empty(t, cropped.Frames)
}

func TestApplyCropNoMatchKeepsAllFrames(t *testing.T) {
	st := assembleSample(t)

	cropped, err := applyCrop(st, "com.example.Missing.nowhere")
	require.NoError(t, err)
	assert.Len(t, cropped.Frames, 3)
}

func TestApplyCropInvalidBoundary(t *testing.T) {
	st := assembleSample(t)

	_, err := applyCrop(st, "main")
	assert.Error(t, err)
}
