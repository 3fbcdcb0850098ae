// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

// Package trace assembles structured, navigable stack traces from mangled
// JVM exception data.
//
// A StackTrace is an immutable value: the assembler builds it once from a
// Throwable and the trimming operations return new values rather than
// editing in place. Frames are ordered from the throw site outward, so the
// first frame is the innermost call.
package trace

import "strings"

// Method names one rewritten method and its enclosing class, both already
// in display form.
type Method struct {
	ClassName  string
	MethodName string
}

// NoFile is the file placeholder for frames whose source reports no file.
const NoFile = "[no file]"

// Frame is one entry of an assembled stack trace.
type Frame struct {
	Method Method
	File   string
	Line   *int // nil when the source reports an unknown line
	Native bool
}

// Message is the structured message attached to a trace. Plain throwable
// text becomes a single-part message; domain error values may supply a
// pre-built multi-part message that is kept verbatim.
type Message struct {
	Parts []string
}

// NewMessage wraps raw message text in a minimal structured message.
func NewMessage(text string) Message {
	return Message{Parts: []string{text}}
}

func (m Message) String() string { return strings.Join(m.Parts, "") }

// StackTrace is an assembled exception: its component and class name in
// display form, its message, its frames ordered innermost first, and the
// trace of the exception that caused it, if any.
type StackTrace struct {
	Component string
	ClassName string
	Message   Message
	Frames    []Frame
	Cause     *StackTrace
}

// withFrames returns a copy of t holding the given frames. The cause and
// all other fields are shared, never mutated.
func (t *StackTrace) withFrames(frames []Frame) *StackTrace {
	out := *t
	out.Frames = frames
	return &out
}

// Crop returns a trace retaining the leading frames up to, but excluding,
// the first frame whose class and method names equal the given pair. When
// no frame matches, every frame is retained.
func (t *StackTrace) Crop(className, methodName string) *StackTrace {
	for i, frame := range t.Frames {
		if frame.Method.ClassName == className && frame.Method.MethodName == methodName {
			return t.withFrames(t.Frames[:i])
		}
	}
	return t.withFrames(t.Frames)
}

// Drop returns a trace without the first n frames, those closest to the
// throw site. Dropping more frames than exist yields an empty trace.
func (t *StackTrace) Drop(n int) *StackTrace {
	if n < 0 {
		n = 0
	}
	if n > len(t.Frames) {
		n = len(t.Frames)
	}
	return t.withFrames(t.Frames[n:])
}

// DropFromEnd returns a trace without the last n frames, those closest to
// program entry.
func (t *StackTrace) DropFromEnd(n int) *StackTrace {
	if n < 0 {
		n = 0
	}
	if n > len(t.Frames) {
		n = len(t.Frames)
	}
	return t.withFrames(t.Frames[:len(t.Frames)-n])
}
