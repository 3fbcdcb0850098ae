// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"reflect"
	"strings"

	"github.com/propensive/digression/internal/demangle"
)

// maxCauseDepth caps the cause-chain walk. The host runtime does not
// guarantee the chain is acyclic or even finite, so assembly truncates
// past this depth instead of recursing without bound.
const maxCauseDepth = 64

// RawFrame is one frame descriptor as supplied by the host runtime,
// before any rewriting.
type RawFrame struct {
	ClassName  string
	MethodName string
	File       string // empty when the source reports no file
	Line       int    // negative when the line is unknown
	Native     bool
}

// Throwable is the narrow capability the assembler requires from the host
// runtime's exception representation. Implementations should be pointer
// values so cycle detection can track identities.
type Throwable interface {
	// TypeName returns the raw fully-qualified exception type name.
	TypeName() string
	// Message returns the raw message text, empty when there is none.
	Message() string
	// StackFrames returns the frame descriptors ordered innermost first.
	StackFrames() []RawFrame
	// Cause returns the exception that triggered this one, or nil.
	Cause() Throwable
}

// Messaged is implemented by domain error values carrying a pre-built
// structured message, which is used verbatim instead of wrapping the raw
// message text.
type Messaged interface {
	StructuredMessage() Message
}

// BuildFrame rewrites one raw frame descriptor into its display form.
func BuildFrame(raw RawFrame) Frame {
	file := raw.File
	if file == "" {
		file = NoFile
	}
	var line *int
	if raw.Line >= 0 {
		n := raw.Line
		line = &n
	}
	return Frame{
		Method: Method{
			ClassName:  demangle.Rewrite(raw.ClassName, false),
			MethodName: demangle.Rewrite(raw.MethodName, true),
		},
		File:   file,
		Line:   line,
		Native: raw.Native,
	}
}

// Assemble walks t and its cause chain, rewriting every identifier, and
// returns the resulting trace tree. A cyclic or unreasonably deep cause
// chain is truncated at a bounded depth rather than followed forever.
func Assemble(t Throwable) *StackTrace {
	if t == nil {
		return nil
	}
	seen := make(map[Throwable]bool)
	mark(t, seen)
	return assemble(t, 0, seen)
}

func assemble(t Throwable, depth int, seen map[Throwable]bool) *StackTrace {
	full := demangle.Rewrite(t.TypeName(), false)
	parts := strings.Split(full, ".")

	var message Message
	if m, ok := t.(Messaged); ok {
		message = m.StructuredMessage()
	} else {
		message = NewMessage(t.Message())
	}

	raws := t.StackFrames()
	frames := make([]Frame, 0, len(raws))
	for _, raw := range raws {
		frames = append(frames, BuildFrame(raw))
	}

	out := &StackTrace{
		Component: strings.Join(parts[:len(parts)-1], "."),
		ClassName: parts[len(parts)-1],
		Message:   message,
		Frames:    frames,
	}

	if cause := t.Cause(); cause != nil && depth < maxCauseDepth && mark(cause, seen) {
		out.Cause = assemble(cause, depth+1, seen)
	}
	return out
}

// mark records t as visited, reporting false when it was seen before. An
// implementation with an uncomparable dynamic type cannot be tracked; it
// is still protected by the depth cap.
func mark(t Throwable, seen map[Throwable]bool) bool {
	if !reflect.TypeOf(t).Comparable() {
		return true
	}
	if seen[t] {
		return false
	}
	seen[t] = true
	return true
}
