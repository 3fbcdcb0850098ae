// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

// Package render turns assembled stack traces and the glyph legend into
// display text for terminals.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/propensive/digression/internal/demangle"
	"github.com/propensive/digression/internal/trace"
)

// Options controls rendering.
type Options struct {
	// Color enables ANSI escape sequences in the output.
	Color bool
}

var (
	headerColor = color.New(color.FgRed, color.Bold)
	classColor  = color.New(color.FgCyan)
	fileColor   = color.New(color.FgHiBlack)
	glyphColor  = color.New(color.FgYellow)
)

func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Trace renders t and its cause chain, innermost frames first, in the
// shape a JVM prints but with rewritten identifiers.
func Trace(t *trace.StackTrace, opts Options) string {
	var out strings.Builder
	writeTrace(&out, t, opts, false)
	return out.String()
}

func writeTrace(out *strings.Builder, t *trace.StackTrace, opts Options, isCause bool) {
	if t == nil {
		return
	}

	if isCause {
		out.WriteString("Caused by: ")
	}
	out.WriteString(paint(headerColor, opts.Color, qualifiedName(t)))
	if msg := t.Message.String(); msg != "" {
		out.WriteString(": ")
		out.WriteString(msg)
	}
	out.WriteByte('\n')

	for _, frame := range t.Frames {
		out.WriteString("  at ")
		out.WriteString(paint(classColor, opts.Color, frame.Method.ClassName))
		out.WriteByte('.')
		out.WriteString(frame.Method.MethodName)
		out.WriteString(" ")
		out.WriteString(paint(fileColor, opts.Color, location(frame)))
		out.WriteByte('\n')
	}

	writeTrace(out, t.Cause, opts, true)
}

func qualifiedName(t *trace.StackTrace) string {
	if t.Component == "" {
		return t.ClassName
	}
	return t.Component + "/" + t.ClassName
}

func location(frame trace.Frame) string {
	if frame.Native {
		return "(native)"
	}
	if frame.Line == nil {
		return "(" + frame.File + ")"
	}
	return fmt.Sprintf("(%s:%d)", frame.File, *frame.Line)
}

// Legend renders the glyph key, one glyph and meaning per line, in a
// stable order.
func Legend(opts Options) string {
	glyphs := make([]string, 0, len(demangle.Legend))
	for glyph := range demangle.Legend {
		glyphs = append(glyphs, glyph)
	}
	sort.Strings(glyphs)

	var out strings.Builder
	for _, glyph := range glyphs {
		out.WriteString("  ")
		out.WriteString(paint(glyphColor, opts.Color, glyph))
		// Compound glyphs occupy two cells; keep the meanings aligned.
		if len([]rune(glyph)) < 2 {
			out.WriteByte(' ')
		}
		out.WriteString("  ")
		out.WriteString(demangle.Legend[glyph])
		out.WriteByte('\n')
	}
	return out.String()
}
