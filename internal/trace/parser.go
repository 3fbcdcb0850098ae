// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"strconv"
	"strings"

	apperrors "github.com/propensive/digression/internal/errors"
)

// parsedThrowable implements Throwable over the textual form a JVM prints.
type parsedThrowable struct {
	typeName string
	message  string
	frames   []RawFrame
	cause    *parsedThrowable
}

func (p *parsedThrowable) TypeName() string        { return p.typeName }
func (p *parsedThrowable) Message() string         { return p.message }
func (p *parsedThrowable) StackFrames() []RawFrame { return p.frames }

func (p *parsedThrowable) Cause() Throwable {
	if p.cause == nil {
		return nil
	}
	return p.cause
}

// Parse reads a printed JVM stack trace ("Type: message", tab-indented
// "at class.method(File:line)" lines, "Caused by:" sections) and exposes
// it through the Throwable capability so it can be assembled.
//
// Parsing is best-effort: malformed frame lines and suppressed-frame
// counters ("... N more") are skipped rather than failing the whole
// trace. Input with no exception header at all is an error.
func Parse(text string) (Throwable, error) {
	var root, current *parsedThrowable

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "at "):
			if current == nil {
				return nil, apperrors.WrapParseFailed("frame line before exception header", nil)
			}
			if frame, ok := parseFrameLine(strings.TrimPrefix(trimmed, "at ")); ok {
				current.frames = append(current.frames, frame)
			}
		case strings.HasPrefix(trimmed, "..."):
			// Suppressed common-frame counter; nothing to reconstruct.
		default:
			next := parseHeader(strings.TrimPrefix(trimmed, "Caused by: "))
			if current == nil {
				root = next
			} else {
				current.cause = next
			}
			current = next
		}
	}

	if root == nil {
		return nil, apperrors.ErrEmptyTrace
	}
	return root, nil
}

func parseHeader(line string) *parsedThrowable {
	if typeName, message, ok := strings.Cut(line, ": "); ok {
		return &parsedThrowable{typeName: typeName, message: message}
	}
	return &parsedThrowable{typeName: strings.TrimSuffix(line, ":")}
}

// parseFrameLine parses "class.method(location)" into a raw descriptor.
// The location is "File:line", a bare file, "Native Method", or
// "Unknown Source".
func parseFrameLine(s string) (RawFrame, bool) {
	open := strings.LastIndex(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return RawFrame{}, false
	}
	call := s[:open]
	location := s[open+1 : len(s)-1]

	// Java 9+ prefixes frames with "module/" qualifiers.
	if slash := strings.LastIndex(call, "/"); slash >= 0 {
		call = call[slash+1:]
	}
	dot := strings.LastIndex(call, ".")
	if dot < 0 {
		return RawFrame{}, false
	}

	frame := RawFrame{
		ClassName:  call[:dot],
		MethodName: call[dot+1:],
		Line:       -1,
	}

	switch location {
	case "Native Method":
		frame.Native = true
	case "Unknown Source", "":
	default:
		if colon := strings.LastIndex(location, ":"); colon >= 0 {
			if n, err := strconv.Atoi(location[colon+1:]); err == nil {
				frame.File = location[:colon]
				frame.Line = n
				break
			}
		}
		frame.File = location
	}
	return frame, true
}
