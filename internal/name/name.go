// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

// Package name validates dot-separated fully-qualified JVM names against
// the platform's lexical grammar.
package name

import (
	"fmt"
	"strings"
)

// reserved is the JVM naming convention's reserved-word set: the Java
// keywords plus the literals true, false, and null, none of which may
// appear as a name segment.
var reserved = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true,
	"true": true, "false": true, "null": true,
}

// Reason is one of the closed set of causes a name can be rejected for.
// The concrete types InvalidChar, InvalidStart, EmptyName, and ReservedWord
// are the only implementations, so callers can switch exhaustively.
type Reason interface {
	reason()
	String() string
}

// InvalidChar reports a character outside [A-Za-z0-9_] in a segment.
type InvalidChar struct{ Char rune }

// InvalidStart reports a segment starting with a decimal digit.
type InvalidStart struct{ Char rune }

// EmptyName reports a zero-length segment.
type EmptyName struct{}

// ReservedWord reports a segment that is a reserved word.
type ReservedWord struct{ Word string }

func (InvalidChar) reason()  {}
func (InvalidStart) reason() {}
func (EmptyName) reason()    {}
func (ReservedWord) reason() {}

func (r InvalidChar) String() string  { return fmt.Sprintf("invalid character %q", r.Char) }
func (r InvalidStart) String() string { return fmt.Sprintf("may not start with digit %q", r.Char) }
func (EmptyName) String() string      { return "name segment is empty" }
func (r ReservedWord) String() string { return fmt.Sprintf("%q is a reserved word", r.Word) }

// Error is the typed failure returned by Validate. It carries the full
// rejected name and the specific Reason for the first violating segment;
// violations are never aggregated.
type Error struct {
	RejectedName string
	Reason       Reason
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.RejectedName, e.Reason)
}

// ValidatedName is a dot-separated name that has passed validation. The
// zero value is not meaningful; values are only produced by Validate.
type ValidatedName struct {
	segments []string
}

// String returns the full dotted name.
func (n ValidatedName) String() string { return strings.Join(n.segments, ".") }

// ClassName returns the last segment.
func (n ValidatedName) ClassName() string { return n.segments[len(n.segments)-1] }

// PackageName returns all but the last segment joined by dots, or the
// empty string for a single-segment name.
func (n ValidatedName) PackageName() string {
	return strings.Join(n.segments[:len(n.segments)-1], ".")
}

// Segments returns a copy of the name's segments in order.
func (n ValidatedName) Segments() []string {
	out := make([]string, len(n.segments))
	copy(out, n.segments)
	return out
}

// Validate checks name against the lexical grammar and returns the
// validated form, or an *Error describing the first violation found.
// Rules apply per segment, in order: non-empty, not reserved, characters
// restricted to [A-Za-z0-9_], and no leading digit.
func Validate(raw string) (ValidatedName, error) {
	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if reason := checkSegment(segment); reason != nil {
			return ValidatedName{}, &Error{RejectedName: raw, Reason: reason}
		}
	}
	return ValidatedName{segments: segments}, nil
}

func checkSegment(segment string) Reason {
	if len(segment) == 0 {
		return EmptyName{}
	}
	if reserved[segment] {
		return ReservedWord{Word: segment}
	}
	for _, c := range segment {
		if !isWordChar(c) {
			return InvalidChar{Char: c}
		}
	}
	if c := rune(segment[0]); c >= '0' && c <= '9' {
		return InvalidStart{Char: c}
	}
	return nil
}

func isWordChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
