// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

// Package demangle rewrites identifiers mangled by the Scala compiler into
// compact symbolic display text.
//
// The compiler encodes operators, anonymous functions, lambdas, and
// synthesized call-site wrappers into ASCII-safe tokens ("$plus$",
// "$anonfun$", "lzyINIT3", ...). Rewrite reverses that encoding: each token
// becomes a single glyph or short symbol, and numeric suffixes become
// Unicode subscripts. The transformation is purely syntactic and total:
// unrecognized input passes through unchanged.
package demangle

import (
	"strings"
	"unicode/utf8"
)

// token is one entry in the literal dispatch table. When digits is true the
// scanner switches to digit-subscript mode after emitting the glyph.
type token struct {
	literal string
	glyph   string
	digits  bool
}

// tokens is consulted in order at every scan position; the first literal
// that prefixes the remaining input wins. Tokens sharing a prefix must be
// listed longest first ("$anonfun$" before "$anon$") so the lookup keeps
// longest-available-prefix semantics.
var tokens = []token{
	{literal: "<init>", glyph: "ⲛ"},
	{literal: "initial$", glyph: "ι"},
	{literal: "lzyINIT", glyph: "ℓ", digits: true},
	{literal: "super$", glyph: "ς"},
	{literal: "$_avoid_name_clash_$", glyph: "′"},
	{literal: "$amp$", glyph: "&"},
	{literal: "$anonfun$", glyph: "λ"},
	{literal: "$anon$", glyph: "α"},
	{literal: "$at$", glyph: "@"},
	{literal: "$bang$", glyph: "!"},
	{literal: "$bar$", glyph: "|"},
	{literal: "$bslash$", glyph: "\\"},
	{literal: "$colon$", glyph: ":"},
	{literal: "$default$", glyph: "δ"},
	{literal: "$direct$", glyph: "ϕ"},
	{literal: "$div$", glyph: "/"},
	{literal: "$eq$", glyph: "="},
	{literal: "$extension$", glyph: "⋮ε"},
	{literal: "$greater$", glyph: ">"},
	{literal: "$hash$", glyph: "#"},
	{literal: "$less$", glyph: "<"},
	{literal: "$minus$", glyph: "-"},
	{literal: "$package$", glyph: "⋮π"},
	{literal: "$percent$", glyph: "%"},
	{literal: "$plus$", glyph: "+"},
	{literal: "$qmark$", glyph: "?"},
	{literal: "$tilde$", glyph: "~"},
	{literal: "$times$", glyph: "*"},
	{literal: "$up$", glyph: "^"},
}

// Legend maps every glyph Rewrite can emit to its plain-language meaning,
// for building a key alongside rendered traces.
var Legend = map[string]string{
	"λ":  "anonymous function",
	"α":  "anonymous class",
	"ι":  "initialization",
	"ς":  "super reference",
	"δ":  "default argument",
	"⋮ε": "extension method",
	"ϕ":  "direct invocation",
	"⋮π": "package-level definition",
	"ⲛ":  "constructor",
	"ℓ":  "lazy initializer",
	"′":  "name-clash avoidance",
}

// Rewrite converts one mangled identifier into display text. It never
// fails: any input that matches no token is copied through unchanged.
//
// When method is true the identifier is treated as a method name: bare "$"
// separators render as "()." instead of the inner-class separator "#", and
// the result carries a trailing "()" call marker.
func Rewrite(raw string, method bool) string {
	var out strings.Builder
	out.Grow(len(raw))

	// Explicit cursor and mode flag; every branch advances the cursor by
	// at least one byte, so the scan is linear in len(raw).
	i := 0
	digits := false

scan:
	for i < len(raw) {
		c := raw[i]

		if digits {
			if c >= '0' && c <= '9' {
				out.WriteRune(subscript(c))
				i++
				continue
			}
			// Leave digit mode and reprocess this position normally.
			digits = false
		}

		for _, tok := range tokens {
			if strings.HasPrefix(raw[i:], tok.literal) {
				out.WriteString(tok.glyph)
				i += len(tok.literal)
				digits = tok.digits
				continue scan
			}
		}

		if c == '$' {
			if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '9' {
				// Anonymous numeric suffix: the "$" itself is silent.
				digits = true
				i++
				continue
			}
			if method {
				out.WriteString("().")
			} else {
				out.WriteByte('#')
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(raw[i:])
		out.WriteRune(r)
		i += size
	}

	text := rewriteWrapperClass(out.String())
	if method {
		text += "()"
	}
	return text
}

// subscript maps an ASCII decimal digit to its Unicode subscript form.
func subscript(c byte) rune {
	return rune(0x2080 + int(c-'0'))
}
