// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package demangle_test

import (
	"strings"
	"testing"

	"github.com/propensive/digression/internal/demangle"
)

// ---------------------------------------------------------------------------
// Rewrite: dispatch table
// ---------------------------------------------------------------------------

func TestRewrite_SingleTokens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<init>", "ⲛ"},
		{"initial$", "ι"},
		{"lzyINIT", "ℓ"},
		{"super$", "ς"},
		{"$_avoid_name_clash_$", "′"},
		{"$amp$", "&"},
		{"$anonfun$", "λ"},
		{"$anon$", "α"},
		{"$at$", "@"},
		{"$bang$", "!"},
		{"$bar$", "|"},
		{"$bslash$", "\\"},
		{"$colon$", ":"},
		{"$default$", "δ"},
		{"$direct$", "ϕ"},
		{"$div$", "/"},
		{"$eq$", "="},
		{"$extension$", "⋮ε"},
		{"$greater$", ">"},
		{"$hash$", "#"},
		{"$less$", "<"},
		{"$minus$", "-"},
		{"$package$", "⋮π"},
		{"$percent$", "%"},
		{"$plus$", "+"},
		{"$qmark$", "?"},
		{"$tilde$", "~"},
		{"$times$", "*"},
		{"$up$", "^"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := demangle.Rewrite(tc.input, false)
			if got != tc.want {
				t.Errorf("Rewrite(%q, false) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRewrite_MethodContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "constructor carries call marker",
			input: "<init>",
			want:  "ⲛ()",
		},
		{
			name:  "nested method separator",
			input: "outer$inner",
			want:  "outer().inner()",
		},
		{
			name:  "operator method",
			input: "$plus$",
			want:  "+()",
		},
		{
			name:  "plain method",
			input: "transfer",
			want:  "transfer()",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := demangle.Rewrite(tc.input, true)
			if got != tc.want {
				t.Errorf("Rewrite(%q, true) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRewrite_DigitSubscripts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "anonymous function with numeric suffix",
			input: "Foo$anonfun$bar$1",
			want:  "Fooλbar₁",
		},
		{
			name:  "bare anonymous class suffix",
			input: "Foo$12",
			want:  "Foo₁₂",
		},
		{
			name:  "digit mode ends at first non-digit",
			input: "Foo$1bar",
			want:  "Foo₁bar",
		},
		{
			name:  "lazy initializer counter",
			input: "lzyINIT3",
			want:  "ℓ₃",
		},
		{
			name:  "token recognized right after digit mode",
			input: "Foo$2$anonfun$go",
			want:  "Foo₂λgo",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := demangle.Rewrite(tc.input, false)
			if got != tc.want {
				t.Errorf("Rewrite(%q, false) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRewrite_FallbackSeparator(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		method bool
		want   string
	}{
		{
			name:  "inner class separator",
			input: "Outer$Inner",
			want:  "Outer#Inner",
		},
		{
			name:  "partial token falls back one position",
			input: "$anonX",
			want:  "#anonX",
		},
		{
			name:  "run of bare dollars",
			input: "$$$",
			want:  "###",
		},
		{
			name:   "method separator",
			input:  "apply$extra",
			method: true,
			want:   "apply().extra()",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := demangle.Rewrite(tc.input, tc.method)
			if got != tc.want {
				t.Errorf("Rewrite(%q, %v) = %q, want %q", tc.input, tc.method, got, tc.want)
			}
		})
	}
}

func TestRewrite_PassThrough(t *testing.T) {
	inputs := []string{
		"",
		"com.example.Service",
		"already λ rewritten",
		"under_score_name",
	}
	for _, input := range inputs {
		got := demangle.Rewrite(input, false)
		if got != input {
			t.Errorf("Rewrite(%q, false) = %q, want unchanged", input, got)
		}
	}
}

// Adversarial near-miss input must terminate without backtracking blowup.
func TestRewrite_LongInputTerminates(t *testing.T) {
	input := strings.Repeat("$anon", 50000)
	got := demangle.Rewrite(input, false)
	if len(got) == 0 {
		t.Fatal("Rewrite returned empty output for non-empty input")
	}
}

// ---------------------------------------------------------------------------
// Rewrite: synthesized wrapper classes
// ---------------------------------------------------------------------------

func TestRewrite_SpecializedFunctionWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unary specialization",
			input: "scala.runtime.java8.JFunction1$mcII$sp",
			want:  "(Int => Int)",
		},
		{
			name:  "ternary specialization gets tuple domain",
			input: "scala.runtime.java8.JFunction2$mcZID$sp",
			want:  "((Boolean, Int) => Double)",
		},
		{
			name:  "unit and reference tags",
			input: "scala.runtime.java8.JFunction1$mcVL$sp",
			want:  "(Unit => Any)",
		},
		{
			name:  "unknown tag degrades to question mark",
			input: "scala.runtime.java8.JFunction1$mcXY$sp",
			want:  "(? => ?)",
		},
		{
			name:  "missing marker left as pass-one output",
			input: "scala.runtime.java8.JFunctionOdd$sp",
			want:  "scala.runtime.java8.JFunctionOdd#sp",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := demangle.Rewrite(tc.input, false)
			if got != tc.want {
				t.Errorf("Rewrite(%q, false) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestRewrite_ProcedureWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ternary procedure",
			input: "scala.runtime.function.JProcedure3",
			want:  "(Any, Any, Any => Unit)",
		},
		{
			name:  "unary procedure",
			input: "scala.runtime.function.JProcedure1",
			want:  "(Any => Unit)",
		},
		{
			name:  "zero arity still gets one domain",
			input: "scala.runtime.function.JProcedure0",
			want:  "(Any => Unit)",
		},
		{
			name:  "unparseable arity defaults to zero",
			input: "scala.runtime.function.JProcedureX",
			want:  "(Any => Unit)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := demangle.Rewrite(tc.input, false)
			if got != tc.want {
				t.Errorf("Rewrite(%q, false) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Legend
// ---------------------------------------------------------------------------

func TestLegend_CoversEmittedGlyphs(t *testing.T) {
	for _, glyph := range []string{"λ", "α", "ι", "ς", "′", "δ", "⋮ε", "ϕ", "⋮π", "ⲛ", "ℓ"} {
		if _, ok := demangle.Legend[glyph]; !ok {
			t.Errorf("Legend missing entry for glyph %q", glyph)
		}
	}
	for glyph, meaning := range demangle.Legend {
		if meaning == "" {
			t.Errorf("Legend entry %q has empty meaning", glyph)
		}
	}
}
