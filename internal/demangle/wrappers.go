// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package demangle

import (
	"strconv"
	"strings"
)

// Synthesized function-wrapper class names, as they look after the first
// rewriting pass has turned their "$" separators into "#".
const (
	specializedPrefix = "scala.runtime.java8.JFunction"
	specializedMarker = "#mc"
	specializedSuffix = "#sp"
	procedurePrefix   = "scala.runtime.function.JProcedure"
)

// primitiveNames maps the one-letter type tags embedded in a specialized
// wrapper name to semantic primitive-type names.
var primitiveNames = map[byte]string{
	'Z': "Boolean",
	'I': "Int",
	'J': "Long",
	'V': "Unit",
	'S': "Short",
	'F': "Float",
	'C': "Char",
	'D': "Double",
	'L': "Any",
}

// rewriteWrapperClass recognizes the two wrapper-class name shapes the
// compiler synthesizes for specialized call sites and renders them as
// arrow-type signatures. Anything else is returned unchanged.
func rewriteWrapperClass(name string) string {
	if strings.HasPrefix(name, specializedPrefix) && strings.HasSuffix(name, specializedSuffix) {
		mark := strings.Index(name, specializedMarker)
		if mark < 0 {
			return name
		}
		tags := name[mark+len(specializedMarker) : len(name)-len(specializedSuffix)]
		types := make([]string, 0, len(tags))
		for j := 0; j < len(tags); j++ {
			primitive, ok := primitiveNames[tags[j]]
			if !ok {
				primitive = "?"
			}
			types = append(types, primitive)
		}
		return signature(types)
	}

	if strings.HasPrefix(name, procedurePrefix) {
		arity, err := strconv.Atoi(name[len(procedurePrefix):])
		if err != nil || arity < 0 {
			arity = 0
		}
		if arity < 1 {
			// Nullary procedures still render a single Any domain.
			arity = 1
		}
		domain := strings.Repeat("Any, ", arity-1) + "Any"
		return "(" + domain + " => Unit)"
	}

	return name
}

// signature renders a specialized type-tag sequence as an arrow type. Up to
// two entries render flat; longer sequences get a tuple domain with the
// final entry as the return type.
func signature(types []string) string {
	switch len(types) {
	case 0:
		return "()"
	case 1:
		return "(" + types[0] + ")"
	case 2:
		return "(" + types[0] + " => " + types[1] + ")"
	default:
		last := len(types) - 1
		return "((" + strings.Join(types[:last], ", ") + ") => " + types[last] + ")"
	}
}
