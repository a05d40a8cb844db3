package imports

import (
	"regexp"
	"strings"
)

// importRe matches the import statement forms:
//
//	import "x";
//	import "x" as y;
//	import * as y from "x";
//	import {a, b as c} from "x";
var importRe = regexp.MustCompile(
	`\bimport\s+(?:(?:\*\s*as\s+\w+|\{[^}]*\})\s*from\s*)?["']([^"']+)["'](?:\s+as\s+\w+)?\s*;`)

// lexemeRe matches string literals and comments. Literals are matched so that a `//` inside
// one is not taken for a comment.
var lexemeRe = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|//[^\n]*|/\*[\s\S]*?\*/`)

// MaskComments blanks out every comment of the text. Offsets and line breaks are kept.
func MaskComments(text string) string {
	return lexemeRe.ReplaceAllStringFunc(text, func(m string) string {
		if m[0] != '/' {
			return m
		}
		masked := []byte(m)
		for i, c := range masked {
			if c != '\n' {
				masked[i] = ' '
			}
		}
		return string(masked)
	})
}

func statements(text string) [][]int {
	return importRe.FindAllStringSubmatchIndex(MaskComments(text), -1)
}

// Specifiers returns the import specifiers of the source text in statement order.
// Imports inside comments are ignored.
func Specifiers(text string) []string {
	matches := statements(text)
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		if specifier := strings.TrimSpace(text[m[2]:m[3]]); specifier != "" {
			res = append(res, specifier)
		}
	}
	return res
}

// StripStatements removes all import statements from the source text, leaving comments intact.
func StripStatements(text string) string {
	matches := statements(text)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m[0]])
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}
