// Package flatten merges a resolved source set into a single self-contained file, the form
// block-explorer verifiers accept.
package flatten

import (
	"regexp"
	"strings"

	"github.com/NilFoundation/solforge/internal/imports"
)

const Banner = "// Flattened source: every dependency precedes the units that use it."

var (
	licenseLineRe  = regexp.MustCompile(`(?m)^[ \t]*//[ \t]*SPDX-License-Identifier:.*$`)
	licenseBlockRe = regexp.MustCompile(`/\*[ \t]*SPDX-License-Identifier:[^*\n]*\*+/`)
	// licenseTagRe catches the identifier left inside longer block comments.
	licenseTagRe = regexp.MustCompile(`SPDX-License-Identifier:[ \t]*([^\n*]*)`)
	pragmaRe     = regexp.MustCompile(`\bpragma\s+solidity\b[^;]*;`)
	anyPragmaRe  = regexp.MustCompile(`\bpragma\s+[^;]*;`)
	blankLinesRe = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

type options struct {
	namespace string
}

type Option func(*options)

// WithNamespace sets the dependency root used to resolve imports.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// License returns the first SPDX license of the text as a line comment, whichever comment
// form it was written in.
func License(text string) string {
	m := licenseTagRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	id := strings.TrimSpace(m[1])
	if id == "" {
		return ""
	}
	return "// SPDX-License-Identifier: " + id
}

// Pragma returns the first `pragma solidity` statement of the text.
func Pragma(text string) string {
	loc := pragmaRe.FindStringIndex(imports.MaskComments(text))
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(text[loc[0]:loc[1]])
}

// Clean strips license comments, pragmas of every kind and imports from a unit body.
func Clean(text string) string {
	return clean(text, anyPragmaRe)
}

// cleanEntry is Clean for the entry unit, which keeps its abicoder and experimental pragmas.
func cleanEntry(text string) string {
	return clean(text, pragmaRe)
}

func clean(text string, pragmas *regexp.Regexp) string {
	text = licenseLineRe.ReplaceAllString(text, "")
	text = licenseBlockRe.ReplaceAllString(text, "")
	text = licenseTagRe.ReplaceAllString(text, "")
	text = removeOutsideComments(pragmas, text)
	text = imports.StripStatements(text)
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func removeOutsideComments(re *regexp.Regexp, text string) string {
	matches := re.FindAllStringIndex(imports.MaskComments(text), -1)
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m[0]])
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// Flatten inlines every unit reachable from the entry, dependencies first, each exactly once.
// License and version pragma are taken from the entry only, and pragmas of dependencies are
// dropped. Imports missing from set are skipped.
func Flatten(fileName, entryText string, set *imports.SourceSet, opts ...Option) string {
	o := options{namespace: imports.DefaultNamespace}
	for _, opt := range opts {
		opt(&o)
	}

	f := &flattener{
		namespace: o.namespace,
		set:       set,
		included:  map[string]struct{}{fileName: {}},
	}
	if set != nil {
		if entry, ok := set.Lookup(fileName); ok {
			f.included[entry.Path] = struct{}{}
		}
	}
	f.visit(&imports.SourceUnit{Path: fileName, Name: fileName, Content: entryText}, true)

	parts := make([]string, 0, len(f.bodies)+3)
	if license := License(entryText); license != "" {
		parts = append(parts, license)
	}
	if pragma := Pragma(entryText); pragma != "" {
		parts = append(parts, pragma)
	}
	parts = append(parts, Banner)
	parts = append(parts, f.bodies...)
	return strings.Join(parts, "\n") + "\n"
}

type flattener struct {
	namespace string
	set       *imports.SourceSet
	included  map[string]struct{}
	bodies    []string
}

func (f *flattener) visit(unit *imports.SourceUnit, entry bool) {
	for _, specifier := range imports.Specifiers(unit.Content) {
		dep, ok := f.lookup(unit, specifier)
		if !ok {
			continue
		}
		if _, ok := f.included[dep.Path]; ok {
			continue
		}
		f.included[dep.Path] = struct{}{}
		f.visit(dep, false)
	}

	body := Clean(unit.Content)
	if entry {
		body = cleanEntry(unit.Content)
	}
	if body != "" {
		f.bodies = append(f.bodies, body)
	}
}

func (f *flattener) lookup(unit *imports.SourceUnit, specifier string) (*imports.SourceUnit, bool) {
	if f.set == nil {
		return nil, false
	}

	name, canonical := imports.Resolve(f.namespace, unit.Name, specifier)
	if dep, ok := f.set.Lookup(name); ok {
		return dep, true
	}
	if dep, ok := f.set.Lookup(canonical); ok {
		return dep, true
	}

	// Retry with the specifier taken as rooted in the dependency namespace.
	_, rooted := imports.Resolve(f.namespace, "", specifier)
	return f.set.Lookup(rooted)
}
