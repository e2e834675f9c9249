// Package transform holds the named string transformations that can be
// chained after a value has been formatted, e.g. "trim,lowercase,use_dash".
//
// The set of transformers is fixed when the package is loaded and never
// changes afterwards, so it is safe to use from anywhere.
package transform

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/arthur-debert/buildprops/pkg/errors"
)

// Func transforms one string.
type Func func(string) string

// Transformer is a named Func.
type Transformer struct {
	Name  string
	Apply Func
}

var registry = map[string]Func{
	"lowercase":                 strings.ToLower,
	"uppercase":                 strings.ToUpper,
	"remove_whitespace":         removeWhitespace,
	"underscore_for_whitespace": collapser(unicode.IsSpace, '_'),
	"dash_for_whitespace":       collapser(unicode.IsSpace, '-'),
	"use_underscore":            collapser(isSpaceOrSeparator, '_'),
	"use_dash":                  collapser(isSpaceOrSeparator, '-'),
	"trim":                      func(s string) string { return strings.TrimFunc(s, unicode.IsSpace) },
}

// Names returns the known transformer names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Lookup returns the transformer registered under name (case-insensitive).
func Lookup(name string) (Transformer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	fn, ok := registry[key]
	if !ok {
		return Transformer{}, errors.Newf(errors.ErrInvalidDefinition, "transformer '%s' is unknown", name).
			WithDetail("transformer", name)
	}
	return Transformer{Name: key, Apply: fn}, nil
}

// Parse splits a comma separated list of transformer names. Empty entries
// are dropped; any unknown name is an error.
func Parse(list string) ([]Transformer, error) {
	var out []Transformer
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Apply runs the transformers named in list over value, left to right.
// Absent values are passed through untouched.
func Apply(list string, value string, present bool) (string, bool, error) {
	transformers, err := Parse(list)
	if err != nil {
		return "", false, err
	}
	if !present {
		return "", false, nil
	}
	for _, t := range transformers {
		value = t.Apply(value)
	}
	return value, true, nil
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isSpaceOrSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_'
}

// collapser replaces every run of characters matching match with a single
// replacement character.
func collapser(match func(rune) bool, replacement rune) Func {
	return func(s string) string {
		var b strings.Builder
		b.Grow(len(s))
		inRun := false
		for _, r := range s {
			if match(r) {
				if !inRun {
					b.WriteRune(replacement)
					inRun = true
				}
				continue
			}
			inRun = false
			b.WriteRune(r)
		}
		return b.String()
	}
}
