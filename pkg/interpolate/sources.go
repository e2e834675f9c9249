package interpolate

import "strings"

// Source looks up a name.
type Source interface {
	Lookup(name string) (string, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name string) (string, bool)

func (f SourceFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// MapSource looks names up in a map.
type MapSource map[string]string

func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// PrefixedSource strips one of Prefixes (followed by a dot) before asking
// Source. Names without any of the prefixes are only looked up when
// AllowUnprefixed is set.
type PrefixedSource struct {
	Prefixes        []string
	Source          Source
	AllowUnprefixed bool
}

func (p PrefixedSource) Lookup(name string) (string, bool) {
	for _, prefix := range p.Prefixes {
		if rest, ok := strings.CutPrefix(name, prefix+"."); ok {
			return p.Source.Lookup(rest)
		}
	}
	if p.AllowUnprefixed {
		return p.Source.Lookup(name)
	}
	return "", false
}

// EnvSource answers names starting with Prefix, e.g. "env.HOME", by calling
// Getenv with the rest of the name.
type EnvSource struct {
	Prefix string
	Getenv func(string) (string, bool)
}

func (e EnvSource) Lookup(name string) (string, bool) {
	if e.Getenv == nil {
		return "", false
	}
	rest, ok := strings.CutPrefix(name, e.Prefix)
	if !ok || rest == "" {
		return "", false
	}
	return e.Getenv(rest)
}
