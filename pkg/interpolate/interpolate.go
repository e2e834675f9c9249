package interpolate

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/policy"
)

const (
	startTag = "#{"
	endTag   = "}"
)

// SynonymPrefixes name the project model. "#{project.x}", "#{pom.x}" and
// "#{x}" refer to the same value.
var SynonymPrefixes = []string{"project", "pom"}

// Result is the outcome of interpolating one template.
type Result struct {
	Value string
	// Unresolved lists placeholder names that had no value or formed a
	// cycle, in the order first seen.
	Unresolved []string
}

// Interpolator resolves placeholders against an ordered list of sources.
type Interpolator struct {
	sources []Source
}

// New creates an interpolator. Earlier sources take precedence.
func New(sources ...Source) *Interpolator {
	return &Interpolator{sources: sources}
}

// Lookup returns the raw, uninterpolated value for name.
func (ip *Interpolator) Lookup(name string) (string, bool) {
	for _, src := range ip.sources {
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// Interpolate replaces every #{name} in template.
func (ip *Interpolator) Interpolate(template string) Result {
	st := &state{seen: make(map[string]bool)}
	value := ip.expand(template, nil, st)
	return Result{Value: value, Unresolved: st.unresolved}
}

// Resolve interpolates template and applies onMissing when any placeholder
// stayed unresolved. With a non failing policy the partially resolved value
// is returned.
func (ip *Interpolator) Resolve(template string, onMissing policy.IgnoreWarnFail) (string, error) {
	res := ip.Interpolate(template)
	if len(res.Unresolved) == 0 {
		return res.Value, nil
	}

	subject := fmt.Sprintf("property '%s'", strings.Join(res.Unresolved, "', '"))
	if err := onMissing.Check(false, subject); err != nil {
		return "", errors.Wrapf(err, errors.ErrMissingResource, "can not resolve '%s'", template).
			WithDetail("placeholders", res.Unresolved).
			WithDetail("reason", errors.ErrUnresolvedPlaceholder)
	}
	return res.Value, nil
}

type state struct {
	unresolved []string
	seen       map[string]bool
}

func (s *state) miss(name string) {
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.unresolved = append(s.unresolved, name)
}

// expand resolves the placeholders of template. chain holds the normalised
// names currently being expanded.
func (ip *Interpolator) expand(template string, chain []string, st *state) string {
	if !strings.Contains(template, startTag) {
		return template
	}

	head, tail := splitUnterminated(template)
	if head == "" {
		return tail
	}

	logger := logging.GetLogger("interpolate")
	out, err := fasttemplate.ExecuteFuncStringWithErr(head, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		name := strings.TrimSpace(tag)
		key := Normalize(name)
		for _, active := range chain {
			if active == key {
				logger.Debug().Str("name", name).Strs("chain", chain).Msg("recursive reference")
				st.miss(name)
				return 0, nil
			}
		}

		raw, ok := ip.Lookup(name)
		if !ok {
			logger.Trace().Str("name", name).Msg("no value")
			st.miss(name)
			return 0, nil
		}

		next := append(chain[:len(chain):len(chain)], key)
		return w.Write([]byte(ip.expand(raw, next, st)))
	})
	if err != nil {
		logger.Debug().Err(err).Str("template", template).Msg("template kept literally")
		return template
	}
	return out + tail
}

// splitUnterminated separates a trailing "#{" that has no closing brace
// from the part of template that can be scanned.
func splitUnterminated(template string) (head, tail string) {
	from := strings.LastIndex(template, endTag) + 1
	i := strings.Index(template[from:], startTag)
	if i < 0 {
		return template, ""
	}
	return template[:from+i], template[from+i:]
}

// Normalize strips a synonym prefix from name.
func Normalize(name string) string {
	for _, prefix := range SynonymPrefixes {
		if rest, ok := strings.CutPrefix(name, prefix+"."); ok {
			return rest
		}
	}
	return name
}
