package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/policy"
)

func TestInterpolate(t *testing.T) {
	values := MapSource{
		"whatWorld": "#{first}",
		"first":     "decadent",
		"world":     "rome",
	}

	tests := []struct {
		name       string
		template   string
		want       string
		unresolved []string
	}{
		{name: "no placeholders", template: "plain", want: "plain"},
		{name: "missing name is stripped", template: "nice-#{world2}-hat", want: "nice--hat", unresolved: []string{"world2"}},
		{name: "nested values", template: "nice-#{whatWorld}-#{world}-hat", want: "nice-decadent-rome-hat"},
		{name: "first brace closes", template: "#{first}}", want: "decadent}"},
		{name: "unterminated tail is literal", template: "#{world}-#{first", want: "rome-#{first"},
		{name: "only unterminated", template: "#{", want: "#{"},
		{name: "duplicate misses reported once", template: "#{a}#{a}", want: "", unresolved: []string{"a"}},
	}

	ip := New(values)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ip.Interpolate(tt.template)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, tt.unresolved, res.Unresolved)
		})
	}
}

func TestInterpolateTerminatesOnCycles(t *testing.T) {
	ip := New(MapSource{
		"self": "x#{self}",
		"a":    "#{b}",
		"b":    "#{project.a}",
	})

	res := ip.Interpolate("#{self}")
	assert.Equal(t, "x", res.Value)
	assert.Equal(t, []string{"self"}, res.Unresolved)

	res = ip.Interpolate("[#{a}]")
	assert.Equal(t, "[]", res.Value)
	assert.Equal(t, []string{"project.a"}, res.Unresolved)
}

func TestSynonymPrefixes(t *testing.T) {
	project := PrefixedSource{
		Prefixes:        SynonymPrefixes,
		Source:          MapSource{"version": "1.2.3", "name": "demo"},
		AllowUnprefixed: true,
	}
	ip := New(MapSource{"label": "#{name}-#{pom.version}"}, project)

	assert.Equal(t, "1.2.3/1.2.3/1.2.3", ip.Interpolate("#{project.version}/#{pom.version}/#{version}").Value)
	assert.Equal(t, "demo-1.2.3", ip.Interpolate("#{label}").Value)

	strict := New(PrefixedSource{Prefixes: SynonymPrefixes, Source: MapSource{"name": "demo"}})
	res := strict.Interpolate("#{name}|#{project.name}")
	assert.Equal(t, "|demo", res.Value)
	assert.Equal(t, []string{"name"}, res.Unresolved)
}

func TestPrecedenceFollowsSourceOrder(t *testing.T) {
	ip := New(MapSource{"name": "first"}, MapSource{"name": "second", "other": "x"})

	assert.Equal(t, "first-x", ip.Interpolate("#{name}-#{other}").Value)

	v, ok := ip.Lookup("name")
	assert.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestEnvSource(t *testing.T) {
	env := map[string]string{"HOME": "/home/me"}
	src := EnvSource{Prefix: "env.", Getenv: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
	ip := New(src)

	assert.Equal(t, "/home/me", ip.Interpolate("#{env.HOME}").Value)

	res := ip.Interpolate("#{HOME}#{env.}")
	assert.Equal(t, "", res.Value)
	assert.Equal(t, []string{"HOME", "env."}, res.Unresolved)

	_, ok := EnvSource{Prefix: "env."}.Lookup("env.HOME")
	assert.False(t, ok)
}

func TestResolvePolicies(t *testing.T) {
	ip := New(MapSource{})

	value, err := ip.Resolve("nice-#{world}-hat", policy.Ignore)
	require.NoError(t, err)
	assert.Equal(t, "nice--hat", value)

	value, err = ip.Resolve("nice-#{world}-hat", policy.Warn)
	require.NoError(t, err)
	assert.Equal(t, "nice--hat", value)

	_, err = ip.Resolve("nice-#{world}-hat", policy.Fail)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingResource))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, errors.ErrUnresolvedPlaceholder, details["reason"])
	assert.Equal(t, []string{"world"}, details["placeholders"])

	value, err = New(MapSource{"world": "rome"}).Resolve("nice-#{world}-hat", policy.Fail)
	require.NoError(t, err)
	assert.Equal(t, "nice-rome-hat", value)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "x", Normalize("project.x"))
	assert.Equal(t, "x", Normalize("pom.x"))
	assert.Equal(t, "x", Normalize("x"))
	assert.Equal(t, "env.x", Normalize("env.x"))
	assert.Equal(t, "projectx", Normalize("projectx"))
}
