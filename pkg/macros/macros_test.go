package macros

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/testutil"
	"github.com/arthur-debert/buildprops/pkg/values"
)

type mockMacro struct {
	mock.Mock
}

func (m *mockMacro) Value(def *definitions.Macro, provider values.Provider, ctx *buildctx.Context) (string, bool, error) {
	args := m.Called(def, provider, ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func macroDef(params map[string]string) *definitions.Macro {
	def := definitions.NewMacro("m", "demo")
	for k, v := range params {
		def.Properties[k] = v
	}
	return def
}

func TestDefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{"demo", "env", "property"}, Default.Types())
	assert.Equal(t, []string{"macros.demo"}, Default.Classes())
}

func TestLookupByType(t *testing.T) {
	r := NewRegistry()
	m := &mockMacro{}
	require.NoError(t, r.RegisterType("custom", m))

	def := definitions.NewMacro("m", "Custom")
	got, err := r.Lookup(def)
	require.NoError(t, err)

	ctx := buildctx.New(nil, buildctx.Release)
	provider := testutil.NewEmptyProvider()
	m.On("Value", def, provider, ctx).Return("v", true, nil).Once()

	v, ok, err := got.Value(def, provider, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	m.AssertExpectations(t)
}

func TestLookupByClassCreatesInstances(t *testing.T) {
	r := NewRegistry()
	created := 0
	require.NoError(t, r.RegisterClass("my.Class", func() MacroType {
		created++
		return Demo{}
	}))

	def := &definitions.Macro{Base: definitions.Base{ID: "m"}, MacroClass: "my.Class"}
	_, err := r.Lookup(def)
	require.NoError(t, err)
	_, err = r.Lookup(def)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup(definitions.NewMacro("m", "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingResource))
	assert.Contains(t, err.Error(), "nope")

	_, err = r.Lookup(&definitions.Macro{Base: definitions.Base{ID: "m"}, MacroClass: "x.Y"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingResource))

	_, err = r.Lookup(&definitions.Macro{Base: definitions.Base{ID: "m"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDefinition))
}

func TestDemo(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		provider values.Provider
		want     string
		present  bool
	}{
		{"default is static", nil, values.NullProvider{}, "static-value", true},
		{"static", map[string]string{"type": "static"}, values.NullProvider{}, "static-value", true},
		{"property", map[string]string{"type": "property"}, testutil.NewProvider("stored"), "stored", true},
		{"property absent", map[string]string{"type": "property"}, values.NullProvider{}, "", false},
		{"value", map[string]string{"type": "value", "value": "given"}, values.NullProvider{}, "given", true},
		{"value absent", map[string]string{"type": "value"}, values.NullProvider{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok, err := Demo{}.Value(macroDef(tt.params), tt.provider, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestEnv(t *testing.T) {
	ctx := buildctx.New(nil, buildctx.Release)
	ctx.LookupEnv = func(name string) (string, bool) {
		if name == "BUILD_ID" {
			return "77", true
		}
		return "", false
	}

	v, ok, err := Env(macroDef(map[string]string{"name": "BUILD_ID"}), nil, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "77", v)

	v, ok, err = Env(macroDef(map[string]string{"name": "OTHER", "default": "none"}), nil, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "none", v)

	_, ok, err = Env(macroDef(map[string]string{"name": "OTHER"}), nil, ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Env(macroDef(nil), nil, ctx)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDefinition))
}

func TestProperty(t *testing.T) {
	ctx := buildctx.New(&buildctx.Project{Version: "2.0", Properties: map[string]string{"owner": "team"}}, buildctx.Release)
	ctx.BuildProperties["version"] = "override"

	v, ok, err := Property(macroDef(map[string]string{"name": "version"}), nil, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "override", v, "build properties win over the project model")

	v, _, err = Property(macroDef(map[string]string{"name": "owner"}), nil, ctx)
	require.NoError(t, err)
	assert.Equal(t, "team", v)

	v, ok, err = Property(macroDef(map[string]string{"name": "nothing", "default": "d"}), nil, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "d", v)
}
