package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/groups"
	"github.com/arthur-debert/buildprops/pkg/policy"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.False(t, cfg.Skip)
	assert.Empty(t, cfg.ActiveGroups)
	assert.Equal(t, policy.Fail, cfg.OnDuplicateProperty)
	assert.Equal(t, policy.Fail, cfg.OnMissingProperty)
	assert.Empty(t, cfg.Definitions())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "buildprops.toml", `
active_groups = ["main"]
on_missing_property = "warn"

[[numbers]]
id = "build"
property_file = "state/build.properties"
on_missing_file = "create"
field_number = 1
increment = 2

[[strings]]
id = "channel"
values = ["", "stable"]
blank_is_valid = false
transformers = ["trim", "uppercase"]

[[dates]]
id = "when"
format = "2006"
timezone = "UTC"
value = 1700000000000

[[macros]]
id = "user"
macro_type = "env"
[macros.properties]
name = "USER"

[[uuids]]
id = "run"
property_file = "/abs/run.properties"

[[groups]]
id = "main"
active_on_snapshot = false
on_duplicate_property = "ignore"
[groups.properties]
"b.label" = "#{build}"
a = "#{channel}"
`)

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "buildprops.toml"), cfg.Path)
	assert.Equal(t, []string{"main"}, cfg.ActiveGroups)
	assert.Equal(t, policy.Warn, cfg.OnMissingProperty)

	require.Len(t, cfg.Numbers, 1)
	n := cfg.Numbers[0]
	assert.Equal(t, "build", n.ID)
	assert.Equal(t, filepath.Join(dir, "state", "build.properties"), n.PropertyFile)
	assert.Equal(t, policy.MissingCreate, n.OnMissingFile)
	assert.Equal(t, policy.MissingFail, n.OnMissingProperty)
	assert.Equal(t, 1, n.FieldNumber)
	assert.Equal(t, 2, n.Increment)
	initial, ok := n.InitialValue()
	assert.True(t, ok)
	assert.Equal(t, "0", initial)

	require.Len(t, cfg.Strings, 1)
	s := cfg.Strings[0]
	assert.Equal(t, []string{"", "stable"}, s.Values)
	assert.False(t, s.BlankIsValid)
	assert.Equal(t, "trim,uppercase", s.Transformers)

	require.Len(t, cfg.Dates, 1)
	require.NotNil(t, cfg.Dates[0].Value)
	assert.Equal(t, int64(1700000000000), *cfg.Dates[0].Value)
	assert.Equal(t, "UTC", cfg.Dates[0].Timezone)

	require.Len(t, cfg.Macros, 1)
	assert.Equal(t, "env", cfg.Macros[0].MacroType)
	assert.Equal(t, map[string]string{"name": "USER"}, cfg.Macros[0].Properties)

	require.Len(t, cfg.UUIDs, 1)
	assert.Equal(t, "/abs/run.properties", cfg.UUIDs[0].PropertyFile)

	require.Len(t, cfg.Groups, 1)
	g := cfg.Groups[0]
	assert.True(t, g.ActiveOnRelease)
	assert.False(t, g.ActiveOnSnapshot)
	assert.Equal(t, policy.Ignore, g.OnDuplicateProperty)
	assert.Equal(t, policy.Warn, g.OnMissingProperty, "run level default flows into the group")
	assert.Equal(t, []groups.Property{
		{Name: "a", Value: "#{channel}"},
		{Name: "b.label", Value: "#{build}"},
	}, g.Properties)

	assert.Len(t, cfg.Definitions(), 5)
	for _, d := range cfg.Definitions() {
		require.NoError(t, d.Check(), d.Common().ID)
	}
	for _, g := range cfg.Groups {
		require.NoError(t, g.Check())
	}
}

func TestLoadYAMLWithOrderedProperties(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yml", `
active_groups: [g]
groups:
  - id: g
    properties:
      - name: zeta
        value: "1"
      - name: alpha
        value: "#{x}"
        transformers: uppercase
strings:
  - id: x
    values: [hello]
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, []groups.Property{
		{Name: "zeta", Value: "1"},
		{Name: "alpha", Value: "#{x}", Transformers: "uppercase"},
	}, cfg.Groups[0].Properties)
	require.Len(t, cfg.Strings, 1)
	assert.True(t, cfg.Strings[0].BlankIsValid, "constructor default kept")
}

func TestLoadDiscoveryOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "buildprops.yaml", "skip: true\n")
	assert.Equal(t, filepath.Join(dir, "buildprops.yaml"), Find(dir))

	writeFile(t, dir, ".buildprops.toml", "skip = false\n")
	assert.Equal(t, filepath.Join(dir, ".buildprops.toml"), Find(dir))

	assert.Empty(t, Find(t.TempDir()))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "buildprops.toml", "active_groups = [\"a\"]\n")
	t.Setenv("BUILDPROPS_ACTIVE_GROUPS", "b, c")
	t.Setenv("BUILDPROPS_SKIP", "true")

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.True(t, cfg.Skip)
	assert.Equal(t, []string{"b", "c"}, cfg.ActiveGroups)
}

func TestLoadCommandLineOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "buildprops.toml", "active_groups = [\"a\"]\non_missing_property = \"warn\"\n")
	t.Setenv("BUILDPROPS_ACTIVE_GROUPS", "b")

	cfg, err := Load("", dir, nil, map[string]interface{}{
		"active_groups": []string{"c", "d"},
		"skip":          true,
	})
	require.NoError(t, err)
	assert.True(t, cfg.Skip)
	assert.Equal(t, []string{"c", "d"}, cfg.ActiveGroups)
	assert.Equal(t, policy.Warn, cfg.OnMissingProperty)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	bad := writeFile(t, dir, "bad.toml", "numbers = [[[")
	_, err = Load(bad, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	typo := writeFile(t, dir, "typo.toml", "[[numbers]]\nid = \"n\"\nfeild_number = 2\n")
	_, err = Load(typo, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	policyTypo := writeFile(t, dir, "policy.toml", "[[numbers]]\nid = \"n\"\non_missing_file = \"sometimes\"\n")
	_, err = Load(policyTypo, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestSampleContentLoads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "buildprops.toml", SampleContent())

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"build"}, cfg.ActiveGroups)
	require.Len(t, cfg.Numbers, 1)
	assert.Equal(t, filepath.Join(dir, "build.properties"), cfg.Numbers[0].PropertyFile)
	require.Len(t, cfg.Groups, 1)

	names := []string{}
	for _, p := range cfg.Groups[0].Properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"build.date", "build.id", "build.label", "build.user"}, names)

	for _, d := range cfg.Definitions() {
		require.NoError(t, d.Check(), d.Common().ID)
	}
}
