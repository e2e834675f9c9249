package buildctx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/testutil"
)

const samplePOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <parent>
    <groupId>org.example</groupId>
    <artifactId>parent</artifactId>
    <version>1.2.3-SNAPSHOT</version>
  </parent>
  <artifactId>widget</artifactId>
  <name> Widget </name>
  <description>A widget</description>
  <properties>
    <build.label>nightly</build.label>
    <owner>team</owner>
  </properties>
</project>
`

func TestLoadPOM(t *testing.T) {
	fsys := testutil.NewTestFS()
	require.NoError(t, fsys.WriteFile("/src/pom.xml", []byte(samplePOM), 0644))

	p, err := LoadPOM(fsys, "/src/pom.xml")
	require.NoError(t, err)

	assert.Equal(t, "org.example", p.GroupID, "inherited from parent")
	assert.Equal(t, "widget", p.ArtifactID)
	assert.Equal(t, "1.2.3-SNAPSHOT", p.Version, "inherited from parent")
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "jar", p.Packaging)
	assert.Equal(t, filepath.Clean("/src"), p.Basedir)
	assert.Equal(t, []string{"build.label", "owner"}, p.PropertyNames())

	v, ok := p.Lookup("artifactId")
	assert.True(t, ok)
	assert.Equal(t, "widget", v)

	v, ok = p.Lookup("build.label")
	assert.True(t, ok)
	assert.Equal(t, "nightly", v)

	v, ok = p.Lookup("properties.owner")
	assert.True(t, ok)
	assert.Equal(t, "team", v)

	_, ok = p.Lookup("missing")
	assert.False(t, ok)
}

func TestLoadPOMErrors(t *testing.T) {
	fsys := testutil.NewTestFS()

	_, err := LoadPOM(fsys, "/src/pom.xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))

	require.NoError(t, fsys.WriteFile("/src/pom.xml", []byte("<notaproject/>"), 0644))
	_, err = LoadPOM(fsys, "/src/pom.xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	require.NoError(t, fsys.WriteFile("/src/pom.xml", []byte("not xml at all <<<"), 0644))
	_, err = LoadPOM(fsys, "/src/pom.xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestKindForVersion(t *testing.T) {
	assert.Equal(t, Snapshot, KindForVersion("1.0-SNAPSHOT"))
	assert.Equal(t, Snapshot, KindForVersion("1.0-snapshot "))
	assert.Equal(t, Release, KindForVersion("1.0"))
	assert.Equal(t, Release, KindForVersion(""))
	assert.Equal(t, "snapshot", Snapshot.String())
	assert.Equal(t, "release", Release.String())
}

func TestContextExports(t *testing.T) {
	c := New(nil, Release)
	c.Export("b", "1")
	c.Export("a", "2")
	c.Export("b", "3")

	assert.Equal(t, []Export{{"b", "3"}, {"a", "2"}}, c.Exports())

	v, ok := c.Exported("a")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = c.Exported("zzz")
	assert.False(t, ok)
}

func TestContextSources(t *testing.T) {
	c := New(&Project{Version: "1"}, Release)
	c.BuildProperties["skipTests"] = "true"
	c.LookupEnv = func(name string) (string, bool) {
		if name == "HOME" {
			return "/home/build", true
		}
		return "", false
	}

	v, ok := c.BuildProperty("skipTests")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	v, ok = c.Getenv("HOME")
	assert.True(t, ok)
	assert.Equal(t, "/home/build", v)

	_, ok = c.Getenv("NOPE")
	assert.False(t, ok)
}
