package buildctx

import (
	"os"
	"strings"
)

// Kind tells snapshot builds from release builds.
type Kind int

const (
	Release Kind = iota
	Snapshot
)

func (k Kind) String() string {
	if k == Snapshot {
		return "snapshot"
	}
	return "release"
}

// KindForVersion returns Snapshot for versions ending in SNAPSHOT.
func KindForVersion(version string) Kind {
	if strings.HasSuffix(strings.ToUpper(strings.TrimSpace(version)), "SNAPSHOT") {
		return Snapshot
	}
	return Release
}

// Export is one published name/value pair.
type Export struct {
	Name  string
	Value string
}

// Context is the build a run belongs to.
type Context struct {
	Project         *Project
	Kind            Kind
	BuildProperties map[string]string

	// LookupEnv reads an environment variable. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	exports []Export
	index   map[string]int
}

// New returns a context for project. A nil project is treated as empty.
func New(project *Project, kind Kind) *Context {
	if project == nil {
		project = &Project{Properties: map[string]string{}}
	}
	return &Context{
		Project:         project,
		Kind:            kind,
		BuildProperties: map[string]string{},
		LookupEnv:       os.LookupEnv,
		index:           map[string]int{},
	}
}

// BuildProperty returns a build property passed to the run.
func (c *Context) BuildProperty(name string) (string, bool) {
	v, ok := c.BuildProperties[name]
	return v, ok
}

// Getenv returns an environment variable.
func (c *Context) Getenv(name string) (string, bool) {
	if c.LookupEnv == nil {
		return "", false
	}
	return c.LookupEnv(name)
}

// Export publishes name. Exporting a name again replaces its value but
// keeps its original position.
func (c *Context) Export(name, value string) {
	if i, ok := c.index[name]; ok {
		c.exports[i].Value = value
		return
	}
	c.index[name] = len(c.exports)
	c.exports = append(c.exports, Export{Name: name, Value: value})
}

// Exports returns the published pairs in export order.
func (c *Context) Exports() []Export {
	out := make([]Export, len(c.exports))
	copy(out, c.exports)
	return out
}

// Exported returns the value published under name.
func (c *Context) Exported(name string) (string, bool) {
	i, ok := c.index[name]
	if !ok {
		return "", false
	}
	return c.exports[i].Value, true
}
