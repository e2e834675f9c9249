package buildctx

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/types"
)

// Project is the read-only project model values can refer to as
// #{project.version}, #{pom.artifactId} or plain #{version}.
type Project struct {
	GroupID     string
	ArtifactID  string
	Version     string
	Name        string
	Description string
	Packaging   string
	Basedir     string
	Properties  map[string]string
}

// Lookup returns a model attribute by its pom name, falling back to the
// project properties.
func (p *Project) Lookup(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	switch name {
	case "groupId":
		return p.GroupID, p.GroupID != ""
	case "artifactId":
		return p.ArtifactID, p.ArtifactID != ""
	case "version":
		return p.Version, p.Version != ""
	case "name":
		return p.Name, p.Name != ""
	case "description":
		return p.Description, p.Description != ""
	case "packaging":
		return p.Packaging, p.Packaging != ""
	case "basedir":
		return p.Basedir, p.Basedir != ""
	}
	if v, ok := p.Properties[strings.TrimPrefix(name, "properties.")]; ok {
		return v, true
	}
	return "", false
}

// PropertyNames returns the project property names in sorted order.
func (p *Project) PropertyNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Properties))
	for k := range p.Properties {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// LoadPOM reads the project model from a Maven pom.xml. The group id and
// version are inherited from the parent element when the project does not
// declare them.
func LoadPOM(fsys types.FS, path string) (*Project, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "can not read %s", path).
			WithDetail("path", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "can not parse %s", path).
			WithDetail("path", path)
	}

	root := doc.SelectElement("project")
	if root == nil {
		return nil, errors.Newf(errors.ErrConfigParse, "%s has no project element", path).
			WithDetail("path", path)
	}

	parent := root.SelectElement("parent")
	project := &Project{
		GroupID:     childText(root, "groupId"),
		ArtifactID:  childText(root, "artifactId"),
		Version:     childText(root, "version"),
		Name:        childText(root, "name"),
		Description: childText(root, "description"),
		Packaging:   childText(root, "packaging"),
		Properties:  make(map[string]string),
	}
	if project.GroupID == "" {
		project.GroupID = childText(parent, "groupId")
	}
	if project.Version == "" {
		project.Version = childText(parent, "version")
	}
	if project.Packaging == "" {
		project.Packaging = "jar"
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		project.Basedir = abs
	}

	if props := root.SelectElement("properties"); props != nil {
		for _, el := range props.ChildElements() {
			project.Properties[el.Tag] = strings.TrimSpace(el.Text())
		}
	}

	return project, nil
}

func childText(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
