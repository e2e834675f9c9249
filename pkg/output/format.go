package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/magiconair/properties"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatProperties Format = "properties"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTOML       Format = "toml"
	FormatEnv        Format = "env"
	FormatText       Format = "text"
)

var formats = []Format{FormatProperties, FormatJSON, FormatYAML, FormatTOML, FormatEnv, FormatText}

// Formats lists the supported format names.
func Formats() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	name := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range formats {
		if f == name {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q (expected one of %s)", s, strings.Join(Formats(), ", ")).
		WithDetail("format", s)
}

func writeProperties(w io.Writer, exports []buildctx.Export) error {
	p := properties.NewProperties()
	p.DisableExpansion = true
	for _, e := range exports {
		if _, _, err := p.Set(e.Name, e.Value); err != nil {
			return err
		}
	}
	_, err := p.Write(w, properties.UTF8)
	return err
}

// writeJSON writes one object with the keys in export order.
func writeJSON(w io.Writer, exports []buildctx.Export) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range exports {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Name)
		if err != nil {
			return err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

// writeYAML writes a mapping node so the keys keep export order.
func writeYAML(w io.Writer, exports []buildctx.Export) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range exports {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}
	if len(exports) == 0 {
		node.Style = yaml.FlowStyle
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}

// writeTOML writes a flat table. TOML tables are unordered, keys come out
// sorted.
func writeTOML(w io.Writer, exports []buildctx.Export) error {
	m := make(map[string]string, len(exports))
	for _, e := range exports {
		m[e.Name] = e.Value
	}
	return toml.NewEncoder(w).Encode(m)
}

var envUnsafe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// EnvName turns a property name into an environment variable name.
func EnvName(name string) string {
	n := strings.ToUpper(envUnsafe.ReplaceAllString(name, "_"))
	if n != "" && n[0] >= '0' && n[0] <= '9' {
		n = "_" + n
	}
	return n
}

func writeEnv(w io.Writer, exports []buildctx.Export) error {
	for _, e := range exports {
		quoted := "'" + strings.ReplaceAll(e.Value, "'", `'\''`) + "'"
		if _, err := fmt.Fprintf(w, "%s=%s\n", EnvName(e.Name), quoted); err != nil {
			return err
		}
	}
	return nil
}
