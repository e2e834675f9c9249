package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/groups"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/policy"
)

// EnvPrefix marks environment variables overriding top level keys.
const EnvPrefix = "BUILDPROPS_"

// FileNames are looked up, in order, when no file is given explicitly.
var FileNames = []string{"buildprops.toml", ".buildprops.toml", "buildprops.yaml", "buildprops.yml"}

// Config is a decoded definitions file.
type Config struct {
	// Path is the file the definitions came from, empty when none was found.
	Path string

	Skip                bool
	ActiveGroups        []string
	OnDuplicateProperty policy.IgnoreWarnFail
	OnMissingProperty   policy.IgnoreWarnFail

	Numbers []*definitions.Number
	Strings []*definitions.String
	Dates   []*definitions.Date
	Macros  []*definitions.Macro
	UUIDs   []*definitions.UUID
	Groups  []*groups.Group
}

// Definitions returns every definition in evaluation order.
func (c *Config) Definitions() []definitions.Definition {
	var out []definitions.Definition
	for _, d := range c.Numbers {
		out = append(out, d)
	}
	for _, d := range c.Strings {
		out = append(out, d)
	}
	for _, d := range c.Dates {
		out = append(out, d)
	}
	for _, d := range c.Macros {
		out = append(out, d)
	}
	for _, d := range c.UUIDs {
		out = append(out, d)
	}
	return out
}

// document mirrors the file layout. Entries stay raw so each one can be
// decoded onto its own defaults.
type document struct {
	Skip                bool                     `koanf:"skip"`
	ActiveGroups        []string                 `koanf:"active_groups"`
	OnDuplicateProperty policy.IgnoreWarnFail    `koanf:"on_duplicate_property"`
	OnMissingProperty   policy.IgnoreWarnFail    `koanf:"on_missing_property"`
	Numbers             []map[string]interface{} `koanf:"numbers"`
	Strings             []map[string]interface{} `koanf:"strings"`
	Dates               []map[string]interface{} `koanf:"dates"`
	Macros              []map[string]interface{} `koanf:"macros"`
	UUIDs               []map[string]interface{} `koanf:"uuids"`
	Groups              []map[string]interface{} `koanf:"groups"`
}

// Find returns the first definitions file in dir, or "" when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// Load reads the definitions file at path. An empty path looks for one of
// FileNames in dir; finding none yields the defaults. Overrides are applied
// last, keyed like the top level of the file (e.g. "active_groups").
func Load(path, dir string, overrides ...map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	if dir == "" {
		dir = "."
	}
	if path == "" {
		path = Find(dir)
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "can not read definitions file %s", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Definitions file
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load definitions from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded definitions file")
	} else {
		logger.Debug().Str("dir", dir).Msg("No definitions file found, using defaults")
	}

	// 3. Environment overrides
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Command line overrides
	for _, o := range overrides {
		if len(o) == 0 {
			continue
		}
		if err := k.Load(confmap.Provider(o, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var doc document
	unmarshalConf := koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: decoderConfig(&doc),
	}
	if err := k.UnmarshalWithConf("", &doc, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal definitions").
			WithDetail("path", path)
	}

	cfg := &Config{
		Path:                path,
		Skip:                doc.Skip,
		ActiveGroups:        trimAll(doc.ActiveGroups),
		OnDuplicateProperty: doc.OnDuplicateProperty,
		OnMissingProperty:   doc.OnMissingProperty,
	}

	// 6. Entries
	if err := cfg.decodeEntries(&doc); err != nil {
		return nil, err
	}

	// 7. Post-process
	base := dir
	if path != "" {
		base = filepath.Dir(path)
	}
	cfg.resolveFiles(base)

	logger.Info().
		Int("numbers", len(cfg.Numbers)).
		Int("strings", len(cfg.Strings)).
		Int("dates", len(cfg.Dates)).
		Int("macros", len(cfg.Macros)).
		Int("uuids", len(cfg.UUIDs)).
		Int("groups", len(cfg.Groups)).
		Msg("Definitions loaded")
	return cfg, nil
}

func (c *Config) decodeEntries(doc *document) error {
	for i, raw := range doc.Numbers {
		def := definitions.NewNumber("")
		if err := decodeEntry("numbers", i, raw, def); err != nil {
			return err
		}
		c.Numbers = append(c.Numbers, def)
	}
	for i, raw := range doc.Strings {
		def := definitions.NewString("")
		if err := decodeEntry("strings", i, raw, def); err != nil {
			return err
		}
		c.Strings = append(c.Strings, def)
	}
	for i, raw := range doc.Dates {
		def := definitions.NewDate("")
		if err := decodeEntry("dates", i, raw, def); err != nil {
			return err
		}
		c.Dates = append(c.Dates, def)
	}
	for i, raw := range doc.Macros {
		def := definitions.NewMacro("", "")
		if err := decodeEntry("macros", i, raw, def); err != nil {
			return err
		}
		c.Macros = append(c.Macros, def)
	}
	for i, raw := range doc.UUIDs {
		def := definitions.NewUUID("")
		if err := decodeEntry("uuids", i, raw, def); err != nil {
			return err
		}
		c.UUIDs = append(c.UUIDs, def)
	}
	for i, raw := range doc.Groups {
		g := groups.NewGroup("")
		g.OnDuplicateProperty = c.OnDuplicateProperty
		g.OnMissingProperty = c.OnMissingProperty
		if err := decodeEntry("groups", i, raw, g); err != nil {
			return err
		}
		c.Groups = append(c.Groups, g)
	}
	return nil
}

// resolveFiles makes relative property files relative to dir.
func (c *Config) resolveFiles(dir string) {
	for _, def := range c.Definitions() {
		base := def.Common()
		pf := strings.TrimSpace(base.PropertyFile)
		if pf == "" || filepath.IsAbs(pf) {
			continue
		}
		base.PropertyFile = filepath.Join(dir, pf)
	}
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
