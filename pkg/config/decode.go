package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/groups"
)

func decoderConfig(result interface{}) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "koanf",
		WeaklyTypedInput: true,
		Squash:           true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			sliceToCommaStringHookFunc(),
			propertyListHookFunc(),
		),
	}
}

// decodeEntry decodes one list entry onto out. Unknown keys are errors so
// typos in a definition do not go unnoticed.
func decodeEntry(section string, index int, raw map[string]interface{}, out interface{}) error {
	conf := decoderConfig(out)
	conf.ErrorUnused = true

	dec, err := mapstructure.NewDecoder(conf)
	if err == nil {
		err = dec.Decode(raw)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid entry %d in [[%s]]", index, section).
			WithDetail("section", section).
			WithDetail("index", index)
	}
	return nil
}

// sliceToCommaStringHookFunc accepts a list where a comma separated string
// is expected, e.g. transformers = ["trim", "lowercase"].
func sliceToCommaStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Slice || t.Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]interface{})
		if !ok {
			return data, nil
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ","), nil
	}
}

// propertyListHookFunc turns a table of group properties into a property
// list sorted by name. Nested tables, produced by unquoted dotted keys, are
// joined back into dotted names. A list of tables is decoded as is and keeps
// its order.
func propertyListHookFunc() mapstructure.DecodeHookFunc {
	target := reflect.TypeOf([]groups.Property{})
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != target || f.Kind() != reflect.Map {
			return data, nil
		}
		m, ok := data.(map[string]interface{})
		if !ok {
			return data, nil
		}

		flat := make(map[string]interface{})
		flatten("", m, flat)

		names := make([]string, 0, len(flat))
		for name := range flat {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make([]map[string]interface{}, 0, len(names))
		for _, name := range names {
			out = append(out, map[string]interface{}{"name": name, "value": flat[name]})
		}
		return out, nil
	}
}

func flatten(prefix string, in map[string]interface{}, out map[string]interface{}) {
	for k, v := range in {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(name, nested, out)
			continue
		}
		out[name] = v
	}
}
