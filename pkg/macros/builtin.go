package macros

import (
	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// Demo is a sample macro. Its "type" parameter selects the value:
//
//	static    the literal "static-value" (default)
//	property  the current value of the property
//	anything  the "value" parameter
type Demo struct{}

func (Demo) Value(def *definitions.Macro, provider values.Provider, _ *buildctx.Context) (string, bool, error) {
	kind, ok := def.Param("type")
	if !ok {
		kind = "static"
	}
	switch kind {
	case "static":
		return "static-value", true, nil
	case "property":
		v, ok := provider.Value()
		return v, ok, nil
	default:
		v, ok := def.Param("value")
		return v, ok, nil
	}
}

// Env reads the environment variable named by the "name" parameter, falling
// back to the "default" parameter.
func Env(def *definitions.Macro, _ values.Provider, ctx *buildctx.Context) (string, bool, error) {
	name, err := requiredParam(def, "name")
	if err != nil {
		return "", false, err
	}
	if ctx != nil {
		if v, ok := ctx.Getenv(name); ok {
			return v, true, nil
		}
	}
	v, ok := def.Param("default")
	return v, ok, nil
}

// Property reads the build property, or else the project attribute, named
// by the "name" parameter, falling back to the "default" parameter.
func Property(def *definitions.Macro, _ values.Provider, ctx *buildctx.Context) (string, bool, error) {
	name, err := requiredParam(def, "name")
	if err != nil {
		return "", false, err
	}
	if ctx != nil {
		if v, ok := ctx.BuildProperty(name); ok {
			return v, true, nil
		}
		if v, ok := ctx.Project.Lookup(name); ok {
			return v, true, nil
		}
	}
	v, ok := def.Param("default")
	return v, ok, nil
}

func requiredParam(def *definitions.Macro, name string) (string, error) {
	v, ok := def.Param(name)
	if !ok || v == "" {
		return "", errors.Newf(errors.ErrInvalidDefinition, "macro '%s' needs a '%s' property", def.ID, name).
			WithDetail("id", def.ID)
	}
	return v, nil
}
