package fields

import (
	"time"

	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/macros"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// Field evaluates one definition.
type Field interface {
	// ID returns the definition id the value is recorded under.
	ID() string
	// Exported reports whether the value is published to the build.
	Exported() bool
	// Value resolves the current value. A false second result means the
	// property has no value.
	Value() (string, bool, error)
}

// Env carries the collaborators some field kinds need.
type Env struct {
	Macros  *macros.Registry
	Context *buildctx.Context
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// New returns the field for def reading and writing through provider.
func New(def definitions.Definition, provider values.Provider, env Env) (Field, error) {
	switch d := def.(type) {
	case *definitions.Number:
		return NewNumber(d, provider), nil
	case *definitions.String:
		return NewString(d, provider), nil
	case *definitions.Date:
		f := NewDate(d, provider)
		if env.Now != nil {
			f.Now = env.Now
		}
		return f, nil
	case *definitions.UUID:
		return NewUUID(d, provider), nil
	case *definitions.Macro:
		registry := env.Macros
		if registry == nil {
			registry = macros.Default
		}
		return NewMacro(d, provider, registry, env.Context), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidDefinition, "unsupported definition kind %T", def)
	}
}

// finish applies the printf style format and the transformers of base to a
// resolved value.
func finish(base *definitions.Base, value string, present bool) (string, bool, error) {
	if !present {
		return "", false, nil
	}
	return base.Transform(base.Printf(value), true)
}
