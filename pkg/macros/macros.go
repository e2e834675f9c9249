package macros

import (
	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/registry"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// MacroType produces the value of a macro definition. A false second result
// means the macro has no value.
type MacroType interface {
	Value(def *definitions.Macro, provider values.Provider, ctx *buildctx.Context) (string, bool, error)
}

// Func adapts a function to MacroType.
type Func func(def *definitions.Macro, provider values.Provider, ctx *buildctx.Context) (string, bool, error)

func (f Func) Value(def *definitions.Macro, provider values.Provider, ctx *buildctx.Context) (string, bool, error) {
	return f(def, provider, ctx)
}

// Factory creates a fresh macro instance for a class name.
type Factory func() MacroType

// Registry holds the macro types and classes known to a run.
type Registry struct {
	types   registry.Registry[MacroType]
	classes registry.Registry[Factory]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   registry.New[MacroType]("macro type"),
		classes: registry.New[Factory]("macro class"),
	}
}

// RegisterType registers a shared macro instance under name.
func (r *Registry) RegisterType(name string, m MacroType) error {
	return r.types.Register(name, m)
}

// RegisterClass registers a factory under a class name.
func (r *Registry) RegisterClass(name string, f Factory) error {
	return r.classes.Register(name, f)
}

// Types returns the registered type names.
func (r *Registry) Types() []string {
	return r.types.List()
}

// Classes returns the registered class names.
func (r *Registry) Classes() []string {
	return r.classes.List()
}

// Lookup finds the macro for def: by type when the definition names one,
// otherwise by instantiating its class. Unknown names are
// ErrMissingResource errors.
func (r *Registry) Lookup(def *definitions.Macro) (MacroType, error) {
	if def.MacroType != "" {
		m, err := r.types.Get(def.MacroType)
		if err != nil {
			return nil, missing(err, def, "type", def.MacroType)
		}
		return m, nil
	}

	if def.MacroClass == "" {
		return nil, errors.Newf(errors.ErrInvalidDefinition, "no macro type or class defined for '%s'", def.ID).
			WithDetail("id", def.ID)
	}
	factory, err := r.classes.Get(def.MacroClass)
	if err != nil {
		return nil, missing(err, def, "class", def.MacroClass)
	}
	return factory(), nil
}

func missing(err error, def *definitions.Macro, what, name string) error {
	return errors.Wrapf(err, errors.ErrMissingResource, "macro %s '%s' for '%s' is not registered", what, name, def.ID).
		WithDetail("id", def.ID).
		WithDetail(what, name)
}

// Default holds the built-in macros.
var Default = NewRegistry()

func init() {
	registry.MustRegister(Default.types, "demo", MacroType(Demo{}))
	registry.MustRegister(Default.types, "env", MacroType(Func(Env)))
	registry.MustRegister(Default.types, "property", MacroType(Func(Property)))
	registry.MustRegister(Default.classes, "macros.Demo", Factory(func() MacroType { return Demo{} }))
}
