package fields

import (
	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/macros"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// Macro delegates to a registered macro.
type Macro struct {
	def      *definitions.Macro
	provider values.Provider
	registry *macros.Registry
	ctx      *buildctx.Context
}

// NewMacro returns a macro field resolving macros through registry.
func NewMacro(def *definitions.Macro, provider values.Provider, registry *macros.Registry, ctx *buildctx.Context) *Macro {
	return &Macro{def: def, provider: provider, registry: registry, ctx: ctx}
}

func (f *Macro) ID() string     { return f.def.ID }
func (f *Macro) Exported() bool { return f.def.Export }

// Value invokes the macro. Format and transformers only apply to a present
// result; absence is passed on as is.
func (f *Macro) Value() (string, bool, error) {
	m, err := f.registry.Lookup(f.def)
	if err != nil {
		return "", false, err
	}
	v, ok, err := m.Value(f.def, f.provider, f.ctx)
	if err != nil {
		return "", false, err
	}
	return finish(&f.def.Base, v, ok)
}
