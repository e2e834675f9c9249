package groups

import (
	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/interpolate"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/transform"
)

// State is the activation state of a group.
type State int

const (
	Inactive State = iota
	Active
	Exported
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Exported:
		return "exported"
	default:
		return "inactive"
	}
}

// Resolver activates groups for one build and publishes their properties to
// the build context. Property names are tracked across every group it
// activates.
type Resolver struct {
	ctx   *buildctx.Context
	ip    *interpolate.Interpolator
	names map[string]string
}

// NewResolver returns a resolver exporting into ctx.
func NewResolver(ctx *buildctx.Context, ip *interpolate.Interpolator) *Resolver {
	return &Resolver{
		ctx:   ctx,
		ip:    ip,
		names: make(map[string]string),
	}
}

// Activate runs g. A group not matching the build kind stays Inactive and
// publishes nothing.
func (r *Resolver) Activate(g *Group) (State, error) {
	logger := logging.GetLogger("groups").With().Str("group", g.ID).Logger()

	if !g.Active(r.ctx.Kind) {
		logger.Debug().
			Str("kind", r.ctx.Kind.String()).
			Bool("activeOnRelease", g.ActiveOnRelease).
			Bool("activeOnSnapshot", g.ActiveOnSnapshot).
			Msg("Skipping property group")
		return Inactive, nil
	}

	for _, p := range g.Properties {
		value, err := r.ip.Resolve(p.Value, g.OnMissingProperty)
		if err != nil {
			wrapped := errors.Wrapf(err, errors.GetErrorCode(err), "property '%s' of group '%s'", p.Name, g.ID)
			for k, v := range errors.GetErrorDetails(err) {
				wrapped.WithDetail(k, v)
			}
			return Active, wrapped.WithDetail("group", g.ID).WithDetail("property", p.Name)
		}

		value, _, err = transform.Apply(p.Transformers, value, true)
		if err != nil {
			return Active, err
		}

		_, duplicate := r.names[p.Name]
		if err := g.OnDuplicateProperty.Check(!duplicate, "property name '"+p.Name+"'"); err != nil {
			return Active, errors.Wrapf(err, errors.ErrAlreadyExists, "property '%s' of group '%s' is already defined by group '%s'", p.Name, g.ID, r.names[p.Name]).
				WithDetail("group", g.ID).
				WithDetail("property", p.Name)
		}
		r.names[p.Name] = g.ID

		r.ctx.Export(p.Name, value)
		logger.Debug().Str("name", p.Name).Str("value", value).Msg("Exporting group property")
	}
	return Exported, nil
}

// Resolve activates the groups named by activeIDs, in that order. Naming a
// group that does not exist is an error.
func Resolve(groups []*Group, activeIDs []string, ctx *buildctx.Context, ip *interpolate.Interpolator) error {
	byID := make(map[string]*Group, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	r := NewResolver(ctx, ip)
	for _, id := range activeIDs {
		g, ok := byID[id]
		if !ok {
			return errors.Newf(errors.ErrMissingResource, "activated group '%s' does not exist", id).
				WithDetail("group", id)
		}
		if _, err := r.Activate(g); err != nil {
			return err
		}
	}
	return nil
}
