package groups

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/policy"
	"github.com/arthur-debert/buildprops/pkg/transform"
)

// Property is one templated value of a group.
type Property struct {
	Name         string `koanf:"name" validate:"required"`
	Value        string `koanf:"value"`
	Transformers string `koanf:"transformers"`
}

// Group is a named set of properties activated together.
type Group struct {
	ID                  string                `koanf:"id" validate:"required"`
	ActiveOnRelease     bool                  `koanf:"active_on_release"`
	ActiveOnSnapshot    bool                  `koanf:"active_on_snapshot"`
	OnDuplicateProperty policy.IgnoreWarnFail `koanf:"on_duplicate_property"`
	OnMissingProperty   policy.IgnoreWarnFail `koanf:"on_missing_property"`
	Properties          []Property            `koanf:"properties" validate:"dive"`
}

// NewGroup returns a group active for every build kind.
func NewGroup(id string) *Group {
	return &Group{
		ID:               id,
		ActiveOnRelease:  true,
		ActiveOnSnapshot: true,
	}
}

// Add appends a property and returns the group.
func (g *Group) Add(name, value string) *Group {
	g.Properties = append(g.Properties, Property{Name: name, Value: value})
	return g
}

// Active reports whether the group runs for kind.
func (g *Group) Active(kind buildctx.Kind) bool {
	if kind == buildctx.Snapshot {
		return g.ActiveOnSnapshot
	}
	return g.ActiveOnRelease
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Check trims names and validates the group. Property names must be unique
// within a group.
func (g *Group) Check() error {
	g.ID = strings.TrimSpace(g.ID)
	for i := range g.Properties {
		g.Properties[i].Name = strings.TrimSpace(g.Properties[i].Name)
	}

	if err := validate.Struct(g); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidDefinition, "property group '%s' is invalid", g.ID).
			WithDetail("group", g.ID)
	}

	seen := make(map[string]bool, len(g.Properties))
	for _, p := range g.Properties {
		if seen[p.Name] {
			return errors.Newf(errors.ErrInvalidDefinition, "property group '%s' defines '%s' twice", g.ID, p.Name).
				WithDetail("group", g.ID).
				WithDetail("property", p.Name)
		}
		seen[p.Name] = true

		if _, err := transform.Parse(p.Transformers); err != nil {
			return errors.Wrapf(err, errors.ErrInvalidDefinition, "property '%s' of group '%s' has invalid transformers", p.Name, g.ID).
				WithDetail("group", g.ID).
				WithDetail("property", p.Name)
		}
	}
	return nil
}

func (g *Group) String() string {
	return fmt.Sprintf("group %s (release: %t, snapshot: %t, %d properties)",
		g.ID, g.ActiveOnRelease, g.ActiveOnSnapshot, len(g.Properties))
}
