package fields

import (
	"github.com/google/uuid"

	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// UUID resolves a unique identifier.
type UUID struct {
	def       *definitions.UUID
	provider  values.Provider
	generated uuid.UUID
}

// NewUUID returns a uuid field.
func NewUUID(def *definitions.UUID, provider values.Provider) *UUID {
	return &UUID{def: def, provider: provider}
}

func (f *UUID) ID() string     { return f.def.ID }
func (f *UUID) Exported() bool { return f.def.Export }

// Value returns the stored UUID, else the configured one, else a random UUID
// generated once per field. When nothing was stored yet the result is
// written back, so repeated calls return the same UUID.
func (f *UUID) Value() (string, bool, error) {
	stored, ok := f.provider.Value()

	var id uuid.UUID
	var err error
	switch {
	case ok:
		id, err = uuid.Parse(stored)
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "'%s' is not a valid uuid", stored).
				WithDetail("id", f.def.ID).
				WithDetail("value", stored)
		}
	case f.def.Value != "":
		id, err = uuid.Parse(f.def.Value)
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrInvalidDefinition, "'%s' is not a valid uuid", f.def.Value).
				WithDetail("id", f.def.ID)
		}
	default:
		if f.generated == uuid.Nil {
			f.generated = uuid.New()
		}
		id = f.generated
	}

	if !ok {
		f.provider.SetValue(id.String())
	}
	return finish(&f.def.Base, id.String(), true)
}
