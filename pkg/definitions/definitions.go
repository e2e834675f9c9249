package definitions

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/policy"
	"github.com/arthur-debert/buildprops/pkg/transform"
)

// Kind names a definition kind.
type Kind string

const (
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindDate   Kind = "date"
	KindUUID   Kind = "uuid"
	KindMacro  Kind = "macro"
)

// Definition is implemented by every definition kind.
type Definition interface {
	// Common returns the settings shared by all kinds.
	Common() *Base
	// Kind returns the definition kind.
	Kind() Kind
	// InitialValue returns the value used to seed a missing property.
	InitialValue() (string, bool)
	// Check normalises and validates the definition.
	Check() error
}

// Base holds the settings every definition kind has.
type Base struct {
	ID                string                      `koanf:"id" validate:"required"`
	PropertyName      string                      `koanf:"property_name"`
	PropertyFile      string                      `koanf:"property_file"`
	OnMissingFile     policy.IgnoreWarnFailCreate `koanf:"on_missing_file"`
	OnMissingProperty policy.IgnoreWarnFailCreate `koanf:"on_missing_property"`
	Initial           *string                     `koanf:"initial_value"`
	Format            string                      `koanf:"format"`
	Transformers      string                      `koanf:"transformers"`
	Export            bool                        `koanf:"export"`
	Skip              bool                        `koanf:"skip"`
}

// Property returns the name the value is stored and exported under.
func (b *Base) Property() string {
	if b.PropertyName != "" {
		return b.PropertyName
	}
	return b.ID
}

// HasFile reports whether the value is backed by a property file.
func (b *Base) HasFile() bool {
	return b.PropertyFile != ""
}

// SetInitial sets the initial value.
func (b *Base) SetInitial(value string) {
	b.Initial = &value
}

// Transform runs the configured transformers over a present value.
func (b *Base) Transform(value string, present bool) (string, bool, error) {
	return transform.Apply(b.Transformers, value, present)
}

// Printf renders value with the configured format, which takes a single %s
// style verb. Without a format the value is returned unchanged.
func (b *Base) Printf(value string) string {
	if b.Format == "" {
		return value
	}
	return fmt.Sprintf(b.Format, value)
}

func (b *Base) normalise() {
	b.ID = strings.TrimSpace(b.ID)
	b.PropertyName = strings.TrimSpace(b.PropertyName)
	b.PropertyFile = strings.TrimSpace(b.PropertyFile)
	if b.Initial != nil {
		trimmed := strings.TrimSpace(*b.Initial)
		b.Initial = &trimmed
	}
}

func (b *Base) initial() (string, bool) {
	if b.Initial == nil {
		return "", false
	}
	return *b.Initial, true
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkStruct validates d with its struct tags and the transformer list.
func checkStruct(d Definition) error {
	base := d.Common()
	if err := validate.Struct(d); err != nil {
		return invalid(d, validationMessage(err)).WithDetail("cause", err.Error())
	}
	if _, err := transform.Parse(base.Transformers); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidDefinition, "%s definition '%s' has invalid transformers", d.Kind(), base.ID).
			WithDetail("id", base.ID)
	}
	return nil
}

// checkPrintfFormat rejects formats that do not take exactly one value.
func checkPrintfFormat(d Definition) error {
	format := d.Common().Format
	if format == "" {
		return nil
	}
	if strings.Contains(fmt.Sprintf(format, "x"), "%!") {
		return invalid(d, fmt.Sprintf("format %q must contain exactly one value verb", format))
	}
	return nil
}

func invalid(d Definition, msg string) *errors.PropsError {
	id := d.Common().ID
	return errors.Newf(errors.ErrInvalidDefinition, "%s definition '%s': %s", d.Kind(), id, msg).
		WithDetail("id", id).
		WithDetail("kind", string(d.Kind()))
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}
