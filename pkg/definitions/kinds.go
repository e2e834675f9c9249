package definitions

import (
	"strings"

	"github.com/google/uuid"

	"github.com/arthur-debert/buildprops/pkg/policy"
)

// DefaultNumberInitialValue seeds number properties that have no value yet.
const DefaultNumberInitialValue = "0"

// Number describes a counter kept in one digit run of a value.
type Number struct {
	Base        `koanf:",squash"`
	FieldNumber int `koanf:"field_number" validate:"gte=0"`
	Increment   int `koanf:"increment"`
}

// NewNumber returns a number definition with the default settings.
func NewNumber(id string) *Number {
	n := &Number{Base: Base{ID: id}, Increment: 1}
	n.SetInitial(DefaultNumberInitialValue)
	return n
}

func (n *Number) Common() *Base { return &n.Base }
func (n *Number) Kind() Kind    { return KindNumber }

func (n *Number) InitialValue() (string, bool) {
	return n.initial()
}

func (n *Number) Check() error {
	n.normalise()
	if n.Initial == nil {
		n.SetInitial(DefaultNumberInitialValue)
	}
	if err := checkStruct(n); err != nil {
		return err
	}
	if *n.Initial == "" {
		return invalid(n, "the initial value must not be empty")
	}
	return checkPrintfFormat(n)
}

// String describes a value picked from a list of candidates.
type String struct {
	Base           `koanf:",squash"`
	Values         []string              `koanf:"values"`
	BlankIsValid   bool                  `koanf:"blank_is_valid"`
	OnMissingValue policy.IgnoreWarnFail `koanf:"on_missing_value"`
}

// NewString returns a string definition with the default settings.
func NewString(id string) *String {
	return &String{Base: Base{ID: id}, BlankIsValid: true}
}

func (s *String) Common() *Base { return &s.Base }
func (s *String) Kind() Kind    { return KindString }

func (s *String) InitialValue() (string, bool) {
	return s.initial()
}

func (s *String) Check() error {
	s.normalise()
	if err := checkStruct(s); err != nil {
		return err
	}
	return checkPrintfFormat(s)
}

// Date describes a point in time. Format is a Go reference time layout.
type Date struct {
	Base     `koanf:",squash"`
	Timezone string `koanf:"timezone" validate:"omitempty,timezone"`
	Value    *int64 `koanf:"value"`
}

// NewDate returns a date definition with the default settings.
func NewDate(id string) *Date {
	return &Date{Base: Base{ID: id}}
}

func (d *Date) Common() *Base { return &d.Base }
func (d *Date) Kind() Kind    { return KindDate }

func (d *Date) InitialValue() (string, bool) {
	return d.initial()
}

// SetValue sets the fallback instant in epoch milliseconds.
func (d *Date) SetValue(millis int64) {
	d.Value = &millis
}

func (d *Date) Check() error {
	d.normalise()
	d.Timezone = strings.TrimSpace(d.Timezone)
	return checkStruct(d)
}

// UUID describes a unique identifier.
type UUID struct {
	Base  `koanf:",squash"`
	Value string `koanf:"value" validate:"omitempty,uuid"`

	generated string
}

// NewUUID returns a uuid definition with the default settings.
func NewUUID(id string) *UUID {
	return &UUID{Base: Base{ID: id}}
}

func (u *UUID) Common() *Base { return &u.Base }
func (u *UUID) Kind() Kind    { return KindUUID }

// InitialValue returns the configured initial value, then the configured
// UUID, then a random UUID that is generated on first use and kept for the
// lifetime of u.
func (u *UUID) InitialValue() (string, bool) {
	if v, ok := u.initial(); ok {
		return v, true
	}
	if u.Value != "" {
		return u.Value, true
	}
	if u.generated == "" {
		u.generated = uuid.NewString()
	}
	return u.generated, true
}

func (u *UUID) Check() error {
	u.normalise()
	u.Value = strings.TrimSpace(u.Value)
	if err := checkStruct(u); err != nil {
		return err
	}
	return checkPrintfFormat(u)
}

// Macro describes a value produced by a registered macro.
type Macro struct {
	Base       `koanf:",squash"`
	MacroType  string            `koanf:"macro_type" validate:"required_without=MacroClass"`
	MacroClass string            `koanf:"macro_class" validate:"required_without=MacroType"`
	Properties map[string]string `koanf:"properties"`
}

// NewMacro returns a macro definition using the macro registered as
// macroType.
func NewMacro(id, macroType string) *Macro {
	return &Macro{Base: Base{ID: id}, MacroType: macroType, Properties: map[string]string{}}
}

func (m *Macro) Common() *Base { return &m.Base }
func (m *Macro) Kind() Kind    { return KindMacro }

func (m *Macro) InitialValue() (string, bool) {
	return m.initial()
}

// Param returns the named macro parameter.
func (m *Macro) Param(name string) (string, bool) {
	v, ok := m.Properties[name]
	return v, ok
}

func (m *Macro) Check() error {
	m.normalise()
	m.MacroType = strings.TrimSpace(m.MacroType)
	m.MacroClass = strings.TrimSpace(m.MacroClass)
	if err := checkStruct(m); err != nil {
		return err
	}
	return checkPrintfFormat(m)
}
