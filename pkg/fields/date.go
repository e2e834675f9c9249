package fields

import (
	"strconv"
	"time"

	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// DefaultDateLayout renders dates that have no format.
const DefaultDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Date resolves a point in time.
type Date struct {
	def      *definitions.Date
	provider values.Provider

	// Now returns the current time.
	Now func() time.Time
}

// NewDate returns a date field using the wall clock.
func NewDate(def *definitions.Date, provider values.Provider) *Date {
	return &Date{def: def, provider: provider, Now: time.Now}
}

func (f *Date) ID() string     { return f.def.ID }
func (f *Date) Exported() bool { return f.def.Export }

func (f *Date) location() (*time.Location, error) {
	if f.def.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(f.def.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidDefinition, "unknown timezone '%s'", f.def.Timezone).
			WithDetail("id", f.def.ID)
	}
	return loc, nil
}

// parse reads a stored value: epoch milliseconds first, then the configured
// layout, then the default layout and RFC 3339.
func (f *Date) parse(value string, loc *time.Location) (time.Time, error) {
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis).In(loc), nil
	}
	layouts := []string{DefaultDateLayout, time.RFC3339Nano}
	if f.def.Format != "" {
		layouts = append([]string{f.def.Format}, layouts...)
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t.In(loc), nil
		}
		lastErr = err
	}
	return time.Time{}, errors.Wrapf(lastErr, errors.ErrInvalidInput, "can not parse date '%s'", value).
		WithDetail("id", f.def.ID).
		WithDetail("value", value)
}

// Value resolves the stored instant, else the configured one, else now.
//
// With a format the rendered string is exported and stored. Without one the
// exported string uses DefaultDateLayout while the stored value is the raw
// epoch milliseconds, so it reads back without loss.
func (f *Date) Value() (string, bool, error) {
	loc, err := f.location()
	if err != nil {
		return "", false, err
	}

	var instant time.Time
	if stored, ok := f.provider.Value(); ok {
		instant, err = f.parse(stored, loc)
		if err != nil {
			return "", false, err
		}
	} else if f.def.Value != nil {
		instant = time.UnixMilli(*f.def.Value).In(loc)
	} else {
		instant = f.Now().In(loc)
	}

	var result string
	if f.def.Format != "" {
		result = instant.Format(f.def.Format)
		f.provider.SetValue(result)
	} else {
		result = instant.Format(DefaultDateLayout)
		f.provider.SetValue(strconv.FormatInt(instant.UnixMilli(), 10))
	}
	return f.def.Transform(result, true)
}
