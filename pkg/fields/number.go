package fields

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// Run is a maximal run of ASCII digits or of non-digits.
type Run struct {
	Text   string
	Digits bool
}

// Runs is a value split into alternating runs.
type Runs []Run

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Tokenize splits s into maximal digit and non-digit runs. Joining the runs
// always gives back s.
func Tokenize(s string) Runs {
	var runs Runs
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			runs = append(runs, Run{Text: s[start:i], Digits: isDigit(s[start])})
			start = i
		}
	}
	return runs
}

// Join concatenates the runs.
func (r Runs) Join() string {
	var b strings.Builder
	for _, run := range r {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Digits returns the indices of the digit runs.
func (r Runs) Digits() []int {
	var idx []int
	for i, run := range r {
		if run.Digits {
			idx = append(idx, i)
		}
	}
	return idx
}

// Number treats one digit run of its value as a counter. All other runs are
// left exactly as they are.
type Number struct {
	def      *definitions.Number
	provider values.Provider
}

// NewNumber returns a number field.
func NewNumber(def *definitions.Number, provider values.Provider) *Number {
	return &Number{def: def, provider: provider}
}

func (f *Number) ID() string     { return f.def.ID }
func (f *Number) Exported() bool { return f.def.Export }

// parse tokenizes the current value and returns the index of the selected
// digit run. The value being absent is not an error.
func (f *Number) parse() (Runs, int, bool, error) {
	value, ok := f.provider.Value()
	if !ok {
		return nil, 0, false, nil
	}
	runs := Tokenize(value)
	digits := runs.Digits()
	if len(digits) <= f.def.FieldNumber {
		return nil, 0, false, errors.Newf(errors.ErrInsufficientFields,
			"only %d fields in '%s', field %d requested", len(digits), value, f.def.FieldNumber).
			WithDetail("id", f.def.ID).
			WithDetail("value", value).
			WithDetail("field", f.def.FieldNumber)
	}
	return runs, digits[f.def.FieldNumber], true, nil
}

// Number returns the selected digit run as an integer.
func (f *Number) Number() (int64, bool, error) {
	runs, idx, ok, err := f.parse()
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.ParseInt(runs[idx].Text, 10, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, errors.ErrInvalidInput, "field %d of '%s' is not a valid number", f.def.FieldNumber, runs.Join()).
			WithDetail("id", f.def.ID)
	}
	return n, true, nil
}

// SetNumber replaces the selected digit run with n and writes the result
// back. Nothing happens while the value is absent.
func (f *Number) SetNumber(n int64) error {
	runs, idx, ok, err := f.parse()
	if err != nil || !ok {
		return err
	}
	runs[idx].Text = strconv.FormatInt(n, 10)
	f.provider.SetValue(runs.Join())
	return nil
}

// Increment adds the configured increment to the selected digit run.
func (f *Number) Increment() error {
	n, ok, err := f.Number()
	if err != nil || !ok {
		return err
	}
	return f.SetNumber(n + int64(f.def.Increment))
}

// Value returns the current value, formatted and transformed. An absent
// value renders as the format applied to the empty string.
func (f *Number) Value() (string, bool, error) {
	runs, _, _, err := f.parse()
	if err != nil {
		return "", false, err
	}
	return finish(&f.def.Base, runs.Join(), true)
}
