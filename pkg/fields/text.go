package fields

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/values"
)

// String picks the first acceptable value among the stored value and the
// configured candidates.
type String struct {
	def      *definitions.String
	provider values.Provider
}

// NewString returns a string field.
func NewString(def *definitions.String, provider values.Provider) *String {
	return &String{def: def, provider: provider}
}

func (f *String) ID() string     { return f.def.ID }
func (f *String) Exported() bool { return f.def.Export }

// Value selects the first candidate that is not blank, or simply the first
// one when blanks are valid. When nothing qualifies OnMissingValue decides;
// if it lets the run continue, the last candidate is used.
func (f *String) Value() (string, bool, error) {
	var candidates []string
	if v, ok := f.provider.Value(); ok {
		candidates = append(candidates, v)
	}
	candidates = append(candidates, f.def.Values...)

	for _, c := range candidates {
		if f.def.BlankIsValid || strings.TrimSpace(c) != "" {
			return finish(&f.def.Base, c, true)
		}
	}

	if err := f.def.OnMissingValue.Check(false, fmt.Sprintf("value for '%s'", f.def.ID)); err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		return "", false, nil
	}
	return finish(&f.def.Base, candidates[len(candidates)-1], true)
}
