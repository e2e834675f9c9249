// Package policy implements the decisions taken when a file, a property or a
// value is missing: ignore it, warn about it, fail, or (for the four-valued
// variant) create it.
package policy

import (
	"strings"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/logging"
)

// Outcome tells the caller what to do after a policy has been applied.
type Outcome int

const (
	// NoOp means nothing needs to be done.
	NoOp Outcome = iota
	// Create means the caller should create the missing resource.
	Create
)

func (o Outcome) String() string {
	if o == Create {
		return "create"
	}
	return "noop"
}

// IgnoreWarnFail is the three-valued policy. The zero value is Fail.
type IgnoreWarnFail int

const (
	Fail IgnoreWarnFail = iota
	Warn
	Ignore
)

var ignoreWarnFailNames = map[string]IgnoreWarnFail{
	"fail":   Fail,
	"warn":   Warn,
	"ignore": Ignore,
}

// ParseIgnoreWarnFail parses a policy name, ignoring case and surrounding
// whitespace.
func ParseIgnoreWarnFail(s string) (IgnoreWarnFail, error) {
	if p, ok := ignoreWarnFailNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return Fail, errors.Newf(errors.ErrInvalidPolicy, "unknown policy %q (expected ignore, warn or fail)", s).
		WithDetail("value", s)
}

func (p IgnoreWarnFail) String() string {
	switch p {
	case Warn:
		return "warn"
	case Ignore:
		return "ignore"
	default:
		return "fail"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p IgnoreWarnFail) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *IgnoreWarnFail) UnmarshalText(text []byte) error {
	parsed, err := ParseIgnoreWarnFail(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Check applies the policy. When exists is true nothing happens, whatever
// the policy is. Otherwise Fail returns an ErrMissingResource error naming
// subject and Warn logs a warning.
func (p IgnoreWarnFail) Check(exists bool, subject string) error {
	if exists {
		return nil
	}
	switch p {
	case Ignore:
		return nil
	case Warn:
		warn(subject)
		return nil
	default:
		return missing(subject)
	}
}

// IgnoreWarnFailCreate is the four-valued policy. The zero value is Fail.
type IgnoreWarnFailCreate int

const (
	MissingFail IgnoreWarnFailCreate = iota
	MissingWarn
	MissingIgnore
	MissingCreate
)

var ignoreWarnFailCreateNames = map[string]IgnoreWarnFailCreate{
	"fail":   MissingFail,
	"warn":   MissingWarn,
	"ignore": MissingIgnore,
	"create": MissingCreate,
}

// ParseIgnoreWarnFailCreate parses a policy name, ignoring case and
// surrounding whitespace.
func ParseIgnoreWarnFailCreate(s string) (IgnoreWarnFailCreate, error) {
	if p, ok := ignoreWarnFailCreateNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return MissingFail, errors.Newf(errors.ErrInvalidPolicy, "unknown policy %q (expected ignore, warn, fail or create)", s).
		WithDetail("value", s)
}

func (p IgnoreWarnFailCreate) String() string {
	switch p {
	case MissingWarn:
		return "warn"
	case MissingIgnore:
		return "ignore"
	case MissingCreate:
		return "create"
	default:
		return "fail"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p IgnoreWarnFailCreate) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *IgnoreWarnFailCreate) UnmarshalText(text []byte) error {
	parsed, err := ParseIgnoreWarnFailCreate(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Resolve applies the policy and reports whether the caller should create
// the missing resource. Failures come back on the error channel only.
func (p IgnoreWarnFailCreate) Resolve(exists bool, subject string) (Outcome, error) {
	if exists {
		return NoOp, nil
	}
	switch p {
	case MissingIgnore:
		return NoOp, nil
	case MissingWarn:
		warn(subject)
		return NoOp, nil
	case MissingCreate:
		return Create, nil
	default:
		return NoOp, missing(subject)
	}
}

func warn(subject string) {
	logger := logging.GetLogger("policy")
	logger.Warn().Str("subject", subject).Msg("Missing resource")
}

func missing(subject string) error {
	return errors.Newf(errors.ErrMissingResource, "%s does not exist", subject).
		WithDetail("subject", subject)
}
