package testutil

import "github.com/arthur-debert/buildprops/pkg/values"

// Provider holds a single value in memory.
type Provider struct {
	value   string
	present bool
}

var _ values.Provider = (*Provider)(nil)

// NewProvider returns a provider holding value.
func NewProvider(value string) *Provider {
	return &Provider{value: value, present: true}
}

// NewEmptyProvider returns a provider with no value yet.
func NewEmptyProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Value() (string, bool) {
	return p.value, p.present
}

func (p *Provider) SetValue(value string) {
	p.value = value
	p.present = true
}
