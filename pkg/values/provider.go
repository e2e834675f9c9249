package values

// Provider reads and overwrites one generated value.
type Provider interface {
	// Value returns the current value and whether it is present.
	Value() (string, bool)
	// SetValue overwrites the current value.
	SetValue(value string)
}

// MapProvider binds a Provider to one key of a Tracked map.
type MapProvider struct {
	values *Tracked
	key    string
}

// NewMapProvider returns a provider over key in values.
func NewMapProvider(values *Tracked, key string) *MapProvider {
	return &MapProvider{values: values, key: key}
}

func (p *MapProvider) Value() (string, bool) {
	return p.values.Get(p.key)
}

func (p *MapProvider) SetValue(value string) {
	p.values.Set(p.key, value)
}

// Key returns the bound key.
func (p *MapProvider) Key() string {
	return p.key
}

// NullProvider never has a value and discards writes. It is handed out when
// a missing property is tolerated by policy.
type NullProvider struct{}

func (NullProvider) Value() (string, bool) {
	return "", false
}

func (NullProvider) SetValue(string) {}
