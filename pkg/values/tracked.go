package values

import (
	"maps"
	"slices"
)

// Tracked wraps a string map and records whether it was mutated since it was
// loaded or last marked clean.
type Tracked struct {
	values map[string]string
	dirty  bool
}

// NewTracked returns a clean Tracked map holding a copy of initial.
func NewTracked(initial map[string]string) *Tracked {
	t := &Tracked{values: make(map[string]string, len(initial))}
	maps.Copy(t.values, initial)
	return t
}

func (t *Tracked) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

func (t *Tracked) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

func (t *Tracked) Len() int {
	return len(t.values)
}

// Set stores value under key. The map only becomes dirty when the stored
// value actually changes.
func (t *Tracked) Set(key, value string) {
	if old, ok := t.values[key]; ok && old == value {
		return
	}
	t.values[key] = value
	t.dirty = true
}

// Delete removes key, marking the map dirty if it was present.
func (t *Tracked) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	t.dirty = true
}

// Clear removes every key.
func (t *Tracked) Clear() {
	if len(t.values) == 0 {
		return
	}
	clear(t.values)
	t.dirty = true
}

// SetAll stores every pair of m.
func (t *Tracked) SetAll(m map[string]string) {
	for k, v := range m {
		t.Set(k, v)
	}
}

// Keys returns the keys in sorted order.
func (t *Tracked) Keys() []string {
	return slices.Sorted(maps.Keys(t.values))
}

// Snapshot returns a copy of the current contents.
func (t *Tracked) Snapshot() map[string]string {
	return maps.Clone(t.values)
}

func (t *Tracked) Dirty() bool {
	return t.dirty
}

func (t *Tracked) MarkDirty() {
	t.dirty = true
}

func (t *Tracked) MarkClean() {
	t.dirty = false
}
