package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackedStartsClean(t *testing.T) {
	src := map[string]string{"a": "1"}
	tr := NewTracked(src)
	assert.False(t, tr.Dirty())

	src["a"] = "changed"
	v, ok := tr.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v, "tracked map must own a copy")
}

func TestTrackedMutationsMarkDirty(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tracked)
		dirty  bool
	}{
		{"set new key", func(tr *Tracked) { tr.Set("b", "2") }, true},
		{"set same value", func(tr *Tracked) { tr.Set("a", "1") }, false},
		{"set different value", func(tr *Tracked) { tr.Set("a", "9") }, true},
		{"delete present", func(tr *Tracked) { tr.Delete("a") }, true},
		{"delete absent", func(tr *Tracked) { tr.Delete("zz") }, false},
		{"clear", func(tr *Tracked) { tr.Clear() }, true},
		{"set all", func(tr *Tracked) { tr.SetAll(map[string]string{"c": "3"}) }, true},
		{"set all unchanged", func(tr *Tracked) { tr.SetAll(map[string]string{"a": "1"}) }, false},
		{"mark dirty", func(tr *Tracked) { tr.MarkDirty() }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracked(map[string]string{"a": "1"})
			tt.mutate(tr)
			assert.Equal(t, tt.dirty, tr.Dirty())
		})
	}
}

func TestTrackedClearOnEmptyStaysClean(t *testing.T) {
	tr := NewTracked(nil)
	tr.Clear()
	assert.False(t, tr.Dirty())
}

func TestTrackedKeysAndSnapshot(t *testing.T) {
	tr := NewTracked(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, []string{"a", "b"}, tr.Keys())
	assert.Equal(t, 2, tr.Len())

	snap := tr.Snapshot()
	snap["c"] = "3"
	assert.False(t, tr.Has("c"))

	tr.MarkDirty()
	tr.MarkClean()
	assert.False(t, tr.Dirty())
}

func TestMapProvider(t *testing.T) {
	tr := NewTracked(nil)
	p := NewMapProvider(tr, "build.number")

	_, ok := p.Value()
	assert.False(t, ok)

	p.SetValue("7")
	v, ok := p.Value()
	assert.True(t, ok)
	assert.Equal(t, "7", v)
	assert.True(t, tr.Dirty())
	assert.Equal(t, "build.number", p.Key())

	// writes are visible through another provider on the same map
	other := NewMapProvider(tr, "build.number")
	v, _ = other.Value()
	assert.Equal(t, "7", v)
}

func TestNullProvider(t *testing.T) {
	var p Provider = NullProvider{}
	p.SetValue("ignored")
	_, ok := p.Value()
	assert.False(t, ok)
}
