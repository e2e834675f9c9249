package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	p := NewEmptyProvider()
	_, ok := p.Value()
	assert.False(t, ok)

	p.SetValue("")
	v, ok := p.Value()
	assert.True(t, ok)
	assert.Equal(t, "", v)

	q := NewProvider("x")
	v, ok = q.Value()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestNewTestFS(t *testing.T) {
	fsys := NewTestFS()
	require.NoError(t, fsys.MkdirAll("/work", 0755))
	require.NoError(t, fsys.WriteFile("/work/a.properties", []byte("a=1\n"), 0644))

	data, err := fsys.ReadFile("/work/a.properties")
	require.NoError(t, err)
	assert.Equal(t, "a=1\n", string(data))
}
