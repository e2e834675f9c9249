package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/buildprops/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "sub", "dir")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	file := filepath.Join(dir, "build.properties")
	content := []byte("number=1\n")
	require.NoError(t, fsys.WriteFile(file, content, 0644))

	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, "build.properties", info.Name())
	assert.Equal(t, int64(len(content)), info.Size())

	got, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err)

	renamed := file + ".bak"
	require.NoError(t, fsys.Rename(file, renamed))
	_, err = fsys.Stat(file)
	assert.True(t, os.IsNotExist(err))

	_, err = fsys.Lstat(renamed)
	require.NoError(t, err)

	require.NoError(t, fsys.Remove(renamed))
	_, err = fsys.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestOSFilesystem(t *testing.T) {
	fsys := NewOS()
	require.NotNil(t, fsys)
	exerciseFS(t, fsys, t.TempDir())
}

func TestMemoryFilesystem(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())
	require.NotNil(t, fsys)
	exerciseFS(t, fsys, "/work")
}

func TestOSFilesystemEvalSymlinks(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "real")
	require.NoError(t, os.MkdirAll(target, 0755))
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	resolver, ok := NewOS().(types.SymlinkResolver)
	require.True(t, ok)

	got, err := resolver.EvalSymlinks(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, isResolver := NewAferoFS(afero.NewMemMapFs()).(types.SymlinkResolver)
	assert.False(t, isResolver)
}
