package testutil

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/buildprops/pkg/filesystem"
	"github.com/arthur-debert/buildprops/pkg/types"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}
