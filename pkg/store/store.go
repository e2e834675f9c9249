package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/policy"
	"github.com/arthur-debert/buildprops/pkg/propfile"
	"github.com/arthur-debert/buildprops/pkg/types"
	"github.com/arthur-debert/buildprops/pkg/values"
)

const (
	newSuffix    = ".new"
	backupSuffix = ".bak"
)

// entry is the in-memory state of one property file.
type entry struct {
	path   string
	values *values.Tracked
	exists bool
	create bool
}

func (e *entry) needsWrite() bool {
	return e.values.Dirty() && (e.exists || e.create)
}

// Store caches property files for the duration of a run.
type Store struct {
	fs        types.FS
	fileMode  fs.FileMode
	dirMode   fs.FileMode
	entries   map[string]*entry
	ephemeral *values.Tracked
}

// Option configures a Store.
type Option func(*Store)

// WithFileMode sets the permissions of written property files.
func WithFileMode(mode fs.FileMode) Option {
	return func(s *Store) { s.fileMode = mode }
}

// WithDirMode sets the permissions of directories created for property
// files.
func WithDirMode(mode fs.FileMode) Option {
	return func(s *Store) { s.dirMode = mode }
}

// New returns an empty store reading and writing through fsys.
func New(fsys types.FS, opts ...Option) *Store {
	s := &Store{
		fs:        fsys,
		fileMode:  0644,
		dirMode:   0755,
		entries:   make(map[string]*entry),
		ephemeral: values.NewTracked(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the accessor for the value described by def.
//
// Without a property file the value lives in the ephemeral map, seeded with
// the initial value when there is one. Otherwise the backing file is loaded
// (or set up for creation) and OnMissingProperty decides what happens when
// the file has no such key.
func (s *Store) Provider(def definitions.Definition) (values.Provider, error) {
	base := def.Common()
	name := base.Property()

	if !base.HasFile() {
		if v, ok := def.InitialValue(); ok {
			s.ephemeral.Set(name, v)
		}
		return values.NewMapProvider(s.ephemeral, name), nil
	}

	e, err := s.load(base)
	if err != nil {
		return nil, err
	}

	has := e.values.Has(name)
	outcome, err := base.OnMissingProperty.Resolve(has, fmt.Sprintf("property '%s' in %s", name, e.path))
	if err != nil {
		return nil, err
	}

	switch {
	case has:
		return values.NewMapProvider(e.values, name), nil
	case outcome == policy.Create:
		if v, ok := def.InitialValue(); ok {
			e.values.Set(name, v)
		}
		return values.NewMapProvider(e.values, name), nil
	default:
		return values.NullProvider{}, nil
	}
}

// Files returns the canonical paths of the loaded property files.
func (s *Store) Files() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (s *Store) load(base *definitions.Base) (*entry, error) {
	logger := logging.GetLogger("store")

	path, err := s.canonical(base.PropertyFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "can not resolve %s", base.PropertyFile).
			WithDetail("path", base.PropertyFile)
	}

	info, statErr := s.fs.Stat(path)
	if statErr != nil && !os.IsNotExist(statErr) {
		return nil, errors.Wrapf(statErr, errors.ErrFileAccess, "can not access %s", path).
			WithDetail("path", path)
	}
	exists := statErr == nil
	if exists && !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.ErrFileAccess, "can not load %s, not a file", path).
			WithDetail("path", path)
	}

	outcome, err := base.OnMissingFile.Resolve(exists, "file "+path)
	if err != nil {
		return nil, err
	}
	create := outcome == policy.Create

	if e, ok := s.entries[path]; ok {
		if create && !e.create {
			e.create = true
			e.values.MarkDirty()
		}
		return e, nil
	}

	e := &entry{path: path, exists: exists, create: create}
	if !exists {
		e.values = values.NewTracked(nil)
		if create {
			e.values.MarkDirty()
		}
		logger.Debug().Str("path", path).Bool("create", create).Msg("Property file does not exist")
	} else {
		data, err := s.fs.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "can not read %s", path).
				WithDetail("path", path)
		}
		loaded, err := propfile.Decode(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "can not parse %s", path).
				WithDetail("path", path)
		}
		e.values = values.NewTracked(loaded)
		logger.Debug().Str("path", path).Int("properties", len(loaded)).Msg("Loaded property file")
	}

	s.entries[path] = e
	return e, nil
}

// canonical returns the absolute, cleaned form of path with symlinks of its
// nearest existing ancestor evaluated.
func (s *Store) canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolver, ok := s.fs.(types.SymlinkResolver)
	if !ok {
		return abs, nil
	}

	existing := abs
	var rest []string
	for {
		if _, err := s.fs.Lstat(existing); err == nil {
			break
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}

	resolved, err := resolver.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{resolved}, rest...)...), nil
}
