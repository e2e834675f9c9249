package store

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/propfile"
)

// Report describes what a Persist call did.
type Report struct {
	// Written lists the files that were replaced, in the order they were
	// written.
	Written []string
	// Warnings holds the rename problems that did not stop the run.
	Warnings []error
}

// Persist writes every changed property file that existed when it was loaded
// or is marked for creation. Files are processed in path order and each one
// independently: a rename problem is reported as a warning and the remaining
// files are still written. Failures to write the temporary file are returned
// together once every file was attempted.
//
// A file that was written is considered clean afterwards, so calling Persist
// again without further changes writes nothing.
func (s *Store) Persist() (*Report, error) {
	logger := logging.GetLogger("store")
	report := &Report{}
	var failures []error

	for _, path := range s.Files() {
		e := s.entries[path]
		if !e.needsWrite() {
			continue
		}

		written, warnings, err := s.write(e)
		for _, w := range warnings {
			logger.Warn().Err(w).Str("path", path).Msg("Could not replace property file")
		}
		report.Warnings = append(report.Warnings, warnings...)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if written {
			e.exists = true
			e.values.MarkClean()
			report.Written = append(report.Written, path)
			logger.Info().Str("path", path).Msg("Wrote property file")
		}
	}

	if len(failures) > 0 {
		return report, errors.Wrap(stderrors.Join(failures...), errors.ErrFileWrite, "failed to persist property files")
	}
	return report, nil
}

// write replaces one file. It returns whether the new contents are in place.
func (s *Store) write(e *entry) (bool, []error, error) {
	var warnings []error

	if err := s.fs.MkdirAll(filepath.Dir(e.path), s.dirMode); err != nil {
		return false, nil, errors.Wrapf(err, errors.ErrFileWrite, "could not create folder for %s", e.path).
			WithDetail("path", e.path)
	}

	data, err := propfile.Encode(e.values.Snapshot())
	if err != nil {
		return false, nil, err
	}

	tmp := e.path + newSuffix
	if err := s.fs.WriteFile(tmp, data, s.fileMode); err != nil {
		return false, nil, errors.Wrapf(err, errors.ErrFileWrite, "could not write %s", tmp).
			WithDetail("path", tmp)
	}

	if _, err := s.fs.Stat(e.path); err == nil {
		backup := e.path + backupSuffix
		if _, err := s.fs.Stat(backup); err == nil {
			if err := s.fs.Remove(backup); err != nil {
				warnings = append(warnings, persistenceWarning(err, "could not delete "+backup, backup))
			}
		}
		if err := s.fs.Rename(e.path, backup); err != nil {
			warnings = append(warnings, persistenceWarning(err, "could not rename "+e.path+" to "+backup, e.path))
		}
	} else if !os.IsNotExist(err) {
		warnings = append(warnings, persistenceWarning(err, "could not access "+e.path, e.path))
	}

	if err := s.fs.Rename(tmp, e.path); err != nil {
		warnings = append(warnings, persistenceWarning(err, "could not rename "+tmp+" to "+e.path, tmp))
		return false, warnings, nil
	}
	return true, warnings, nil
}

func persistenceWarning(err error, msg, path string) error {
	return errors.Wrap(err, errors.ErrPersistence, msg).WithDetail("path", path)
}
