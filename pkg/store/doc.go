// Package store implements the value store: the per-run cache of property
// files backing generated values.
//
// Each property file is loaded at most once per run, keyed by its canonical
// path, and every definition pointing at that file shares one in-memory map.
// Definitions without a property file share a single ephemeral map instead.
// Nothing is written until Persist is called at the end of the run, which
// replaces each changed file through a .new temporary and keeps the previous
// contents as .bak.
package store
