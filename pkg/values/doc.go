// Package values holds the read/write accessors field evaluators use to get
// at a generated value without knowing where it lives.
//
// A Provider is bound either to a key of a Tracked map (file backed or
// ephemeral), to a single in-memory value, or to nothing at all. Tracked is
// the only way to reach a store map, so every mutation goes through it and
// marks the map dirty.
package values
