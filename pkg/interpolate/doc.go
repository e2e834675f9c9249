// Package interpolate resolves #{name} placeholders in property templates.
//
// Names are looked up in a list of sources, the first source knowing a name
// wins. Replacement values are interpolated again, so a value may refer to
// other values. The synonym prefixes "project." and "pom." name the same
// value as the bare name, both for lookups through a PrefixedSource and for
// the recursion guard: a name that is already being resolved further up the
// chain is treated as unresolved instead of looping forever.
//
// A placeholder that can not be resolved is replaced by the empty string and
// reported, leaving it to the caller's missing-property policy to decide
// whether that is acceptable.
package interpolate
