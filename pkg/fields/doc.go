// Package fields turns a checked definition and its value provider into the
// value of a generated property.
//
// Every field reads its current value through the provider, resolves it the
// way its kind requires, writes back what should be remembered for the next
// run, and renders the exported string through the definition's format and
// transformers.
package fields
