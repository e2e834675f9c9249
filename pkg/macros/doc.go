// Package macros dispatches macro definitions to the code that produces
// their values.
//
// A macro is looked up by type name in the type registry or, when the
// definition names a class instead, instantiated from the class registry.
// Both registries are filled at process start; the built-in macros are
// registered in Default.
package macros
