// Package types defines the interfaces shared across buildprops packages.
// The FS interface lets the value store and the pom loader run against
// the real filesystem or an in-memory one in tests.
package types
