// Package registry provides a generic, thread-safe name to item registry.
// Names are matched case-insensitively; the macro type and macro class
// registries are built on it.
package registry
