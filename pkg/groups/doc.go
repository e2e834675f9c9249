// Package groups resolves property groups.
//
// A group is a list of templated properties. When a group is activated for
// a build whose kind it accepts, every property value is interpolated,
// passed through its transformers, checked against the names already
// published by other groups and exported to the build context.
package groups
