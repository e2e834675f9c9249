// Package core runs buildprops.
//
// A run evaluates every definition in a fixed order (numbers, strings,
// dates, macros, uuids), records the values by definition id, publishes the
// exported ones, resolves the active property groups against those values
// and finally persists the property files.
//
// # Goals
//
// Two goals exist:
//
//  1. GoalGet resolves and publishes values. Nothing is written unless
//     Persist is set.
//
//  2. GoalInc does the same and then increments every number field. Its
//     callers normally persist, so the next run sees the new numbers.
//
// Because numbers are incremented after the groups were resolved, the
// published values describe the current build and the stored values the
// next one.
//
// # Interpolation sources
//
// Placeholders in group properties are looked up, in order, in the
// definition values, the project model (also as #{project.x} and
// #{pom.x}), the build properties and the environment (#{env.NAME}).
package core
