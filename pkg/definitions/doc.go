// Package definitions holds the typed descriptions of generated properties.
//
// There is one definition kind per field kind (number, string, date, uuid
// and macro). All of them embed Base, which carries the naming, storage,
// policy, format and transformer settings. A definition must pass Check
// before it is handed to the value store or a field evaluator; Check trims
// the string settings and validates the rest with go-playground/validator.
package definitions
