// Package output publishes exported properties.
//
// Exports are written in one of several formats. The machine readable
// formats (properties, json, yaml, toml, env) never carry styling. The text
// format renders an aligned listing through text/template and lipgloss, with
// colours only when the destination is a terminal and NO_COLOR is unset.
package output
