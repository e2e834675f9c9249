// Package config loads buildprops definitions files.
//
// Configuration is layered with koanf: the embedded run level defaults,
// then the definitions file (TOML or YAML), then BUILDPROPS_ environment
// variables for the top level keys. Definitions and groups are decoded one
// entry at a time onto their constructors' defaults.
package config
