// Package config defines the format-agnostic configuration model for the
// diagram styling, along with the Loader interface for reading it from
// configuration files.
//
// The `config.Model` is the single source of truth for the renderer's colour
// palette. Concrete loaders, such as for HCL, are provided in separate
// packages.
package config
