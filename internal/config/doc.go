// Package config defines the format-agnostic generator configuration and
// the Loader interface used to read it.
//
// The `config.Model` is the single source of truth for how model names are
// translated, which entries are skipped and where insert mode writes.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
