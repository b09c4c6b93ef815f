// Package config defines the format-agnostic configuration model for the
// launcher, along with the Loader interface for reading it from a source.
//
// The `config.Model` is what the registry merges into its built-in catalog
// and manifests. Concrete loaders, such as for HCL, live in separate packages.
package config
