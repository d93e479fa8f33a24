// Package config defines the format-agnostic document model for the
// application, along with the Loader interface for reading graph documents
// from various sources.
//
// The `config.Document` is the single source of truth for the `builder`
// package. Concrete loaders, such as for HCL and YAML, are provided in
// separate packages.
package config
