// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for all file parsing and for translating
// `setting` and `graph` blocks, including HCL type expressions, into the
// format-agnostic document model.
package hcl
