// Package yamldoc implements config.Loader for graph documents written in
// YAML. The document layout mirrors the HCL blocks one to one; types are
// written as HCL type expressions in strings, e.g. `type: list(string)`.
package yamldoc
