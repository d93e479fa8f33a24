// Package render encodes a flattened configuration for consumers outside
// the process: JSON through cty's JSON encoding, or HCL shaped like the
// node blocks it was authored with.
package render
