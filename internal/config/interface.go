package config

import (
	"context"
)

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads every document found under the given paths and translates
	// them into a single format-agnostic Document.
	Load(ctx context.Context, paths ...string) (*Document, error)

	// Extensions lists the file extensions the loader reads, with the dot.
	Extensions() []string
}
