package config

import "context"

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads settings from path on top of the defaults. An empty path
	// returns the defaults.
	Load(ctx context.Context, path string) (*Settings, error)
}
