package area

import (
	"context"
)

// Registry answers whether delivery-area codes are serviceable.
type Registry interface {
	// Known reports whether the area code appears in enough area files.
	Known(code string) bool

	// Unknown returns the codes, in input order, that are not serviceable.
	Unknown(codes []string) []string

	// Close releases resources held by the registry.
	Close() error
}

// Set represents a set of area codes for fast lookup.
type Set interface {
	// Contains checks if an area code exists in the set.
	Contains(code string) bool

	// Size returns the number of area codes in the set.
	Size() int
}

// Loader defines the interface for loading area files.
type Loader interface {
	// Load reads a gzipped area file and returns a Set.
	Load(ctx context.Context, path string) (Set, error)
}
