package domain

import (
	"context"
)

// CatalogRepository defines the interface for catalog persistence operations
type CatalogRepository interface {
	// GetByName retrieves a catalog by its name
	// Returns an error wrapping ErrCatalogNotFound if no catalog has that name
	GetByName(ctx context.Context, name string) (*Catalog, error)

	// Save stores a catalog, replacing any existing catalog with the same name
	Save(ctx context.Context, catalog *Catalog) error

	// List retrieves the names of all stored catalogs in ascending order
	List(ctx context.Context) ([]string, error)
}
