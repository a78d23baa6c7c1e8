package domain

import (
	"github.com/google/uuid"
)

// Catalog is an immutable, ordered list of asset definitions.
// It outlives any number of simulation runs; runs only ever read from it.
type Catalog struct {
	id     uuid.UUID
	name   string
	assets []Asset
}

// CatalogOption customises a catalog at construction time
type CatalogOption func(*Catalog)

// WithID fixes the catalog's ID instead of generating a new one.
// Used for built-in catalogs and when rebuilding stored catalogs.
func WithID(id uuid.UUID) CatalogOption {
	return func(c *Catalog) {
		c.id = id
	}
}

// NewCatalog validates every asset and returns a catalog holding a private copy of them.
// An empty asset list is allowed: simulations against it simply spend nothing.
func NewCatalog(name string, assets []Asset, opts ...CatalogOption) (*Catalog, error) {
	if name == "" {
		return nil, configErrorf("catalog name cannot be empty")
	}

	for _, asset := range assets {
		if err := asset.Validate(); err != nil {
			return nil, err
		}
	}

	owned := make([]Asset, len(assets))
	copy(owned, assets)

	catalog := &Catalog{
		id:     uuid.New(),
		name:   name,
		assets: owned,
	}
	for _, opt := range opts {
		opt(catalog)
	}
	if catalog.id == uuid.Nil {
		return nil, configErrorf("catalog %q id cannot be nil", name)
	}

	return catalog, nil
}

// ID returns the catalog's identifier
func (c *Catalog) ID() uuid.UUID {
	return c.id
}

// Name returns the catalog's unique name
func (c *Catalog) Name() string {
	return c.name
}

// Assets returns a copy of the catalog's assets in catalog order
func (c *Catalog) Assets() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Len returns the number of assets in the catalog
func (c *Catalog) Len() int {
	return len(c.assets)
}

// Lookup returns the first asset with the given name
func (c *Catalog) Lookup(name string) (Asset, bool) {
	for _, asset := range c.assets {
		if asset.Name == name {
			return asset, true
		}
	}
	return Asset{}, false
}

// MaxMaturationDelay returns the longest maturation delay in the catalog, or 0 when empty
func (c *Catalog) MaxMaturationDelay() int {
	longest := 0
	for _, asset := range c.assets {
		if asset.MaturationDelay > longest {
			longest = asset.MaturationDelay
		}
	}
	return longest
}
