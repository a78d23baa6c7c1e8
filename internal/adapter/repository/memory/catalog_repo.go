package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/simaogato/harvestflow-backend/internal/domain"
)

// catalogRepository implements domain.CatalogRepository in process memory.
// Catalogs are immutable, so stored pointers are shared with callers.
type catalogRepository struct {
	mu       sync.RWMutex
	catalogs map[string]*domain.Catalog
}

// NewCatalogRepository creates an empty in-memory catalog repository
func NewCatalogRepository() domain.CatalogRepository {
	return &catalogRepository{catalogs: make(map[string]*domain.Catalog)}
}

// GetByName retrieves a catalog by its name
func (r *catalogRepository) GetByName(ctx context.Context, name string) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	catalog, ok := r.catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, name)
	}
	return catalog, nil
}

// Save stores a catalog, replacing any existing catalog with the same name
func (r *catalogRepository) Save(ctx context.Context, catalog *domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if catalog == nil {
		return domain.NewConfigurationError("catalog is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalogs[catalog.Name()] = catalog
	return nil
}

// List retrieves the names of all stored catalogs in ascending order
func (r *catalogRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
